package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/manavmaharishi/voicemation-final/application/ports/inbound"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/domain"
)

const scriptFileName = "scenes.py"

// spokenWordsPerSecond approximates narration pace; fallback scene pacing is
// derived from it instead of hardcoded wait lengths.
const spokenWordsPerSecond = 2.5

var sceneClassRe = regexp.MustCompile(`class\s+(\w+)\s*\(Scene\):`)

type sceneMaterializer struct {
	logger outbound.LoggerPort
}

func NewSceneMaterializer(logger outbound.LoggerPort) inbound.SceneMaterializerPort {
	return &sceneMaterializer{
		logger: logger,
	}
}

// Materialize scans the sanitized source for scene declarations and persists
// the final script into the request workspace. In-depth requests that came
// back with fewer than two scenes get the fixed four-scene fallback instead;
// the substitution is deterministic, not a regeneration.
func (m *sceneMaterializer) Materialize(params inbound.MaterializeParams) (*domain.SceneScript, error) {
	source := params.Source
	scenes := ScanScenes(source)

	if params.Mode == domain.InDepthMode && len(scenes) < 2 {
		m.logger.InfoWithFields("Model returned too few scenes for in-depth mode, substituting fallback template",
			map[string]interface{}{
				"scenes_found": len(scenes),
			})
		source = fallbackScript(params.Topic)
		scenes = ScanScenes(source)
	}

	if len(scenes) == 0 {
		return nil, fmt.Errorf("%w: no scene declarations found", domain.ErrRender)
	}

	scriptPath := filepath.Join(params.WorkDir, scriptFileName)
	if err := os.WriteFile(scriptPath, []byte(source), 0o644); err != nil {
		m.logger.Error(err, "Failed to persist scene script")
		return nil, err
	}

	return &domain.SceneScript{
		Source:   source,
		Scenes:   scenes,
		FilePath: scriptPath,
	}, nil
}

// ScanScenes returns scene class names in order of appearance. Order defines
// render and concatenation order.
func ScanScenes(source string) []string {
	matches := sceneClassRe.FindAllStringSubmatch(source, -1)
	scenes := make([]string, 0, len(matches))
	for _, match := range matches {
		scenes = append(scenes, match[1])
	}
	return scenes
}

// fallbackScript builds the canned four-scene lecture used when in-depth mode
// got a single-scene response. Wait lengths are computed from the estimated
// narration pace for the topic rather than copied constants, so the rendered
// runtime tracks the eventual voiceover length.
func fallbackScript(topic string) string {
	perSceneWait := fallbackSceneWait(topic)
	title := pythonStringLiteral(titleCase(topic))

	return fmt.Sprintf(fallbackTemplate,
		title, perSceneWait, perSceneWait,
		perSceneWait, perSceneWait,
		title, perSceneWait, perSceneWait,
		perSceneWait, perSceneWait,
	)
}

// fallbackSceneWait spreads the estimated narration time across the four
// fallback scenes, clamped so even terse topics render a watchable clip.
func fallbackSceneWait(topic string) int {
	words := len(strings.Fields(topic)) * 40 // in-depth explanations run 200+ words
	estimated := float64(words) / spokenWordsPerSecond
	wait := int(estimated / 4 / 2)
	if wait < 10 {
		wait = 10
	}
	if wait > 45 {
		wait = 45
	}
	return wait
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func pythonStringLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, ``)
	return strings.ReplaceAll(s, `"`, `'`)
}

const fallbackTemplate = `from manim import *
import numpy as np


class HeadingScene(Scene):
    def construct(self):
        main_title = Text("%s", font_size=56, color=BLUE).scale(1.5)
        self.play(Write(main_title), run_time=5)
        self.wait(%d)
        underline = Line(LEFT * 6, RIGHT * 6, color=YELLOW).move_to(DOWN * 0.8)
        self.play(Create(underline), run_time=3)
        subtitle = Text("Complete Educational Guide", font_size=28, color=WHITE).move_to(DOWN * 2)
        self.play(Write(subtitle), run_time=3)
        self.wait(%d)
        self.play(FadeOut(main_title, underline, subtitle))
        self.wait(3)


class ExplanationScene(Scene):
    def construct(self):
        explanation_title = Text("Detailed Explanation", font_size=44, color=GREEN).scale(1.3)
        self.play(Write(explanation_title), run_time=3)
        self.wait(5)
        self.play(FadeOut(explanation_title))
        parts = [
            "This concept involves understanding the fundamental principles",
            "It works by applying specific methods and techniques",
            "The key is to follow a systematic approach",
            "Mastery comes through practice and application",
        ]
        for i, part in enumerate(parts):
            part_text = Text(part, font_size=20, color=WHITE).move_to(UP * (2.0 - i * 0.9))
            self.play(Write(part_text), run_time=3)
        self.wait(%d)
        box = Rectangle(width=8, height=3, color=BLUE)
        self.play(Create(box))
        box_text = Text("Key Understanding", font_size=28, color=YELLOW)
        self.play(Write(box_text))
        self.wait(%d)
        self.play(*[FadeOut(mob) for mob in self.mobjects])


class ExampleScene(Scene):
    def construct(self):
        example_title = Text("Worked Example: %s", font_size=36, color=PURPLE).scale(1.2)
        self.play(Write(example_title), run_time=4)
        self.wait(5)
        self.play(FadeOut(example_title))
        problem = Text("Given: initial conditions and requirements", font_size=20, color=WHITE).move_to(UP * 2.2)
        self.play(Write(problem), run_time=2)
        steps = [
            "Step 1: Analyze the given information",
            "Step 2: Apply the appropriate method",
            "Step 3: Perform the calculation",
            "Step 4: Verify the result",
        ]
        for i, step in enumerate(steps):
            step_text = Text(step, font_size=18, color=WHITE).move_to(UP * (1.0 - i * 0.6))
            self.play(Write(step_text), run_time=2)
        self.wait(%d)
        answer = Text("Answer: result achieved", font_size=22, color=GREEN).move_to(DOWN * 2.5)
        self.play(Write(answer), run_time=3)
        self.wait(%d)
        self.play(*[FadeOut(mob) for mob in self.mobjects])


class ApplicationScene(Scene):
    def construct(self):
        app_title = Text("Real-World Applications", font_size=44, color=TEAL).scale(1.3)
        self.play(Write(app_title), run_time=4)
        self.wait(5)
        self.play(FadeOut(app_title))
        industries = [
            "Engineering and construction",
            "Medicine and healthcare",
            "Finance and economics",
            "Technology and computing",
        ]
        for i, industry in enumerate(industries):
            line = Text(industry, font_size=18, color=WHITE).move_to(UP * (1.8 - i * 0.6))
            self.play(Write(line), run_time=2)
        self.wait(%d)
        conclusion = Text("Understanding opens many opportunities", font_size=18, color=GOLD).move_to(DOWN * 2)
        self.play(Write(conclusion))
        self.wait(%d)
        self.play(*[FadeOut(mob) for mob in self.mobjects])
`
