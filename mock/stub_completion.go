package mock_generator

import (
	"context"
	"fmt"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type stubCompletion struct {
	logger outbound.LoggerPort
}

// NewStubCompletion returns canned explanation and scene code so the full
// pipeline can run offline without a model endpoint.
func NewStubCompletion(logger outbound.LoggerPort) outbound.CompletionPort {
	return &stubCompletion{logger: logger}
}

func (s *stubCompletion) Complete(_ context.Context, req outbound.CompletionRequest) (string, error) {
	s.logger.InfoWithFields("Serving canned completion", map[string]interface{}{
		"topic": req.Topic,
		"mode":  string(req.Mode),
	})

	if req.Mode == domain.InDepthMode {
		return fmt.Sprintf(cannedInDepthBlob, req.Topic, req.Topic, req.Topic), nil
	}
	return fmt.Sprintf(cannedStandardBlob, req.Topic, req.Topic), nil
}

const cannedStandardBlob = `%s is a fundamental concept worth understanding. It appears throughout mathematics and science. With a clear picture of the basics, the details follow naturally.

` + "```python" + `
from manim import *

class MainScene(Scene):
    def construct(self):
        title = Text("%s", font_size=48)
        self.play(Write(title))
        self.wait(2)
        self.play(FadeOut(title))
        self.wait(1)
` + "```" + `
`

const cannedInDepthBlob = `%s rewards a closer look. First come the definitions, then a worked example, and finally where the idea shows up in practice. Each piece builds on the last. By the end the whole picture fits together.

` + "```python" + `
from manim import *

class IntroductionScene(Scene):
    def construct(self):
        title = Text("%s", font_size=48)
        self.play(Write(title))
        self.wait(2)

class TheoryScene(Scene):
    def construct(self):
        body = Text("Core ideas", font_size=36)
        self.play(Write(body))
        self.wait(2)

class Example1Scene(Scene):
    def construct(self):
        body = Text("Worked example", font_size=36)
        self.play(Write(body))
        self.wait(2)

class ApplicationScene(Scene):
    def construct(self):
        body = Text("Applications of %s", font_size=36)
        self.play(Write(body))
        self.wait(2)
` + "```" + `
`
