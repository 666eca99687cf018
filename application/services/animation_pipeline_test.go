package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/manavmaharishi/voicemation-final/application/ports/inbound"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/config"
	"github.com/manavmaharishi/voicemation-final/domain"
	"github.com/manavmaharishi/voicemation-final/infrastructure/adapters"
)

type fakeCompletion struct {
	blob string
	err  error
}

func (f *fakeCompletion) Complete(context.Context, outbound.CompletionRequest) (string, error) {
	return f.blob, f.err
}

type fakeRenderer struct {
	failScenes map[string]bool
}

func (f *fakeRenderer) Render(_ context.Context, _ string, scene string, workDir string) (string, error) {
	if f.failScenes[scene] {
		return "", fmt.Errorf("%w: scene %s", domain.ErrRender, scene)
	}
	clipPath := filepath.Join(workDir, scene+".mp4")
	if err := os.WriteFile(clipPath, []byte("clip"), 0o644); err != nil {
		return "", err
	}
	return clipPath, nil
}

type fakeConcatenator struct {
	gotScenes []string
}

func (f *fakeConcatenator) Concatenate(clips []domain.RenderedClip, outputDir string) (string, error) {
	f.gotScenes = nil
	for _, clip := range clips {
		f.gotScenes = append(f.gotScenes, clip.Scene)
	}
	if len(clips) == 1 {
		return clips[0].FilePath, nil
	}
	return filepath.Join(outputDir, "combined.mp4"), nil
}

type fakeSynthesizer struct{}

func (f *fakeSynthesizer) Synthesize(_ context.Context, _ string, outputPath string) (*domain.NarrationTrack, error) {
	if err := os.WriteFile(outputPath, []byte("audio"), 0o644); err != nil {
		return nil, err
	}
	return &domain.NarrationTrack{FilePath: outputPath, Duration: 10}, nil
}

type fakeMuxer struct {
	gotParams outbound.MuxParams
}

func (f *fakeMuxer) Mux(_ context.Context, params outbound.MuxParams) (string, error) {
	f.gotParams = params
	if err := os.WriteFile(params.OutputPath, []byte("video"), 0o644); err != nil {
		return "", err
	}
	return params.OutputPath, nil
}

type fakePublisher struct{}

func (f *fakePublisher) Publish(_ context.Context, req outbound.PublishVideoRequest) (*outbound.PublishVideoResponse, error) {
	return &outbound.PublishVideoResponse{
		VideoKey:    "request/" + req.RequestID + "/video/final.mp4",
		StoreRegion: "eu-west-1",
	}, nil
}

type pipelineFixture struct {
	pipeline     inbound.AnimationPipelinePort
	store        outbound.ResultStorePort
	concatenator *fakeConcatenator
	muxer        *fakeMuxer
	workspace    *config.WorkspaceConfig
}

func newPipelineFixture(t *testing.T, completion outbound.CompletionPort, renderer outbound.RendererPort, publisher outbound.VideoPublisherPort) *pipelineFixture {
	t.Helper()

	logger := adapters.NewZerologWrapper()
	workspace := &config.WorkspaceConfig{Root: t.TempDir()}
	store := adapters.NewMemoryResultStore()
	concatenator := &fakeConcatenator{}
	muxer := &fakeMuxer{}

	pipeline := NewAnimationPipeline(
		workspace,
		NewRequestNormalizer(&fakeTranscoder{}, &fakeTranscriber{text: "spoken topic"}, logger),
		completion,
		NewSceneMaterializer(logger),
		NewSceneRenderer(renderer, logger),
		concatenator,
		&fakeSynthesizer{},
		NewSubtitleBuilder(logger),
		muxer,
		store,
		publisher,
		logger,
	)

	return &pipelineFixture{
		pipeline:     pipeline,
		store:        store,
		concatenator: concatenator,
		muxer:        muxer,
		workspace:    workspace,
	}
}

func sceneBlob(explanation string, scenes ...string) string {
	code := "from manim import *\n\n"
	for _, scene := range scenes {
		code += "class " + scene + "(Scene):\n    def construct(self):\n        pass\n\n"
	}
	return explanation + "\n\n```python\n" + code + "```\n"
}

func TestPipelineSingleScene(t *testing.T) {
	blob := sceneBlob("The chain rule composes derivatives. It is everywhere.", "MainScene")
	fixture := newPipelineFixture(t, &fakeCompletion{blob: blob}, &fakeRenderer{}, &fakePublisher{})

	requestID := "req-single"
	result, err := fixture.pipeline.Run(context.Background(), inbound.StartPipelineParams{
		RequestID: requestID,
		Text:      "the chain rule",
		Mode:      domain.StandardMode,
	})
	if err != nil {
		t.Fatal("Pipeline failed:", err)
	}

	if !fixture.muxer.gotParams.LoopVideo {
		t.Error("Single scene should loop the video over the narration")
	}
	if fixture.muxer.gotParams.SubtitlePath == "" {
		t.Error("Expected subtitles to be burned in")
	}
	if result.VideoPath != filepath.Join(fixture.workspace.Root, requestID, "final.mp4") {
		t.Errorf("Final video at %s", result.VideoPath)
	}
	if result.VideoKey == "" {
		t.Error("Expected publisher key on result")
	}
	if result.Duration != 10 {
		t.Errorf("Result duration = %f", result.Duration)
	}

	stored, err := fixture.store.Get(context.Background(), requestID)
	if err != nil {
		t.Fatal("Failed to read result store:", err)
	}
	if stored == nil || stored.Status != domain.StatusCompleted {
		t.Errorf("Stored result = %+v", stored)
	}
}

func TestPipelineMultiSceneSkipsFailedScene(t *testing.T) {
	blob := sceneBlob("One. Two. Three.", "AScene", "BScene", "CScene")
	renderer := &fakeRenderer{failScenes: map[string]bool{"BScene": true}}
	fixture := newPipelineFixture(t, &fakeCompletion{blob: blob}, renderer, nil)

	_, err := fixture.pipeline.Run(context.Background(), inbound.StartPipelineParams{
		RequestID: "req-multi",
		Text:      "fractions",
		Mode:      domain.InDepthMode,
	})
	if err != nil {
		t.Fatal("Pipeline failed:", err)
	}

	if len(fixture.concatenator.gotScenes) != 2 {
		t.Fatal("Expected 2 surviving clips, got", fixture.concatenator.gotScenes)
	}
	if fixture.concatenator.gotScenes[0] != "AScene" || fixture.concatenator.gotScenes[1] != "CScene" {
		t.Errorf("Clip order wrong: %v", fixture.concatenator.gotScenes)
	}
	if fixture.muxer.gotParams.LoopVideo {
		t.Error("Multi-scene timeline must not loop")
	}
}

func TestPipelineCompletionFailure(t *testing.T) {
	completionErr := fmt.Errorf("%w: upstream timeout", domain.ErrCompletion)
	fixture := newPipelineFixture(t, &fakeCompletion{err: completionErr}, &fakeRenderer{}, nil)

	requestID := "req-fail"
	_, err := fixture.pipeline.Run(context.Background(), inbound.StartPipelineParams{
		RequestID: requestID,
		Text:      "anything",
		Mode:      domain.StandardMode,
	})
	if !errors.Is(err, domain.ErrCompletion) {
		t.Fatal("Expected completion error, got:", err)
	}

	stored, err := fixture.store.Get(context.Background(), requestID)
	if err != nil {
		t.Fatal("Failed to read result store:", err)
	}
	if stored == nil || stored.Status != domain.StatusFailed {
		t.Errorf("Stored result = %+v", stored)
	}
	if stored != nil && stored.Error == "" {
		t.Error("Failure reason missing from stored result")
	}
}

func TestPipelineNoCodeBlock(t *testing.T) {
	fixture := newPipelineFixture(t, &fakeCompletion{blob: "prose without any code"}, &fakeRenderer{}, nil)

	_, err := fixture.pipeline.Run(context.Background(), inbound.StartPipelineParams{
		RequestID: "req-nocode",
		Text:      "anything",
		Mode:      domain.StandardMode,
	})
	if !errors.Is(err, domain.ErrNoCodeBlock) {
		t.Fatal("Expected ErrNoCodeBlock, got:", err)
	}
}

func TestPipelineRemovesUploadedAudio(t *testing.T) {
	blob := sceneBlob("A sentence.", "MainScene")
	fixture := newPipelineFixture(t, &fakeCompletion{blob: blob}, &fakeRenderer{}, nil)

	requestID := "req-audio"
	workDir := filepath.Join(fixture.workspace.Root, requestID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatal("Failed to create workspace:", err)
	}
	audioPath := filepath.Join(workDir, "upload.webm")
	if err := os.WriteFile(audioPath, []byte("audio"), 0o644); err != nil {
		t.Fatal("Failed to write audio fixture:", err)
	}

	_, err := fixture.pipeline.Run(context.Background(), inbound.StartPipelineParams{
		RequestID: requestID,
		AudioPath: audioPath,
		Mode:      domain.StandardMode,
	})
	if err != nil {
		t.Fatal("Pipeline failed:", err)
	}

	if _, err := os.Stat(audioPath); !os.IsNotExist(err) {
		t.Error("Uploaded audio was not removed after the run")
	}
}
