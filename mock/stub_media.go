package mock_generator

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/domain"
)

const stubClipSeconds = 4

type stubRenderer struct {
	logger outbound.LoggerPort
}

// NewStubRenderer synthesizes a solid-color clip per scene with ffmpeg's lavfi
// source instead of invoking the animation engine.
func NewStubRenderer(logger outbound.LoggerPort) outbound.RendererPort {
	return &stubRenderer{logger: logger}
}

func (r *stubRenderer) Render(ctx context.Context, _ string, scene string, workDir string) (string, error) {
	clipPath := filepath.Join(workDir, scene+".mp4")
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=0x1F2937:s=854x480:d=%d", stubClipSeconds),
		"-pix_fmt", "yuv420p",
		clipPath,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		r.logger.ErrorWithFields(err, "Stub render failed", map[string]interface{}{
			"scene":  scene,
			"output": string(output),
		})
		return "", fmt.Errorf("%w: stub render for scene %s", domain.ErrRender, scene)
	}
	return clipPath, nil
}

type stubSynthesizer struct {
	prober outbound.MediaProberPort
	logger outbound.LoggerPort
}

// NewStubSynthesizer produces a silent track sized to the narration length at
// a fixed reading pace, so loop and subtitle timing behave as in production.
func NewStubSynthesizer(prober outbound.MediaProberPort, logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &stubSynthesizer{prober: prober, logger: logger}
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text string, outputPath string) (*domain.NarrationTrack, error) {
	seconds := len(text) / 15
	if seconds < stubClipSeconds {
		seconds = stubClipSeconds
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "lavfi",
		"-i", "anullsrc=r=24000:cl=mono",
		"-t", fmt.Sprintf("%d", seconds),
		"-q:a", "9",
		outputPath,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		s.logger.ErrorWithFields(err, "Stub synthesis failed", map[string]interface{}{
			"output": string(output),
		})
		return nil, fmt.Errorf("%w: stub synthesis", domain.ErrSynthesis)
	}

	duration, err := s.prober.Duration(outputPath)
	if err != nil {
		duration = float64(seconds)
	}
	return &domain.NarrationTrack{FilePath: outputPath, Duration: duration}, nil
}

type stubTranscriber struct{}

func NewStubTranscriber() outbound.TranscriberPort {
	return &stubTranscriber{}
}

func (t *stubTranscriber) Transcribe(context.Context, string) (string, error) {
	return "the pythagorean theorem", nil
}
