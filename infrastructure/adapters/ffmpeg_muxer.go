package adapters

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/domain"
)

const subtitleStyle = "FontSize=24,PrimaryColour=&HFFFFFF&,OutlineColour=&H000000&," +
	"BackColour=&H80000000&,Bold=1,Alignment=2,MarginV=20"

type ffmpegMuxer struct {
	logger outbound.LoggerPort
}

// NewFFmpegMuxer merges the rendered timeline with the narration track and
// optional burned-in captions. Looped single-scene video is trimmed to the
// narration length via -shortest; multi-scene timelines are never looped and
// keep a stream copy unless captions force a re-encode.
func NewFFmpegMuxer(logger outbound.LoggerPort) outbound.MuxerPort {
	return &ffmpegMuxer{
		logger: logger,
	}
}

func (m *ffmpegMuxer) Mux(ctx context.Context, params outbound.MuxParams) (string, error) {
	args := m.buildArgs(params)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		m.logger.ErrorWithFields(err, "Failed to mux final video", map[string]interface{}{
			"video":  params.VideoPath,
			"audio":  params.AudioPath,
			"output": string(out),
		})
		return "", fmt.Errorf("%w: %v", domain.ErrMux, err)
	}

	return params.OutputPath, nil
}

func (m *ffmpegMuxer) buildArgs(params outbound.MuxParams) []string {
	args := []string{"-y"}
	if params.LoopVideo {
		args = append(args, "-stream_loop", "-1")
	}
	args = append(args, "-i", params.VideoPath, "-i", params.AudioPath)

	if params.SubtitlePath != "" {
		args = append(args, "-vf", "subtitles="+escapeSubtitlePath(params.SubtitlePath)+
			":force_style='"+subtitleStyle+"'")
	}

	// Caption burn-in touches pixels, so it forces a re-encode. Without
	// captions a concatenated timeline keeps its streams untouched.
	if params.SubtitlePath != "" || params.LoopVideo {
		args = append(args, "-c:v", "libx264", "-tune", "animation", "-c:a", "aac")
	} else {
		args = append(args, "-c:v", "copy", "-c:a", "aac")
	}

	args = append(args, "-map", "0:v:0", "-map", "1:a:0", "-shortest", params.OutputPath)

	return args
}

func escapeSubtitlePath(path string) string {
	escaped := strings.ReplaceAll(path, "\\", "/")
	return strings.ReplaceAll(escaped, ":", "\\:")
}
