package adapters

import (
	"strings"
	"testing"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
)

func muxArgs(t *testing.T, params outbound.MuxParams) string {
	t.Helper()
	muxer := NewFFmpegMuxer(NewZerologWrapper()).(*ffmpegMuxer)
	return strings.Join(muxer.buildArgs(params), " ")
}

func TestMuxArgsLoopedSingleScene(t *testing.T) {
	args := muxArgs(t, outbound.MuxParams{
		VideoPath:  "/work/clip.mp4",
		AudioPath:  "/work/narration.mp3",
		OutputPath: "/work/final.mp4",
		LoopVideo:  true,
	})

	if !strings.Contains(args, "-stream_loop -1 -i /work/clip.mp4") {
		t.Errorf("Loop flag must precede the video input: %s", args)
	}
	if !strings.Contains(args, "-shortest") {
		t.Errorf("Looped video must be trimmed to the narration: %s", args)
	}
	if !strings.Contains(args, "-c:v libx264") {
		t.Errorf("Looping requires a re-encode: %s", args)
	}
}

func TestMuxArgsMultiSceneNoCaptions(t *testing.T) {
	args := muxArgs(t, outbound.MuxParams{
		VideoPath:  "/work/combined.mp4",
		AudioPath:  "/work/narration.mp3",
		OutputPath: "/work/final.mp4",
	})

	if strings.Contains(args, "-stream_loop") {
		t.Errorf("Multi-scene timeline must not loop: %s", args)
	}
	if !strings.Contains(args, "-c:v copy") {
		t.Errorf("Expected stream copy without captions: %s", args)
	}
}

func TestMuxArgsCaptionsBurnIn(t *testing.T) {
	args := muxArgs(t, outbound.MuxParams{
		VideoPath:    "/work/combined.mp4",
		AudioPath:    "/work/narration.mp3",
		OutputPath:   "/work/final.mp4",
		SubtitlePath: "/work/captions.srt",
	})

	if !strings.Contains(args, "-vf subtitles=/work/captions.srt:force_style='"+subtitleStyle+"'") {
		t.Errorf("Caption filter missing or malformed: %s", args)
	}
	if !strings.Contains(args, "-c:v libx264 -tune animation") {
		t.Errorf("Caption burn-in requires a re-encode: %s", args)
	}
	if strings.Contains(args, "-c:v copy") {
		t.Errorf("Stream copy is impossible with burned-in captions: %s", args)
	}
}

func TestMuxArgsMappingOrder(t *testing.T) {
	args := muxArgs(t, outbound.MuxParams{
		VideoPath:  "/work/v.mp4",
		AudioPath:  "/work/a.mp3",
		OutputPath: "/work/final.mp4",
	})

	if !strings.HasSuffix(args, "-map 0:v:0 -map 1:a:0 -shortest /work/final.mp4") {
		t.Errorf("Unexpected tail: %s", args)
	}
}

func TestEscapeSubtitlePath(t *testing.T) {
	if got := escapeSubtitlePath(`C:\work\captions.srt`); got != `C\:/work/captions.srt` {
		t.Errorf("escapeSubtitlePath() = %q", got)
	}
}
