package config

import (
	"os"
	"strconv"
	"time"
)

type RendererConfig struct {
	Binary       string
	QualityFlag  string
	MediaSubpath string
	Timeout      time.Duration
}

// GetRendererConfig reads the animation engine invocation settings. The
// engine writes clips under MediaSubpath relative to its working directory,
// keyed by scene name.
func GetRendererConfig() (*RendererConfig, error) {
	binary := os.Getenv("RENDERER_BINARY")
	if binary == "" {
		binary = "manim"
	}
	qualityFlag := os.Getenv("RENDERER_QUALITY_FLAG")
	if qualityFlag == "" {
		qualityFlag = "-ql"
	}
	mediaSubpath := os.Getenv("RENDERER_MEDIA_SUBPATH")
	if mediaSubpath == "" {
		mediaSubpath = "media/videos/scenes/480p15"
	}

	timeout := 300 * time.Second
	if v := os.Getenv("RENDERER_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil && seconds > 0 {
			timeout = time.Duration(seconds) * time.Second
		}
	}

	return &RendererConfig{
		Binary:       binary,
		QualityFlag:  qualityFlag,
		MediaSubpath: mediaSubpath,
		Timeout:      timeout,
	}, nil
}
