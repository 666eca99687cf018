package outbound

import "context"

type MuxParams struct {
	VideoPath  string
	AudioPath  string
	OutputPath string
	// SubtitlePath points at an SRT file to burn in; empty means no captions.
	SubtitlePath string
	// LoopVideo is set for single-scene runs: the clip wraps around until the
	// narration ends. Concatenated multi-scene timelines are only trimmed.
	LoopVideo bool
}

type MuxerPort interface {
	Mux(ctx context.Context, params MuxParams) (string, error)
}
