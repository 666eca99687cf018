package mock_generator

import (
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
)

type Ports struct {
	Completion  outbound.CompletionPort
	Renderer    outbound.RendererPort
	Synthesizer outbound.SpeechSynthesizerPort
	Transcriber outbound.TranscriberPort
}

// Init builds the offline stub adapters. Enabled with MOCK_MODE=true; the
// rest of the pipeline, ffmpeg stages included, runs unchanged.
func Init(prober outbound.MediaProberPort, logger outbound.LoggerPort) *Ports {
	return &Ports{
		Completion:  NewStubCompletion(logger),
		Renderer:    NewStubRenderer(logger),
		Synthesizer: NewStubSynthesizer(prober, logger),
		Transcriber: NewStubTranscriber(),
	}
}
