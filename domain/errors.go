package domain

import "errors"

// Pipeline failure taxonomy. Every stage either returns a usable result or
// one of these wrapped with context; there is no automatic retry anywhere.
var (
	ErrEmptyInput            = errors.New("no input text provided")
	ErrUnrecognizedSpeech    = errors.New("could not understand audio")
	ErrTranscribeUnavailable = errors.New("speech recognition service unavailable")
	ErrTranscodeFailure      = errors.New("failed to convert audio")

	ErrMissingCredentials = errors.New("completion credentials missing")
	ErrCompletion         = errors.New("completion request failed")
	ErrNoCodeBlock        = errors.New("no scene code block in model response")

	ErrRender           = errors.New("scene render failed")
	ErrRenderTimeout    = errors.New("scene render timed out")
	ErrNoScenesRendered = errors.New("no scenes were rendered")

	ErrConcat    = errors.New("clip concatenation failed")
	ErrSynthesis = errors.New("narration synthesis failed")
	ErrMux       = errors.New("final mux failed")

	ErrResultNotFound = errors.New("no result for request")
)
