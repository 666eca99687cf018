package domain

type Mode string

const (
	StandardMode Mode = "standard"
	InDepthMode  Mode = "in_depth"
)

// AnimationRequest is the normalized form of an incoming call, immutable once built.
type AnimationRequest struct {
	RequestID string
	Topic     string
	Mode      Mode
}

func NewAnimationRequest(requestID string, topic string, mode Mode) AnimationRequest {
	return AnimationRequest{
		RequestID: requestID,
		Topic:     topic,
		Mode:      mode,
	}
}

// SceneScript holds sanitized scene source plus the scene names discovered in it.
// Scene order defines render and concatenation order.
type SceneScript struct {
	Source   string
	Scenes   []string
	FilePath string
}

type RenderedClip struct {
	Scene    string
	FilePath string
}

// NarrationTrack duration is read back from the encoded file and is the
// timing source of truth for subtitles and loop/trim decisions.
type NarrationTrack struct {
	FilePath string
	Duration float64
}

type SubtitleCue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

type AnimationResult struct {
	RequestID string
	Topic     string
	VideoPath string
	VideoKey  string
	Duration  float64
}

type RequestStatus string

const (
	StatusRunning   RequestStatus = "running"
	StatusCompleted RequestStatus = "completed"
	StatusFailed    RequestStatus = "failed"
)

// StoredResult is the keyed record backing /videos/:id and /events/:id.
type StoredResult struct {
	RequestID string
	Status    RequestStatus
	Topic     string
	VideoPath string
	Error     string
}
