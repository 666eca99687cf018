package inbound

import "github.com/manavmaharishi/voicemation-final/domain"

type MaterializeParams struct {
	Source  string
	Topic   string
	Mode    domain.Mode
	WorkDir string
}

// SceneMaterializerPort persists the sanitized script and reports the scene
// names found in it, substituting the multi-scene fallback when in-depth mode
// got fewer than two scenes from the model.
type SceneMaterializerPort interface {
	Materialize(params MaterializeParams) (*domain.SceneScript, error)
}
