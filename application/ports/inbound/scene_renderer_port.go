package inbound

import (
	"context"

	"github.com/manavmaharishi/voicemation-final/domain"
)

// SceneRendererPort renders every scene of a script sequentially. With more
// than one scene, a scene that fails or leaves no output is skipped; the
// batch fails only when nothing rendered at all.
type SceneRendererPort interface {
	RenderScenes(ctx context.Context, script *domain.SceneScript, workDir string) ([]domain.RenderedClip, error)
}
