package outbound

import "context"

// RendererPort invokes the external animation engine for one scene of a
// script file and returns the path of the produced clip. The engine writes
// the clip to a deterministic location keyed by the scene name; workDir is
// the directory the engine runs in, so concurrent requests stay isolated.
type RendererPort interface {
	Render(ctx context.Context, scriptPath string, scene string, workDir string) (string, error)
}
