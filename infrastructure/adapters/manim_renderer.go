package adapters

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/config"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type manimRenderer struct {
	logger         outbound.LoggerPort
	rendererConfig *config.RendererConfig
}

// NewManimRenderer shells out to the animation engine once per scene. The
// engine drops its clip at a deterministic path keyed by scene name under
// the working directory, which keeps concurrent requests isolated.
func NewManimRenderer(rendererConfig *config.RendererConfig, logger outbound.LoggerPort) outbound.RendererPort {
	return &manimRenderer{
		logger:         logger,
		rendererConfig: rendererConfig,
	}
}

func (r *manimRenderer) Render(ctx context.Context, scriptPath string, scene string, workDir string) (string, error) {
	renderCtx, cancel := context.WithTimeout(ctx, r.rendererConfig.Timeout)
	defer cancel()

	cmd := exec.CommandContext(renderCtx, r.rendererConfig.Binary,
		r.rendererConfig.QualityFlag, scriptPath, scene)
	cmd.Dir = workDir

	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(renderCtx.Err(), context.DeadlineExceeded) {
			r.logger.ErrorWithFields(err, "Scene render timed out", map[string]interface{}{
				"scene":   scene,
				"timeout": r.rendererConfig.Timeout.String(),
			})
			return "", fmt.Errorf("%w: scene %s", domain.ErrRenderTimeout, scene)
		}
		r.logger.ErrorWithFields(err, "Scene render failed", map[string]interface{}{
			"scene":  scene,
			"output": string(out),
		})
		return "", fmt.Errorf("%w: scene %s: %v", domain.ErrRender, scene, err)
	}

	return r.ClipPath(workDir, scene), nil
}

// ClipPath is where the engine writes the clip for a scene rendered out of workDir.
func (r *manimRenderer) ClipPath(workDir string, scene string) string {
	return filepath.Join(workDir, r.rendererConfig.MediaSubpath, scene+".mp4")
}
