package services

import (
	"context"
	"fmt"
	"os"

	"github.com/manavmaharishi/voicemation-final/application/ports/inbound"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type sceneRenderer struct {
	renderer outbound.RendererPort
	logger   outbound.LoggerPort
}

func NewSceneRenderer(renderer outbound.RendererPort, logger outbound.LoggerPort) inbound.SceneRendererPort {
	return &sceneRenderer{
		renderer: renderer,
		logger:   logger,
	}
}

// RenderScenes renders every scene of the script in declaration order. With a
// single scene any failure aborts the request; with multiple scenes a failed
// render is skipped so one broken scene does not sink the whole video.
func (r *sceneRenderer) RenderScenes(ctx context.Context, script *domain.SceneScript, workDir string) ([]domain.RenderedClip, error) {
	if len(script.Scenes) == 1 {
		scene := script.Scenes[0]
		clipPath, err := r.renderer.Render(ctx, script.FilePath, scene, workDir)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(clipPath); err != nil {
			return nil, fmt.Errorf("%w: output clip missing for scene %s", domain.ErrRender, scene)
		}
		return []domain.RenderedClip{{Scene: scene, FilePath: clipPath}}, nil
	}

	clips := make([]domain.RenderedClip, 0, len(script.Scenes))
	for _, scene := range script.Scenes {
		clipPath, err := r.renderer.Render(ctx, script.FilePath, scene, workDir)
		if err != nil {
			r.logger.ErrorWithFields(err, "Scene render failed, skipping", map[string]interface{}{
				"scene": scene,
			})
			continue
		}
		if _, err := os.Stat(clipPath); err != nil {
			r.logger.WarnWithFields("Scene reported success but clip is missing, skipping", map[string]interface{}{
				"scene": scene,
			})
			continue
		}
		clips = append(clips, domain.RenderedClip{Scene: scene, FilePath: clipPath})
	}

	if len(clips) == 0 {
		return nil, domain.ErrNoScenesRendered
	}
	return clips, nil
}
