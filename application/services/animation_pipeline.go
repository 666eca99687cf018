package services

import (
	"context"
	"os"
	"path/filepath"

	"github.com/manavmaharishi/voicemation-final/application/ports/inbound"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/config"
	"github.com/manavmaharishi/voicemation-final/domain"
)

const (
	narrationFileName = "narration.mp3"
	captionsFileName  = "captions.srt"
	finalFileName     = "final.mp4"
)

type animationPipeline struct {
	workspace    *config.WorkspaceConfig
	normalizer   inbound.RequestNormalizerPort
	completion   outbound.CompletionPort
	materializer inbound.SceneMaterializerPort
	renderer     inbound.SceneRendererPort
	concatenator outbound.ConcatenatorPort
	synthesizer  outbound.SpeechSynthesizerPort
	subtitles    inbound.SubtitleBuilderPort
	muxer        outbound.MuxerPort
	resultStore  outbound.ResultStorePort
	publisher    outbound.VideoPublisherPort
	logger       outbound.LoggerPort
}

// NewAnimationPipeline wires the full request flow. publisher may be nil when
// no durable store is configured; everything else is required.
func NewAnimationPipeline(
	workspace *config.WorkspaceConfig,
	normalizer inbound.RequestNormalizerPort,
	completion outbound.CompletionPort,
	materializer inbound.SceneMaterializerPort,
	renderer inbound.SceneRendererPort,
	concatenator outbound.ConcatenatorPort,
	synthesizer outbound.SpeechSynthesizerPort,
	subtitles inbound.SubtitleBuilderPort,
	muxer outbound.MuxerPort,
	resultStore outbound.ResultStorePort,
	publisher outbound.VideoPublisherPort,
	logger outbound.LoggerPort,
) inbound.AnimationPipelinePort {
	return &animationPipeline{
		workspace:    workspace,
		normalizer:   normalizer,
		completion:   completion,
		materializer: materializer,
		renderer:     renderer,
		concatenator: concatenator,
		synthesizer:  synthesizer,
		subtitles:    subtitles,
		muxer:        muxer,
		resultStore:  resultStore,
		publisher:    publisher,
		logger:       logger,
	}
}

// Run executes the stages in order, short-circuiting on the first failure.
// Every stage reads from and writes into the per-request workspace directory,
// so concurrent requests never share paths.
func (p *animationPipeline) Run(ctx context.Context, params inbound.StartPipelineParams) (*domain.AnimationResult, error) {
	workDir := filepath.Join(p.workspace.Root, params.RequestID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		p.logger.Error(err, "Failed to create request workspace")
		return nil, err
	}

	if params.AudioPath != "" {
		defer os.Remove(params.AudioPath)
	}

	p.saveStatus(ctx, domain.StoredResult{
		RequestID: params.RequestID,
		Status:    domain.StatusRunning,
	})

	topic, err := p.normalizer.Normalize(ctx, inbound.NormalizeParams{
		Text:      params.Text,
		AudioPath: params.AudioPath,
		WorkDir:   workDir,
	})
	if err != nil {
		return nil, p.fail(ctx, params.RequestID, "", err)
	}

	request := domain.NewAnimationRequest(params.RequestID, topic, params.Mode)
	p.logger.InfoWithFields("Starting animation pipeline", map[string]interface{}{
		"request_id": request.RequestID,
		"topic":      request.Topic,
		"mode":       string(request.Mode),
	})

	blob, err := p.completion.Complete(ctx, outbound.CompletionRequest{
		Topic: request.Topic,
		Mode:  request.Mode,
	})
	if err != nil {
		return nil, p.fail(ctx, request.RequestID, request.Topic, err)
	}

	explanation, code, err := SplitResponse(blob)
	if err != nil {
		return nil, p.fail(ctx, request.RequestID, request.Topic, err)
	}
	code = Sanitize(code)

	script, err := p.materializer.Materialize(inbound.MaterializeParams{
		Source:  code,
		Topic:   request.Topic,
		Mode:    request.Mode,
		WorkDir: workDir,
	})
	if err != nil {
		return nil, p.fail(ctx, request.RequestID, request.Topic, err)
	}

	clips, err := p.renderer.RenderScenes(ctx, script, workDir)
	if err != nil {
		return nil, p.fail(ctx, request.RequestID, request.Topic, err)
	}

	videoPath, err := p.concatenator.Concatenate(clips, workDir)
	if err != nil {
		return nil, p.fail(ctx, request.RequestID, request.Topic, err)
	}

	narration, err := p.synthesizer.Synthesize(ctx, explanation, filepath.Join(workDir, narrationFileName))
	if err != nil {
		return nil, p.fail(ctx, request.RequestID, request.Topic, err)
	}

	srtPath := p.writeCaptions(explanation, narration, workDir)
	if srtPath != "" {
		defer os.Remove(srtPath)
	}

	finalPath, err := p.muxer.Mux(ctx, outbound.MuxParams{
		VideoPath:    videoPath,
		AudioPath:    narration.FilePath,
		OutputPath:   filepath.Join(workDir, finalFileName),
		SubtitlePath: srtPath,
		LoopVideo:    len(clips) == 1,
	})
	if err != nil {
		return nil, p.fail(ctx, request.RequestID, request.Topic, err)
	}

	result := &domain.AnimationResult{
		RequestID: request.RequestID,
		Topic:     request.Topic,
		VideoPath: finalPath,
		Duration:  narration.Duration,
	}

	if p.publisher != nil {
		published, err := p.publisher.Publish(ctx, outbound.PublishVideoRequest{
			RequestID:     request.RequestID,
			VideoFileName: finalPath,
		})
		if err != nil {
			p.logger.ErrorWithFields(err, "Failed to publish final video, keeping local copy only", map[string]interface{}{
				"request_id": request.RequestID,
			})
		} else {
			result.VideoKey = published.VideoKey
		}
	}

	p.saveStatus(ctx, domain.StoredResult{
		RequestID: request.RequestID,
		Status:    domain.StatusCompleted,
		Topic:     request.Topic,
		VideoPath: finalPath,
	})

	p.logger.InfoWithFields("Animation pipeline completed", map[string]interface{}{
		"request_id": request.RequestID,
		"video_path": finalPath,
		"scenes":     len(clips),
	})
	return result, nil
}

// writeCaptions builds and persists the SRT file. Captions are best effort:
// any problem leaves the video without burned-in subtitles instead of failing
// the request.
func (p *animationPipeline) writeCaptions(explanation string, narration *domain.NarrationTrack, workDir string) string {
	cues := p.subtitles.Build(explanation, narration.Duration)
	if len(cues) == 0 {
		return ""
	}
	srtPath := filepath.Join(workDir, captionsFileName)
	if err := os.WriteFile(srtPath, []byte(RenderSRT(cues)), 0o644); err != nil {
		p.logger.Error(err, "Failed to write captions, muxing without subtitles")
		return ""
	}
	return srtPath
}

func (p *animationPipeline) fail(ctx context.Context, requestID string, topic string, err error) error {
	p.logger.ErrorWithFields(err, "Animation pipeline failed", map[string]interface{}{
		"request_id": requestID,
	})
	p.saveStatus(ctx, domain.StoredResult{
		RequestID: requestID,
		Status:    domain.StatusFailed,
		Topic:     topic,
		Error:     err.Error(),
	})
	return err
}

func (p *animationPipeline) saveStatus(ctx context.Context, result domain.StoredResult) {
	if err := p.resultStore.Save(ctx, result); err != nil {
		p.logger.ErrorWithFields(err, "Failed to save request status", map[string]interface{}{
			"request_id": result.RequestID,
		})
	}
}
