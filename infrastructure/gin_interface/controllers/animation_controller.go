package controllers

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/manavmaharishi/voicemation-final/application/ports/inbound"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/config"
	"github.com/manavmaharishi/voicemation-final/domain"
	"github.com/manavmaharishi/voicemation-final/infrastructure/gin_interface/dto"
)

type AnimationController interface {
	Generate(c *gin.Context)
	GenerateFromAudio(c *gin.Context)
	GetVideo(c *gin.Context)
	StreamEvents(c *gin.Context)
	Health(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type animationController struct {
	logger      outbound.LoggerPort
	pipeline    inbound.AnimationPipelinePort
	dispatcher  outbound.TaskDispatcher
	resultStore outbound.ResultStorePort
	workspace   *config.WorkspaceConfig
}

func NewAnimationController(
	logger outbound.LoggerPort,
	pipeline inbound.AnimationPipelinePort,
	dispatcher outbound.TaskDispatcher,
	resultStore outbound.ResultStorePort,
	workspace *config.WorkspaceConfig,
) AnimationController {
	return &animationController{
		logger:      logger,
		pipeline:    pipeline,
		dispatcher:  dispatcher,
		resultStore: resultStore,
		workspace:   workspace,
	}
}

func (a *animationController) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, dto.ErrorResponse{Error: err.Error()})
		return
	}

	requestID := uuid.NewString()
	params := inbound.StartPipelineParams{
		RequestID: requestID,
		Text:      req.Text,
		Mode:      modeFromFlag(req.InDepthMode),
	}

	if asyncRequested(c) {
		a.launchAsync(c, requestID, params)
		return
	}
	a.runSync(c, requestID, params)
}

func (a *animationController) GenerateFromAudio(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(400, dto.ErrorResponse{Error: "audio file is required"})
		return
	}

	requestID := uuid.NewString()
	workDir := filepath.Join(a.workspace.Root, requestID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		a.logger.Error(err, "failed to create request workspace")
		c.JSON(500, dto.ErrorResponse{Error: "internal error"})
		return
	}

	audioPath := filepath.Join(workDir, "upload"+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, audioPath); err != nil {
		a.logger.Error(err, "failed to save uploaded audio")
		c.JSON(500, dto.ErrorResponse{Error: "internal error"})
		return
	}

	params := inbound.StartPipelineParams{
		RequestID: requestID,
		AudioPath: audioPath,
		Mode:      modeFromFlag(c.PostForm("in_depth_mode") == "true"),
	}

	if asyncRequested(c) {
		a.launchAsync(c, requestID, params)
		return
	}
	a.runSync(c, requestID, params)
}

// runSync executes the pipeline on the caller's own connection and answers
// with the finished video locator plus the recognized or echoed topic text.
func (a *animationController) runSync(c *gin.Context, requestID string, params inbound.StartPipelineParams) {
	result, err := a.pipeline.Run(c.Request.Context(), params)
	if err != nil {
		status := 500
		if errors.Is(err, domain.ErrEmptyInput) || errors.Is(err, domain.ErrUnrecognizedSpeech) {
			status = 400
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(200, dto.GenerateResponse{
		Success:   true,
		RequestID: requestID,
		VideoURL:  "/videos/" + requestID,
		Text:      result.Topic,
	})
}

// launchAsync records the request as running before queueing it, so a status
// probe arriving ahead of the worker still finds the ID.
func (a *animationController) launchAsync(c *gin.Context, requestID string, params inbound.StartPipelineParams) {
	if err := a.resultStore.Save(c, domain.StoredResult{
		RequestID: requestID,
		Status:    domain.StatusRunning,
	}); err != nil {
		a.logger.Error(err, "failed to save initial request status")
	}

	err := a.dispatcher.Submit(func() {
		if _, err := a.pipeline.Run(context.Background(), params); err != nil {
			a.logger.ErrorWithFields(err, "pipeline run failed", map[string]interface{}{
				"request_id": requestID,
			})
		}
	})
	if err != nil {
		a.logger.Error(err, "failed to submit pipeline task")
		c.JSON(503, dto.ErrorResponse{Error: "server is at capacity, try again later"})
		return
	}

	c.JSON(202, dto.GenerateResponse{
		Success:   true,
		RequestID: requestID,
		VideoURL:  "/videos/" + requestID,
	})
}

func (a *animationController) GetVideo(c *gin.Context) {
	requestID := c.Param("request_id")
	result, err := a.resultStore.Get(c, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			c.JSON(404, dto.ErrorResponse{Error: "unknown request id"})
			return
		}
		a.logger.Error(err, "failed to read result store")
		c.JSON(500, dto.ErrorResponse{Error: "internal error"})
		return
	}

	switch result.Status {
	case domain.StatusRunning:
		c.JSON(202, dto.StatusEvent{RequestID: requestID, Status: string(result.Status), Topic: result.Topic})
	case domain.StatusFailed:
		c.JSON(500, dto.ErrorResponse{Error: result.Error})
	default:
		if _, err := os.Stat(result.VideoPath); err != nil {
			c.JSON(410, dto.ErrorResponse{Error: "video artifact expired"})
			return
		}
		c.File(result.VideoPath)
	}
}

// StreamEvents pushes status updates for a request until it reaches a
// terminal state or the client disconnects.
func (a *animationController) StreamEvents(c *gin.Context) {
	requestID := c.Param("request_id")
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-ticker.C:
		}

		result, err := a.resultStore.Get(c, requestID)
		if err != nil {
			if errors.Is(err, domain.ErrResultNotFound) {
				c.SSEvent("status", dto.StatusEvent{RequestID: requestID, Status: "unknown"})
				return false
			}
			a.logger.Error(err, "failed to read result store")
			return false
		}

		event := dto.StatusEvent{
			RequestID: requestID,
			Status:    string(result.Status),
			Topic:     result.Topic,
			Error:     result.Error,
		}
		if result.Status == domain.StatusCompleted {
			event.VideoURL = "/videos/" + requestID
		}
		c.SSEvent("status", event)
		return result.Status == domain.StatusRunning
	})
}

func (a *animationController) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

func (a *animationController) RegisterRoutes(g *gin.Engine) {
	g.POST("/generate", a.Generate)
	g.POST("/generate_audio", a.GenerateFromAudio)
	g.GET("/videos/:request_id", a.GetVideo)
	g.GET("/health", a.Health)
}

func asyncRequested(c *gin.Context) bool {
	async := c.Query("async")
	return async == "1" || async == "true"
}

func modeFromFlag(inDepth bool) domain.Mode {
	if inDepth {
		return domain.InDepthMode
	}
	return domain.StandardMode
}
