package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/manavmaharishi/voicemation-final/application/ports/inbound"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/config"
	"github.com/manavmaharishi/voicemation-final/domain"
	"github.com/manavmaharishi/voicemation-final/infrastructure/adapters"
	"github.com/manavmaharishi/voicemation-final/infrastructure/gin_interface/dto"
	"github.com/manavmaharishi/voicemation-final/middleware"
)

const fakeTranscript = "the pythagorean theorem"

// sseRecorder implements http.CloseNotifier, which gin's Context.Stream
// requires and the plain httptest recorder lacks.
type sseRecorder struct {
	*httptest.ResponseRecorder
	closeNotify chan bool
}

func newSSERecorder() *sseRecorder {
	return &sseRecorder{ResponseRecorder: httptest.NewRecorder(), closeNotify: make(chan bool, 1)}
}

func (r *sseRecorder) CloseNotify() <-chan bool { return r.closeNotify }

// syncDispatcher runs submitted tasks inline so handler tests observe the
// pipeline outcome without sleeping.
type syncDispatcher struct{}

func (d *syncDispatcher) Submit(task func()) error {
	task()
	return nil
}

type fakePipeline struct {
	store     outbound.ResultStorePort
	workspace *config.WorkspaceConfig
	gotParams inbound.StartPipelineParams
	err       error
}

func (f *fakePipeline) Run(ctx context.Context, params inbound.StartPipelineParams) (*domain.AnimationResult, error) {
	f.gotParams = params
	if f.err != nil {
		_ = f.store.Save(ctx, domain.StoredResult{
			RequestID: params.RequestID,
			Status:    domain.StatusFailed,
			Error:     f.err.Error(),
		})
		return nil, f.err
	}

	topic := params.Text
	if params.AudioPath != "" {
		topic = fakeTranscript
	}

	videoPath := filepath.Join(f.workspace.Root, params.RequestID+".mp4")
	if err := os.WriteFile(videoPath, []byte("video"), 0o644); err != nil {
		return nil, err
	}
	_ = f.store.Save(ctx, domain.StoredResult{
		RequestID: params.RequestID,
		Status:    domain.StatusCompleted,
		Topic:     topic,
		VideoPath: videoPath,
	})
	return &domain.AnimationResult{RequestID: params.RequestID, Topic: topic, VideoPath: videoPath}, nil
}

type controllerFixture struct {
	router    *gin.Engine
	pipeline  *fakePipeline
	store     outbound.ResultStorePort
	workspace *config.WorkspaceConfig
}

func newControllerFixture(t *testing.T, pipelineErr error) *controllerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	workspace := &config.WorkspaceConfig{Root: t.TempDir()}
	store := adapters.NewMemoryResultStore()
	pipeline := &fakePipeline{store: store, workspace: workspace, err: pipelineErr}

	controller := NewAnimationController(adapters.NewZerologWrapper(), pipeline, &syncDispatcher{}, store, workspace)

	router := gin.New()
	controller.RegisterRoutes(router)
	router.GET("/events/:request_id", middleware.SSEMiddleware(), controller.StreamEvents)
	return &controllerFixture{router: router, pipeline: pipeline, store: store, workspace: workspace}
}

func postGenerate(t *testing.T, router *gin.Engine, path string, req dto.GenerateRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatal("Failed to marshal request:", err)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body)))
	return rec
}

func decodeGenerateResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.GenerateResponse {
	t.Helper()
	var resp dto.GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal("Bad response body:", err)
	}
	return resp
}

func TestGenerateSynchronousDefault(t *testing.T) {
	fixture := newControllerFixture(t, nil)

	rec := postGenerate(t, fixture.router, "/generate", dto.GenerateRequest{Text: "the chain rule", InDepthMode: true})
	if rec.Code != 200 {
		t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decodeGenerateResponse(t, rec)
	if !resp.Success || resp.RequestID == "" {
		t.Errorf("Response = %+v", resp)
	}
	if resp.Text != "the chain rule" {
		t.Errorf("Echoed text = %q", resp.Text)
	}
	if resp.VideoURL != "/videos/"+resp.RequestID {
		t.Errorf("VideoURL = %s", resp.VideoURL)
	}
	if fixture.pipeline.gotParams.Mode != domain.InDepthMode {
		t.Errorf("Mode = %s", fixture.pipeline.gotParams.Mode)
	}

	rec = httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.VideoURL, nil))
	if rec.Code != 200 || rec.Body.String() != "video" {
		t.Errorf("Video fetch after sync run: status %d body %q", rec.Code, rec.Body.String())
	}
}

func TestGenerateAsyncOptIn(t *testing.T) {
	fixture := newControllerFixture(t, nil)

	rec := postGenerate(t, fixture.router, "/generate?async=1", dto.GenerateRequest{Text: "fractions"})
	if rec.Code != 202 {
		t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decodeGenerateResponse(t, rec)
	if resp.Text != "" {
		t.Errorf("Async accept must not echo text, got %q", resp.Text)
	}

	rec = httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/"+resp.RequestID, nil))
	if rec.Code != 200 {
		t.Errorf("Status after inline async run = %d", rec.Code)
	}
}

func TestGenerateMissingText(t *testing.T) {
	fixture := newControllerFixture(t, nil)

	rec := httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader([]byte(`{}`))))

	if rec.Code != 400 {
		t.Fatalf("Status = %d", rec.Code)
	}
}

func TestGenerateSyncFailure(t *testing.T) {
	fixture := newControllerFixture(t, domain.ErrNoScenesRendered)

	rec := postGenerate(t, fixture.router, "/generate", dto.GenerateRequest{Text: "fractions"})
	if rec.Code != 500 {
		t.Fatalf("Status = %d", rec.Code)
	}

	var errResp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatal("Bad error body:", err)
	}
	if errResp.Error != domain.ErrNoScenesRendered.Error() {
		t.Errorf("Error = %q", errResp.Error)
	}
}

func TestGenerateSyncBadInput(t *testing.T) {
	fixture := newControllerFixture(t, domain.ErrUnrecognizedSpeech)

	rec := postGenerate(t, fixture.router, "/generate", dto.GenerateRequest{Text: "mumble"})
	if rec.Code != 400 {
		t.Fatalf("Input-class failures must map to 400, got %d", rec.Code)
	}
}

func TestGenerateFromAudio(t *testing.T) {
	fixture := newControllerFixture(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("audio", "clip.webm")
	if err != nil {
		t.Fatal("Failed to create form file:", err)
	}
	if _, err := fw.Write([]byte("webm-bytes")); err != nil {
		t.Fatal("Failed to write form file:", err)
	}
	if err := mw.WriteField("in_depth_mode", "true"); err != nil {
		t.Fatal("Failed to write form field:", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal("Failed to close form writer:", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/generate_audio", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decodeGenerateResponse(t, rec)
	if resp.Text != fakeTranscript {
		t.Errorf("Recognized text = %q", resp.Text)
	}

	params := fixture.pipeline.gotParams
	if params.Mode != domain.InDepthMode {
		t.Errorf("Mode = %s", params.Mode)
	}
	wantAudio := filepath.Join(fixture.workspace.Root, resp.RequestID, "upload.webm")
	if params.AudioPath != wantAudio {
		t.Errorf("AudioPath = %s, want %s", params.AudioPath, wantAudio)
	}
	saved, err := os.ReadFile(params.AudioPath)
	if err != nil {
		t.Fatal("Uploaded audio missing from workspace:", err)
	}
	if string(saved) != "webm-bytes" {
		t.Errorf("Uploaded audio content = %q", saved)
	}
}

func TestGenerateFromAudioMissingFile(t *testing.T) {
	fixture := newControllerFixture(t, nil)

	rec := httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate_audio", nil))

	if rec.Code != 400 {
		t.Fatalf("Status = %d", rec.Code)
	}
}

func TestStreamEvents(t *testing.T) {
	fixture := newControllerFixture(t, nil)

	if err := fixture.store.Save(context.Background(), domain.StoredResult{
		RequestID: "req-events",
		Status:    domain.StatusCompleted,
		Topic:     fakeTranscript,
		VideoPath: "/work/req-events/final.mp4",
	}); err != nil {
		t.Fatal("Save failed:", err)
	}

	rec := newSSERecorder()
	fixture.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/req-events", nil))

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q", got)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event:status") {
		t.Errorf("Missing status event: %q", body)
	}
	if !strings.Contains(body, `"status":"completed"`) {
		t.Errorf("Missing terminal status: %q", body)
	}
	if !strings.Contains(body, `"topic":"`+fakeTranscript+`"`) {
		t.Errorf("Recognized text missing from event: %q", body)
	}
	if !strings.Contains(body, `"video_url":"/videos/req-events"`) {
		t.Errorf("Video locator missing from event: %q", body)
	}
}

func TestStreamEventsUnknownRequest(t *testing.T) {
	fixture := newControllerFixture(t, nil)

	rec := newSSERecorder()
	fixture.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/nope", nil))

	if !strings.Contains(rec.Body.String(), `"status":"unknown"`) {
		t.Errorf("Expected unknown status event, got %q", rec.Body.String())
	}
}

func TestGetVideoUnknownRequest(t *testing.T) {
	fixture := newControllerFixture(t, nil)

	rec := httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/nope", nil))

	if rec.Code != 404 {
		t.Fatalf("Status = %d", rec.Code)
	}
}

func TestGetVideoFailedAsyncRequest(t *testing.T) {
	fixture := newControllerFixture(t, domain.ErrNoScenesRendered)

	rec := postGenerate(t, fixture.router, "/generate?async=1", dto.GenerateRequest{Text: "fractions"})
	if rec.Code != 202 {
		t.Fatalf("Accept status = %d", rec.Code)
	}
	resp := decodeGenerateResponse(t, rec)

	rec = httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/"+resp.RequestID, nil))

	if rec.Code != 500 {
		t.Fatalf("Status = %d", rec.Code)
	}
	var errResp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatal("Bad error body:", err)
	}
	if errResp.Error != domain.ErrNoScenesRendered.Error() {
		t.Errorf("Error = %q", errResp.Error)
	}
}

func TestHealth(t *testing.T) {
	fixture := newControllerFixture(t, nil)

	rec := httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != 200 {
		t.Fatalf("Status = %d", rec.Code)
	}
}
