package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/donovanhide/eventsource"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/config"
	"github.com/manavmaharishi/voicemation-final/domain"
)

const doneSignal = "[DONE]"

type chatCompletionRequest struct {
	Stream      bool          `json:"stream"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionChunk struct {
	Choices []chatCompletionChoice `json:"choices"`
}

type chatCompletionChoice struct {
	Index int `json:"index"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type completionGenerator struct {
	logger           outbound.LoggerPort
	completionConfig *config.CompletionConfig
}

// NewCompletionGenerator streams a chat completion over SSE and accumulates
// the deltas into the single combined explanation+code blob the splitter
// consumes. Call failures propagate; there is no retry.
func NewCompletionGenerator(completionConfig *config.CompletionConfig, logger outbound.LoggerPort) outbound.CompletionPort {
	return &completionGenerator{
		logger:           logger,
		completionConfig: completionConfig,
	}
}

func (g *completionGenerator) Complete(ctx context.Context, req outbound.CompletionRequest) (string, error) {
	if g.completionConfig.ApiKey == "" {
		return "", domain.ErrMissingCredentials
	}

	httpReq, err := g.createRequest(ctx, req)
	if err != nil {
		g.logger.Error(err, "Failed to create HTTP request for completion stream")
		return "", fmt.Errorf("%w: %v", domain.ErrCompletion, err)
	}

	stream, err := eventsource.SubscribeWithRequest("", httpReq)
	if err != nil {
		g.logger.Error(err, "Failed to subscribe to completion stream")
		return "", fmt.Errorf("%w: %v", domain.ErrCompletion, err)
	}
	// Close stops the reader goroutine and the library's reconnect loop;
	// without it every request leaves a goroutine blocked on the stream
	// channels once the server hangs up.
	defer stream.Close()

	var blob strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", domain.ErrCompletion, ctx.Err())
		case ev := <-stream.Events:
			if ev.Data() == doneSignal {
				return blob.String(), nil
			}
			payload, err := g.extractPayload(ev.Data())
			if err != nil {
				return "", fmt.Errorf("%w: %v", domain.ErrCompletion, err)
			}
			blob.WriteString(payload)
		case err := <-stream.Errors:
			if err == io.EOF {
				g.logger.InfoWithFields("Completion stream closed", map[string]interface{}{
					"chars": blob.Len(),
				})
				return blob.String(), nil
			}
			g.logger.Error(err, "Error occurred during completion streaming")
			return "", fmt.Errorf("%w: %v", domain.ErrCompletion, err)
		}
	}
}

func (g *completionGenerator) extractPayload(data string) (string, error) {
	var chunk chatCompletionChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		g.logger.Error(err, "Failed to unmarshal completion chunk")
		return "", err
	}
	if len(chunk.Choices) == 0 {
		return "", nil
	}
	return chunk.Choices[0].Delta.Content, nil
}

func (g *completionGenerator) createRequest(ctx context.Context, req outbound.CompletionRequest) (*http.Request, error) {
	systemPrompt := standardSystemPrompt
	userMessage := req.Topic
	maxTokens := g.completionConfig.MaxTokens
	if req.Mode == domain.InDepthMode {
		systemPrompt = inDepthSystemPrompt
		userMessage = req.Topic + inDepthUserSuffix
		maxTokens = g.completionConfig.MaxTokensInDepth
	}

	promptReq := chatCompletionRequest{
		Stream:      true,
		Model:       g.completionConfig.Model,
		Temperature: g.completionConfig.Temperature,
		MaxTokens:   maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the completion request body")
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.completionConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+g.completionConfig.ApiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}
