package services

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"studyjournal-backend/internal/models"
)

// ChatGateway issues single-attempt requests to the chat-completions
// service. The credential is process configuration, never taken from a
// caller, and no retries happen here: callers own retry policy.
type ChatGateway struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewChatGateway(apiKey, model, baseURL string, timeout time.Duration) *ChatGateway {
	g := &ChatGateway{model: model, timeout: timeout}
	if apiKey == "" {
		// No client: every request fails with a ConfigurationError,
		// the process itself stays up.
		return g
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	g.client = openai.NewClientWithConfig(cfg)
	return g
}

// Complete sends one system/user prompt pair and returns the raw
// assistant text.
func (g *ChatGateway) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	resp, err := g.do(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{StatusCode: 200, Body: "completion contained no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Forward passes a messages-form proxy request through unchanged,
// filling in the configured model when the caller omitted one.
func (g *ChatGateway) Forward(ctx context.Context, req models.ChatProxyRequest) (openai.ChatCompletionResponse, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	upstream := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	}
	if upstream.Model == "" {
		upstream.Model = g.model
	}
	if req.Temperature != nil {
		upstream.Temperature = *req.Temperature
	}

	return g.do(ctx, upstream)
}

func (g *ChatGateway) do(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if g.client == nil {
		return openai.ChatCompletionResponse{}, &ConfigurationError{
			Message: "OPENAI_API_KEY is not configured",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return resp, classifyError(err)
	}
	return resp, nil
}

func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}

	return &TransportError{Err: err}
}
