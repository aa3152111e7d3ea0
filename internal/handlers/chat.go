package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/services"
)

// ChatForwarder is the gateway surface the proxy endpoint needs.
type ChatForwarder interface {
	Forward(ctx context.Context, req models.ChatProxyRequest) (openai.ChatCompletionResponse, error)
}

// ChatHandler exposes POST /api/chat: a thin proxy that forwards a
// messages-form request upstream with the server-held credential and
// strips code fences from the assistant reply before returning it.
type ChatHandler struct {
	gateway ChatForwarder
}

func NewChatHandler(gateway ChatForwarder) *ChatHandler {
	return &ChatHandler{gateway: gateway}
}

func (h *ChatHandler) Forward(w http.ResponseWriter, r *http.Request) {
	var req models.ChatProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "messages is required", r))
		return
	}
	for _, m := range req.Messages {
		if m.Role != "system" && m.Role != "user" && m.Role != "assistant" {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "message role must be system, user, or assistant", r))
			return
		}
		if strings.TrimSpace(m.Content) == "" {
			writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", map[string]string{
				"messages": "message content must not be empty",
			}, r))
			return
		}
	}
	if req.Temperature != nil && (*req.Temperature < 0 || *req.Temperature > 2) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "temperature must be between 0 and 2", r))
		return
	}

	resp, err := h.gateway.Forward(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	// The client gets plain text, never a fenced block
	if len(resp.Choices) > 0 {
		resp.Choices[0].Message.Content = services.Sanitize(resp.Choices[0].Message.Content)
	}

	writeJSON(w, http.StatusOK, resp)
}
