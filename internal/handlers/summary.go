package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/services"
)

type SummaryHandler struct {
	generator *services.Generator
}

func NewSummaryHandler(generator *services.Generator) *SummaryHandler {
	return &SummaryHandler{generator: generator}
}

// Generate condenses a study note into bullet points. This is a single
// fast completion, so it runs synchronously in the request.
func (h *SummaryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", map[string]string{
			"text": "text is required",
		}, r))
		return
	}

	summary, err := h.generator.Summary(r.Context(), req.Text)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SummaryResponse{Summary: summary})
}
