package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/repository"
)

type JournalHandler struct {
	repo *repository.JournalRepo
}

func NewJournalHandler(repo *repository.JournalRepo) *JournalHandler {
	return &JournalHandler{repo: repo}
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Subject) == "" {
		fields["subject"] = "subject is required"
	}
	if req.DurationMinutes <= 0 {
		fields["durationMinutes"] = "duration must be a positive number of minutes"
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	entry, err := h.repo.Create(req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save journal entry", r))
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load journal entries", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid entry ID", r))
		return
	}

	if err := h.repo.Delete(id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Journal entry deleted"})
}
