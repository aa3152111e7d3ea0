package handlers

import (
	"net/http"
	"time"

	"studyjournal-backend/internal/repository"
	"studyjournal-backend/internal/stats"
)

type ProgressHandler struct {
	journal *repository.JournalRepo
	history *repository.HistoryRepo
}

func NewProgressHandler(journal *repository.JournalRepo, history *repository.HistoryRepo) *ProgressHandler {
	return &ProgressHandler{journal: journal, history: history}
}

func (h *ProgressHandler) Stats(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load journal entries", r))
		return
	}
	history, err := h.history.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load quiz history", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_sessions":     len(entries),
		"total_minutes":      stats.TotalMinutes(entries),
		"total_quizzes":      len(history),
		"average_percentage": stats.AveragePercentage(history),
		"streak_days":        stats.StreakDays(entries, time.Now()),
	})
}

func (h *ProgressHandler) Badges(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load journal entries", r))
		return
	}
	history, err := h.history.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load quiz history", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": stats.Badges(entries, history, time.Now()),
	})
}
