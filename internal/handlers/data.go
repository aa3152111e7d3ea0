package handlers

import (
	"encoding/json"
	"net/http"

	"studyjournal-backend/internal/repository"
)

// DataHandler exposes the two-step clear-all command: request a confirm
// token, then present it to actually wipe the journal and quiz history.
type DataHandler struct {
	repo *repository.DataRepo
}

func NewDataHandler(repo *repository.DataRepo) *DataHandler {
	return &DataHandler{repo: repo}
}

func (h *DataHandler) RequestClear(w http.ResponseWriter, r *http.Request) {
	token := h.repo.RequestClear()
	writeJSON(w, http.StatusOK, map[string]string{"confirm_token": token})
}

func (h *DataHandler) ConfirmClear(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.repo.ConfirmClear(req.Token); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "All data cleared"})
}
