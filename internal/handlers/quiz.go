package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/quiz"
	"studyjournal-backend/internal/repository"
	"studyjournal-backend/internal/worker"
)

type QuizHandler struct {
	pool     *worker.Pool
	registry *quiz.Registry
	history  *repository.HistoryRepo
}

func NewQuizHandler(pool *worker.Pool, registry *quiz.Registry, history *repository.HistoryRepo) *QuizHandler {
	return &QuizHandler{pool: pool, registry: registry, history: history}
}

// Generate validates the request and queues a generation job. The
// session only appears once the worker fully parsed the model reply;
// progress and failures stream over the websocket, and the job is
// pollable as a fallback.
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := map[string]string{}
	switch req.Mode {
	case "note-quiz":
		if strings.TrimSpace(req.Text) == "" {
			fields["text"] = "text is required for a note quiz"
		}
	case "topic-quiz":
		if strings.TrimSpace(req.Topic) == "" {
			fields["topic"] = "topic is required for a topic quiz"
		}
	default:
		fields["mode"] = "mode must be note-quiz or topic-quiz"
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	job, err := h.pool.Enqueue(req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{"job_id": job.ID})
}

func (h *QuizHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid job ID", r))
		return
	}

	job, err := h.pool.GetJob(id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (h *QuizHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

func (h *QuizHandler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	var req models.SelectAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := session.SelectOption(req.QuestionIndex, req.OptionIndex); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Answer recorded"})
}

// Submit grades the session and appends the attempt to history. A
// session with unanswered questions is rejected and stays active.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	record, err := session.Submit()
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.history.Append(record); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save quiz attempt", r))
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *QuizHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.history.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load quiz history", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"history": records})
}

func (h *QuizHandler) sessionFromURL(w http.ResponseWriter, r *http.Request) (*quiz.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return nil, false
	}

	session, err := h.registry.Get(id)
	if err != nil {
		handleServiceError(w, r, err)
		return nil, false
	}
	return session, true
}
