package handlers

import (
	"encoding/json"
	"net/http"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/prompt"
	"studyjournal-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// handleServiceError is the single place typed service errors become
// HTTP responses.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", e.Fields, r))
	case *prompt.InvalidModeError:
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", e.Error(), r))
	case *prompt.MissingFieldError:
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", e.Error(), r))
	case *services.IncompleteAnswersError:
		writeJSON(w, http.StatusBadRequest, errorResp("INCOMPLETE_ANSWERS", e.Error(), r))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", e.Message, r))
	case *services.ConflictError:
		writeJSON(w, http.StatusConflict, errorResp("CONFLICT", e.Message, r))
	case *services.ConfigurationError:
		writeJSON(w, http.StatusInternalServerError, errorResp("CONFIG_ERROR", "AI features are unavailable: server credential is not configured", r))
	case *services.UpstreamError:
		status := e.StatusCode
		// Pass the upstream status through when it is one
		if status < 400 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorResp("UPSTREAM_ERROR", e.Body, r))
	case *services.TimeoutError:
		writeJSON(w, http.StatusGatewayTimeout, errorResp("TIMEOUT", "The AI service took too long to respond", r))
	case *services.TransportError:
		writeJSON(w, http.StatusBadGateway, errorResp("TRANSPORT_ERROR", "Failed to reach the AI service", r))
	case *services.QuizParseError:
		writeJSON(w, http.StatusBadGateway, errorResp("QUIZ_PARSE_ERROR", e.Reason, r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
