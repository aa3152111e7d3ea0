package services

import "fmt"

// Service error types. Handlers map these to HTTP responses in one
// place; nothing below this layer writes to the response writer.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ConfigurationError means the server is missing required configuration
// (the upstream credential). Fatal to the request, not to the process.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// UpstreamError is a non-success status from the completion service.
// The status and body are surfaced verbatim; nothing retries it.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion service returned %d: %s", e.StatusCode, e.Body)
}

type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to reach completion service: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("completion request timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// QuizParseError means the model reply did not match the expected quiz
// shape. RawText carries the sanitized reply so callers can offer a
// fallback display instead of a silently wrong quiz.
type QuizParseError struct {
	Reason  string
	RawText string
}

func (e *QuizParseError) Error() string {
	return "failed to parse quiz: " + e.Reason
}

type IncompleteAnswersError struct {
	Unanswered int
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("%d questions are still unanswered", e.Unanswered)
}
