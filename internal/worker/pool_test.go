package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/quiz"
	"studyjournal-backend/internal/services"
)

type fakeGenerator struct {
	questions []models.QuizQuestion
	err       error
}

func (f *fakeGenerator) Quiz(ctx context.Context, req models.GenerateQuizRequest) ([]models.QuizQuestion, error) {
	return f.questions, f.err
}

type capturingPublisher struct {
	mu       sync.Mutex
	messages []models.WSMessage
}

func (p *capturingPublisher) Publish(msg models.WSMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
}

func (p *capturingPublisher) snapshot() []models.WSMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.WSMessage(nil), p.messages...)
}

func sampleQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
	}
}

func startPool(t *testing.T, gen QuizGenerator, pub Publisher) (*Pool, *quiz.Registry) {
	t.Helper()
	registry := quiz.NewRegistry()
	pool := NewPool(gen, registry, pub, 1)
	pool.Start()
	t.Cleanup(pool.Stop)
	return pool, registry
}

func waitForJob(t *testing.T, pool *Pool, id uuid.UUID, status string) *models.Job {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := pool.GetJob(id)
		if err != nil {
			t.Fatalf("GetJob failed: %v", err)
		}
		if job.Status == status {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Job %s never reached status %q", id, status)
	return nil
}

func TestPool_SuccessfulJob(t *testing.T) {
	pub := &capturingPublisher{}
	pool, registry := startPool(t, &fakeGenerator{questions: sampleQuestions()}, pub)

	job, err := pool.Enqueue(models.GenerateQuizRequest{Mode: "topic-quiz", Topic: "Biology"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if job.Status != "pending" && job.Status != "processing" && job.Status != "completed" {
		t.Errorf("Unexpected initial status %q", job.Status)
	}

	done := waitForJob(t, pool, job.ID, "completed")
	if done.SessionID == nil {
		t.Fatal("Expected a session ID on the completed job")
	}
	if done.CompletedAt == nil {
		t.Error("Expected a completion timestamp")
	}

	session, err := registry.Get(*done.SessionID)
	if err != nil {
		t.Fatalf("Session not registered: %v", err)
	}
	if session.Topic != "Biology" {
		t.Errorf("Expected topic 'Biology', got %q", session.Topic)
	}

	var sawStatus, sawCompleted bool
	for _, msg := range pub.snapshot() {
		switch msg.Type {
		case "status_update":
			sawStatus = true
		case "completed":
			sawCompleted = true
			event := msg.Payload.(models.CompletedEvent)
			if event.SessionID != *done.SessionID {
				t.Error("Completed event carries wrong session ID")
			}
		}
	}
	if !sawStatus || !sawCompleted {
		t.Errorf("Expected status_update and completed events, got status=%v completed=%v", sawStatus, sawCompleted)
	}
}

func TestPool_DefaultTopicForNoteQuiz(t *testing.T) {
	pool, registry := startPool(t, &fakeGenerator{questions: sampleQuestions()}, &capturingPublisher{})

	job, err := pool.Enqueue(models.GenerateQuizRequest{Mode: "note-quiz", Text: "notes"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	done := waitForJob(t, pool, job.ID, "completed")
	session, err := registry.Get(*done.SessionID)
	if err != nil {
		t.Fatalf("Session not registered: %v", err)
	}
	if session.Topic != "My Notes" {
		t.Errorf("Expected fallback topic 'My Notes', got %q", session.Topic)
	}
}

func TestPool_ParseFailurePublishesRawText(t *testing.T) {
	pub := &capturingPublisher{}
	genErr := &services.QuizParseError{Reason: "reply is not a JSON question array", RawText: "Sure! Here is your quiz."}
	pool, _ := startPool(t, &fakeGenerator{err: genErr}, pub)

	job, err := pool.Enqueue(models.GenerateQuizRequest{Mode: "topic-quiz", Topic: "Biology"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	failed := waitForJob(t, pool, job.ID, "failed")
	if failed.ErrorCode == nil || *failed.ErrorCode != "QUIZ_PARSE_ERROR" {
		t.Errorf("Expected QUIZ_PARSE_ERROR, got %v", failed.ErrorCode)
	}
	if failed.SessionID != nil {
		t.Error("Failed job must not carry a session")
	}

	var sawError bool
	for _, msg := range pub.snapshot() {
		if msg.Type != "error" {
			continue
		}
		sawError = true
		event := msg.Payload.(models.ErrorEvent)
		if event.RawText != "Sure! Here is your quiz." {
			t.Errorf("Expected raw reply in error event, got %q", event.RawText)
		}
	}
	if !sawError {
		t.Error("Expected an error event")
	}
}

func TestPool_GetJobUnknown(t *testing.T) {
	pool, _ := startPool(t, &fakeGenerator{}, &capturingPublisher{})

	_, err := pool.GetJob(uuid.New())
	var notFound *services.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"configuration", &services.ConfigurationError{}, "CONFIG_ERROR"},
		{"upstream", &services.UpstreamError{StatusCode: 500}, "UPSTREAM_ERROR"},
		{"timeout", &services.TimeoutError{}, "TIMEOUT"},
		{"transport", &services.TransportError{}, "TRANSPORT_ERROR"},
		{"parse", &services.QuizParseError{}, "QUIZ_PARSE_ERROR"},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := errorCode(tc.err); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
