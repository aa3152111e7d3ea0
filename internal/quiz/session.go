// Package quiz holds active quiz sessions and their grading rules.
package quiz

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/services"
)

type State string

const (
	StateActive    State = "active"
	StateSubmitted State = "submitted"
)

// Unanswered marks a question slot with no selection yet.
const Unanswered = -1

// Session is one generated quiz being taken. It exists only after the
// generation pipeline fully succeeded, collects answers while active,
// and becomes terminal on submit; retaking means generating a new one.
type Session struct {
	ID        uuid.UUID
	Topic     string
	Questions []models.QuizQuestion
	StartedAt time.Time

	mu      sync.Mutex
	answers []int
	state   State
}

func NewSession(topic string, questions []models.QuizQuestion) *Session {
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = Unanswered
	}
	return &Session{
		ID:        uuid.New(),
		Topic:     topic,
		Questions: questions,
		StartedAt: time.Now(),
		answers:   answers,
		state:     StateActive,
	}
}

// SelectOption records an answer. Reselecting a question overwrites the
// prior choice; nothing checks completeness until submit.
func (s *Session) SelectOption(questionIndex, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitted {
		return &services.ConflictError{Message: "Quiz has already been submitted"}
	}
	if questionIndex < 0 || questionIndex >= len(s.Questions) {
		return &services.ValidationError{Fields: map[string]string{
			"question_index": "out of range",
		}}
	}
	if optionIndex < 0 || optionIndex >= len(s.Questions[questionIndex].Options) {
		return &services.ValidationError{Fields: map[string]string{
			"option_index": "out of range",
		}}
	}

	s.answers[questionIndex] = optionIndex
	return nil
}

// Submit grades the session and makes it terminal. Every question must
// have a selection; otherwise the session stays active and no record is
// produced.
func (s *Session) Submit() (*models.QuizAttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitted {
		return nil, &services.ConflictError{Message: "Quiz has already been submitted"}
	}

	unanswered := 0
	for _, a := range s.answers {
		if a == Unanswered {
			unanswered++
		}
	}
	if unanswered > 0 {
		return nil, &services.IncompleteAnswersError{Unanswered: unanswered}
	}

	correct := 0
	for i, q := range s.Questions {
		if s.answers[i] == q.CorrectIndex {
			correct++
		}
	}

	total := len(s.Questions)
	percentage := int(math.Floor(float64(correct)/float64(total)*100 + 0.5))

	s.state = StateSubmitted

	return &models.QuizAttemptRecord{
		Topic:        s.Topic,
		CorrectCount: correct,
		TotalCount:   total,
		Percentage:   percentage,
		CompletedAt:  time.Now(),
	}, nil
}

// SessionView is the wire form of a session. Unanswered slots are -1.
type SessionView struct {
	ID              uuid.UUID             `json:"id"`
	Topic           string                `json:"topic"`
	State           State                 `json:"state"`
	Questions       []models.QuizQuestion `json:"questions"`
	SelectedAnswers []int                 `json:"selectedAnswers"`
	StartedAt       time.Time             `json:"startedAt"`
}

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make([]int, len(s.answers))
	copy(answers, s.answers)

	return SessionView{
		ID:              s.ID,
		Topic:           s.Topic,
		State:           s.state,
		Questions:       s.Questions,
		SelectedAnswers: answers,
		StartedAt:       s.StartedAt,
	}
}
