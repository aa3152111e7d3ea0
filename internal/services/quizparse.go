package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"studyjournal-backend/internal/models"
)

const optionsPerQuestion = 4

// rawQuestion tolerates the answer-field variants seen in model
// replies: the canonical correctAnswer index, the correct_index and
// correctOptionIndex spellings, and a letter-form answer ("A"-"D").
type rawQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswer      *int     `json:"correctAnswer"`
	CorrectIndex       *int     `json:"correct_index"`
	CorrectOptionIndex *int     `json:"correctOptionIndex"`
	Answer             string   `json:"answer"`
	Explanation        string   `json:"explanation"`
}

// ParseQuiz parses sanitized model output into quiz questions. The text
// must be a JSON array of question objects, or an object wrapping that
// array in a "questions" field. Parsing is all-or-nothing: a single
// malformed question fails the whole quiz so grading never runs over a
// partial question list.
func ParseQuiz(text string) ([]models.QuizQuestion, error) {
	var raw []rawQuestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		var wrapped struct {
			Questions []rawQuestion `json:"questions"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil || wrapped.Questions == nil {
			return nil, &QuizParseError{Reason: "reply is not a JSON question array", RawText: text}
		}
		raw = wrapped.Questions
	}

	if len(raw) == 0 {
		return nil, &QuizParseError{Reason: "reply contained no questions", RawText: text}
	}

	questions := make([]models.QuizQuestion, len(raw))
	for i, q := range raw {
		if strings.TrimSpace(q.Question) == "" {
			return nil, &QuizParseError{
				Reason:  fmt.Sprintf("question %d has no text", i+1),
				RawText: text,
			}
		}
		if len(q.Options) != optionsPerQuestion {
			return nil, &QuizParseError{
				Reason:  fmt.Sprintf("question %d has %d options, want %d", i+1, len(q.Options), optionsPerQuestion),
				RawText: text,
			}
		}

		idx, err := resolveCorrectIndex(q)
		if err != nil {
			return nil, &QuizParseError{
				Reason:  fmt.Sprintf("question %d: %v", i+1, err),
				RawText: text,
			}
		}

		questions[i] = models.QuizQuestion{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: idx,
			Explanation:  q.Explanation,
		}
	}

	return questions, nil
}

func resolveCorrectIndex(q rawQuestion) (int, error) {
	var idx int
	switch {
	case q.CorrectAnswer != nil:
		idx = *q.CorrectAnswer
	case q.CorrectIndex != nil:
		idx = *q.CorrectIndex
	case q.CorrectOptionIndex != nil:
		idx = *q.CorrectOptionIndex
	case q.Answer != "":
		return letterToIndex(q.Answer)
	default:
		return 0, fmt.Errorf("no correct answer field")
	}

	if idx < 0 || idx >= optionsPerQuestion {
		return 0, fmt.Errorf("correct answer index %d out of range", idx)
	}
	return idx, nil
}

// letterToIndex converts a letter answer like "A" or "c." to an option
// index. Only the first character counts; anything past it is label
// noise the model sometimes appends.
func letterToIndex(answer string) (int, error) {
	s := strings.TrimSpace(answer)
	if s == "" {
		return 0, fmt.Errorf("empty answer letter")
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'D' {
		return 0, fmt.Errorf("answer letter %q out of range", answer)
	}
	return int(c - 'A'), nil
}
