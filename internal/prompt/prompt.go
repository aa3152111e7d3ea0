// Package prompt builds the system/user prompt pairs sent to the
// completion service. Building is pure: no I/O, no state.
package prompt

import (
	"fmt"
	"strings"
)

type Mode string

const (
	ModeSummary   Mode = "summary"
	ModeNoteQuiz  Mode = "note-quiz"
	ModeTopicQuiz Mode = "topic-quiz"
)

const (
	DefaultQuestionCount = 5
	MinQuestionCount     = 1
	MaxQuestionCount     = 20
)

const systemPrompt = "You are a helpful study assistant."

type Request struct {
	Mode          Mode
	SourceText    string
	Topic         string
	QuestionCount int
}

type Prompt struct {
	System string
	User   string
}

type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid prompt mode %q", e.Mode)
}

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("prompt mode requires %s", e.Field)
}

func Build(req Request) (Prompt, error) {
	switch req.Mode {
	case ModeSummary:
		if strings.TrimSpace(req.SourceText) == "" {
			return Prompt{}, &MissingFieldError{Field: "sourceText"}
		}
		return Prompt{System: systemPrompt, User: buildSummaryPrompt(req.SourceText)}, nil

	case ModeNoteQuiz:
		if strings.TrimSpace(req.SourceText) == "" {
			return Prompt{}, &MissingFieldError{Field: "sourceText"}
		}
		return Prompt{System: systemPrompt, User: buildNoteQuizPrompt(req.SourceText, clampCount(req.QuestionCount))}, nil

	case ModeTopicQuiz:
		if strings.TrimSpace(req.Topic) == "" {
			return Prompt{}, &MissingFieldError{Field: "topic"}
		}
		return Prompt{System: systemPrompt, User: buildTopicQuizPrompt(req.Topic, clampCount(req.QuestionCount))}, nil

	default:
		return Prompt{}, &InvalidModeError{Mode: string(req.Mode)}
	}
}

// clampCount bounds the question count to keep request cost and the
// parsing surface sane. Zero or negative means "not given".
func clampCount(n int) int {
	if n <= 0 {
		return DefaultQuestionCount
	}
	if n < MinQuestionCount {
		return MinQuestionCount
	}
	if n > MaxQuestionCount {
		return MaxQuestionCount
	}
	return n
}

func buildSummaryPrompt(sourceText string) string {
	var b strings.Builder
	b.WriteString("Summarize the following student's study note into 4-6 concise bullet points. ")
	b.WriteString("Focus on key concepts, definitions, and any important relationships. ")
	b.WriteString("Use clear, simple language.\n\n")
	b.WriteString("NOTE:\n")
	b.WriteString(sourceText)
	return b.String()
}

func buildNoteQuizPrompt(sourceText string, count int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Based ONLY on the student's note below, create exactly %d short multiple-choice questions.\n\n", count))
	writeQuizFormat(&b)
	b.WriteString("\nNOTE:\n")
	b.WriteString(sourceText)
	return b.String()
}

func buildTopicQuizPrompt(topic string, count int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Create exactly %d multiple-choice questions to test a student on the topic: %q.\n", count, topic))
	b.WriteString("Each question should be medium difficulty and concept-focused.\n\n")
	writeQuizFormat(&b)
	return b.String()
}

func writeQuizFormat(b *strings.Builder) {
	b.WriteString("CRITICAL: Return ONLY a valid JSON array. No preamble, no markdown, no backticks.\n\n")
	b.WriteString("JSON schema per question:\n")
	b.WriteString(`{"question": "string", "options": ["string", "string", "string", "string"], "correctAnswer": 0-3, "explanation": "one sentence"}` + "\n\n")
	b.WriteString("Each question must have exactly 4 options, and correctAnswer is the zero-based index of the right option.\n")
}
