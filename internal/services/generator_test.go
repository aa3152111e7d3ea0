package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/prompt"
)

type fakeCompleter struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	return f.reply, f.err
}

func TestGenerator_Summary(t *testing.T) {
	fake := &fakeCompleter{reply: "```\n- point one\n- point two\n```"}
	g := NewGenerator(fake)

	summary, err := g.Summary(context.Background(), "long study note")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary != "- point one\n- point two" {
		t.Errorf("Expected sanitized summary, got %q", summary)
	}
	if !strings.Contains(fake.lastUser, "long study note") {
		t.Error("Expected source text in user prompt")
	}
}

func TestGenerator_Summary_EmptyText(t *testing.T) {
	g := NewGenerator(&fakeCompleter{})

	_, err := g.Summary(context.Background(), "  ")
	var missing *prompt.MissingFieldError
	if !errors.As(err, &missing) {
		t.Errorf("Expected MissingFieldError, got %v", err)
	}
}

func TestGenerator_Quiz_FencedReply(t *testing.T) {
	fake := &fakeCompleter{reply: "```json\n" + validQuizJSON + "\n```"}
	g := NewGenerator(fake)

	questions, err := g.Quiz(context.Background(), models.GenerateQuizRequest{
		Mode: "note-quiz",
		Text: "mitochondria notes",
	})
	if err != nil {
		t.Fatalf("Quiz failed: %v", err)
	}

	if len(questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(questions))
	}
	if questions[0].CorrectIndex != 1 {
		t.Errorf("Expected correctIndex 1, got %d", questions[0].CorrectIndex)
	}
}

func TestGenerator_Quiz_ProseReply(t *testing.T) {
	fake := &fakeCompleter{reply: "Sure! Here are some questions for you."}
	g := NewGenerator(fake)

	_, err := g.Quiz(context.Background(), models.GenerateQuizRequest{
		Mode:  "topic-quiz",
		Topic: "Biology",
	})

	var parseErr *QuizParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected QuizParseError, got %v", err)
	}
	if parseErr.RawText != "Sure! Here are some questions for you." {
		t.Errorf("Expected raw reply in error, got %q", parseErr.RawText)
	}
}

func TestGenerator_Quiz_CompleterError(t *testing.T) {
	wantErr := &UpstreamError{StatusCode: 429, Body: "rate limited"}
	g := NewGenerator(&fakeCompleter{err: wantErr})

	_, err := g.Quiz(context.Background(), models.GenerateQuizRequest{
		Mode:  "topic-quiz",
		Topic: "Chemistry",
	})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != 429 {
		t.Errorf("Expected status 429, got %d", upstream.StatusCode)
	}
}
