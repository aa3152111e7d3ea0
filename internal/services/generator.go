package services

import (
	"context"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/prompt"
)

const defaultTemperature = 0.7

// Completer is the slice of ChatGateway the pipeline needs; tests swap
// in a fake.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error)
}

// Generator runs the build-prompt, complete, sanitize, parse pipeline.
type Generator struct {
	completer Completer
}

func NewGenerator(c Completer) *Generator {
	return &Generator{completer: c}
}

// Summary condenses source text into bullet points.
func (g *Generator) Summary(ctx context.Context, sourceText string) (string, error) {
	p, err := prompt.Build(prompt.Request{Mode: prompt.ModeSummary, SourceText: sourceText})
	if err != nil {
		return "", err
	}

	raw, err := g.completer.Complete(ctx, p.System, p.User, defaultTemperature)
	if err != nil {
		return "", err
	}

	return Sanitize(raw), nil
}

// Quiz generates and parses a multiple-choice quiz. Either a fully
// valid question list comes back or a typed error; never a partial
// quiz.
func (g *Generator) Quiz(ctx context.Context, req models.GenerateQuizRequest) ([]models.QuizQuestion, error) {
	p, err := prompt.Build(prompt.Request{
		Mode:          prompt.Mode(req.Mode),
		SourceText:    req.Text,
		Topic:         req.Topic,
		QuestionCount: req.NumQuestions,
	})
	if err != nil {
		return nil, err
	}

	raw, err := g.completer.Complete(ctx, p.System, p.User, defaultTemperature)
	if err != nil {
		return nil, err
	}

	return ParseQuiz(Sanitize(raw))
}
