package models

import "time"

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// QuizAttemptRecord is one completed, graded quiz. Append-only.
type QuizAttemptRecord struct {
	ID           int64     `json:"id"`
	Topic        string    `json:"topic"`
	CorrectCount int       `json:"correctCount"`
	TotalCount   int       `json:"totalCount"`
	Percentage   int       `json:"percentage"`
	CompletedAt  time.Time `json:"completedAt"`
}

type GenerateQuizRequest struct {
	Mode         string `json:"mode"` // "note-quiz" | "topic-quiz"
	Text         string `json:"text,omitempty"`
	Topic        string `json:"topic,omitempty"`
	NumQuestions int    `json:"num_questions,omitempty"`
}

type GenerateSummaryRequest struct {
	Text string `json:"text"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type SelectAnswerRequest struct {
	QuestionIndex int `json:"question_index"`
	OptionIndex   int `json:"option_index"`
}
