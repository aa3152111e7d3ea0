package stats

import (
	"time"

	"studyjournal-backend/internal/models"
)

type badgeDef struct {
	id        string
	name      string
	icon      string
	condition func(entries []models.JournalEntry, history []models.QuizAttemptRecord, now time.Time) bool
}

var badgeDefs = []badgeDef{
	{"first_entry", "First Step", "🎯", func(e []models.JournalEntry, h []models.QuizAttemptRecord, _ time.Time) bool {
		return len(e) >= 1
	}},
	{"five_entries", "5 Sessions", "📚", func(e []models.JournalEntry, h []models.QuizAttemptRecord, _ time.Time) bool {
		return len(e) >= 5
	}},
	{"ten_entries", "10 Sessions", "🔥", func(e []models.JournalEntry, h []models.QuizAttemptRecord, _ time.Time) bool {
		return len(e) >= 10
	}},
	{"first_quiz", "Quiz Taker", "❓", func(e []models.JournalEntry, h []models.QuizAttemptRecord, _ time.Time) bool {
		return len(h) >= 1
	}},
	{"five_quizzes", "5 Quizzes", "🧠", func(e []models.JournalEntry, h []models.QuizAttemptRecord, _ time.Time) bool {
		return len(h) >= 5
	}},
	{"ten_quizzes", "10 Quizzes", "🎓", func(e []models.JournalEntry, h []models.QuizAttemptRecord, _ time.Time) bool {
		return len(h) >= 10
	}},
	{"hundred_minutes", "100 Minutes", "⏱️", func(e []models.JournalEntry, h []models.QuizAttemptRecord, _ time.Time) bool {
		return TotalMinutes(e) >= 100
	}},
	{"thousand_minutes", "1000 Minutes", "⚡", func(e []models.JournalEntry, h []models.QuizAttemptRecord, _ time.Time) bool {
		return TotalMinutes(e) >= 1000
	}},
	{"perfect_score", "Perfect Score", "💯", func(e []models.JournalEntry, h []models.QuizAttemptRecord, _ time.Time) bool {
		for _, rec := range h {
			if rec.Percentage == 100 {
				return true
			}
		}
		return false
	}},
	{"streak_7", "7 Day Streak", "🔥", func(e []models.JournalEntry, h []models.QuizAttemptRecord, now time.Time) bool {
		return StreakDays(e, now) >= 7
	}},
}

// Badges evaluates every badge condition against the current records.
// Badges carry no state of their own, so an unlock can regress if the
// underlying data is cleared.
func Badges(entries []models.JournalEntry, history []models.QuizAttemptRecord, now time.Time) []models.Badge {
	badges := make([]models.Badge, len(badgeDefs))
	for i, def := range badgeDefs {
		badges[i] = models.Badge{
			ID:       def.id,
			Name:     def.name,
			Icon:     def.icon,
			Unlocked: def.condition(entries, history, now),
		}
	}
	return badges
}
