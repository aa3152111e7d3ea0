// Package stats derives progress numbers and badges from journal
// entries and quiz history. Everything here is a pure computation over
// the current records; nothing is persisted.
package stats

import (
	"math"
	"time"

	"studyjournal-backend/internal/models"
)

func TotalMinutes(entries []models.JournalEntry) int {
	total := 0
	for _, e := range entries {
		total += e.DurationMinutes
	}
	return total
}

// StreakDays counts consecutive calendar days ending today that have at
// least one journal entry. Timestamps normalize to local midnight; the
// walk stops at the first day without an entry.
func StreakDays(entries []models.JournalEntry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	days := make(map[time.Time]bool, len(entries))
	for _, e := range entries {
		days[truncateToDay(e.CreatedAt.In(now.Location()))] = true
	}

	streak := 0
	for day := truncateToDay(now); days[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// AveragePercentage is the round-half-up mean of per-attempt
// percentages; zero attempts means zero.
func AveragePercentage(history []models.QuizAttemptRecord) int {
	if len(history) == 0 {
		return 0
	}

	sum := 0
	for _, rec := range history {
		sum += rec.Percentage
	}
	return int(math.Floor(float64(sum)/float64(len(history)) + 0.5))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
