package models

import "time"

type JournalEntry struct {
	ID              int64     `json:"id"`
	Subject         string    `json:"subject"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateEntryRequest struct {
	Subject         string `json:"subject"`
	DurationMinutes int    `json:"durationMinutes"`
	Notes           string `json:"notes"`
}
