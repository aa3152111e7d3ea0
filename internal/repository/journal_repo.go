package repository

import (
	"sync"
	"time"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/services"
	"studyjournal-backend/internal/store"
)

// Storage key kept identical to the web client's localStorage key so a
// data directory can be inspected against the old format.
const journalKey = "journalEntries"

type JournalRepo struct {
	mu    sync.Mutex
	store *store.Store
}

func NewJournalRepo(st *store.Store) *JournalRepo {
	return &JournalRepo{store: st}
}

// List returns entries most-recent-first.
func (r *JournalRepo) List() ([]models.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Create inserts a new entry at the front of the list. IDs are
// millisecond creation timestamps, bumped on collision so they stay
// unique within one store.
func (r *JournalRepo) Create(req models.CreateEntryRequest) (*models.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	id := now.UnixMilli()
	for containsEntryID(entries, id) {
		id++
	}

	entry := models.JournalEntry{
		ID:              id,
		Subject:         req.Subject,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		CreatedAt:       now,
	}

	entries = append([]models.JournalEntry{entry}, entries...)
	if err := r.store.Set(journalKey, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *JournalRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return err
	}

	for i, e := range entries {
		if e.ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return r.store.Set(journalKey, entries)
		}
	}
	return &services.NotFoundError{Message: "Journal entry not found"}
}

func (r *JournalRepo) load() ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	if err := r.store.Get(journalKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func containsEntryID(entries []models.JournalEntry, id int64) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}
