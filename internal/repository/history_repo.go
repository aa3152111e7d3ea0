package repository

import (
	"sync"
	"time"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/store"
)

const historyKey = "quizHistory"

// HistoryRepo is the append-only record of completed quiz attempts.
type HistoryRepo struct {
	mu    sync.Mutex
	store *store.Store
}

func NewHistoryRepo(st *store.Store) *HistoryRepo {
	return &HistoryRepo{store: st}
}

// List returns attempts most-recent-first.
func (r *HistoryRepo) List() ([]models.QuizAttemptRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Append adds the record to the front of the list and persists it
// immediately. Records are never mutated afterwards.
func (r *HistoryRepo) Append(record *models.QuizAttemptRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	if record.ID == 0 {
		id := time.Now().UnixMilli()
		for containsRecordID(records, id) {
			id++
		}
		record.ID = id
	}

	records = append([]models.QuizAttemptRecord{*record}, records...)
	return r.store.Set(historyKey, records)
}

func (r *HistoryRepo) load() ([]models.QuizAttemptRecord, error) {
	records := []models.QuizAttemptRecord{}
	if err := r.store.Get(historyKey, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func containsRecordID(records []models.QuizAttemptRecord, id int64) bool {
	for _, rec := range records {
		if rec.ID == id {
			return true
		}
	}
	return false
}
