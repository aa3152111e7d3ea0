package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"studyjournal-backend/internal/services"
	"studyjournal-backend/internal/store"
)

const clearTokenTTL = 2 * time.Minute

// DataRepo implements the two-step clear-all command: the first call
// hands out a confirm token, the second call must present it before
// anything is deleted. Tokens are single-use and expire.
type DataRepo struct {
	mu     sync.Mutex
	store  *store.Store
	tokens map[string]time.Time
}

func NewDataRepo(st *store.Store) *DataRepo {
	return &DataRepo{
		store:  st,
		tokens: make(map[string]time.Time),
	}
}

// RequestClear issues a confirm token for a pending clear-all.
func (r *DataRepo) RequestClear() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	token := uuid.NewString()
	r.tokens[token] = time.Now().Add(clearTokenTTL)
	return token
}

// ConfirmClear wipes both persisted records if token is valid.
func (r *DataRepo) ConfirmClear(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiry, ok := r.tokens[token]
	if !ok || time.Now().After(expiry) {
		delete(r.tokens, token)
		return &services.ValidationError{Fields: map[string]string{
			"token": "unknown or expired confirm token",
		}}
	}
	delete(r.tokens, token)

	return r.store.Delete(journalKey, historyKey)
}
