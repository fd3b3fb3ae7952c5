package session

import (
	"context"
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/helper"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type MemoryRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryRepo(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (r *MemoryRepository) Load(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if ok && !r.now().Before(entry.expiresAt) {
		delete(r.entries, id)
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return models.NewSession(id), nil
	}

	session, err := helper.JSONToStruct[models.Session](json.RawMessage(entry.data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return session, nil
}

func (r *MemoryRepository) Save(_ context.Context, session *models.Session) error {
	session.UpdatedAt = r.now().UTC()
	data, err := helper.JSONToByte(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[session.ID] = memoryEntry{data: data, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (r *MemoryRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, entry := range r.entries {
		if !now.Before(entry.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}
