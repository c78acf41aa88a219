package memory

import (
	"context"
	"sync"

	"github.com/fastygo/tasklist/domain"
)

// SlotRepository keeps slots in process memory. State does not survive a restart.
type SlotRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{slots: make(map[string][]byte)}
}

func (r *SlotRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.slots[key]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *SlotRepository) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[key] = append([]byte(nil), value...)
	return nil
}

func (r *SlotRepository) Ping(context.Context) error {
	return nil
}
