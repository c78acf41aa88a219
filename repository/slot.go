package repository

import "context"

// SlotRepository is a key-value medium holding serialized application state.
// Get returns domain.ErrSlotNotFound when nothing has been written under key.
type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}
