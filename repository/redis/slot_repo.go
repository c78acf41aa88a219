package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

type slotRepository struct {
	client *redislib.Client
	prefix string
}

// NewSlotRepository creates a Redis-backed slot repository. Slots never expire.
func NewSlotRepository(client *redislib.Client, prefix string) repository.SlotRepository {
	if prefix == "" {
		prefix = "tasklist:"
	}
	return &slotRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *slotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", r.key(key), err)
	}
	return value, nil
}

func (r *slotRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key(key), err)
	}
	return nil
}

func (r *slotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *slotRepository) key(key string) string {
	return fmt.Sprintf("%s%s", r.prefix, key)
}
