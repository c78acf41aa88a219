package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

type slotRepository struct {
	pool *pgxpool.Pool
}

// NewSlotRepository returns a Postgres-backed implementation of SlotRepository.
// It expects the state_slots table created by the bundled migrations.
func NewSlotRepository(pool *pgxpool.Pool) repository.SlotRepository {
	return &slotRepository{pool: pool}
}

func (r *slotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `
	SELECT value
	FROM state_slots
	WHERE key = $1
	`
	var value string
	if err := r.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("select slot %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *slotRepository) Put(ctx context.Context, key string, value []byte) error {
	const query = `
	INSERT INTO state_slots (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
	    updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}

func (r *slotRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
