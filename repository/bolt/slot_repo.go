package bolt

import (
	"context"
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

type slotRepository struct {
	db     *bbolt.DB
	bucket []byte
}

// NewSlotRepository returns a BoltDB-backed slot repository. The bucket must already exist.
func NewSlotRepository(db *bbolt.DB, bucket string) repository.SlotRepository {
	return &slotRepository{
		db:     db,
		bucket: []byte(bucket),
	}
}

func (r *slotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if r.db == nil {
		return nil, bbolt.ErrDatabaseNotOpen
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return fmt.Errorf("bucket %q: %w", r.bucket, bbolt.ErrBucketNotFound)
		}
		// bolt memory is only valid inside the transaction
		if v := b.Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, domain.ErrSlotNotFound
	}
	return value, nil
}

func (r *slotRepository) Put(ctx context.Context, key string, value []byte) error {
	if r.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return fmt.Errorf("bucket %q: %w", r.bucket, bbolt.ErrBucketNotFound)
		}
		return b.Put([]byte(key), value)
	})
}

func (r *slotRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return r.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(r.bucket) == nil {
			return bbolt.ErrBucketNotFound
		}
		return nil
	})
}
