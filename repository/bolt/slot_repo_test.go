package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/infrastructure/boltdb"
)

func newTestRepo(t *testing.T) *slotRepository {
	t.Helper()
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "state.db"), boltdb.DefaultBucket, nil)
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	t.Cleanup(func() { _ = boltdb.Close(db, nil) })
	return NewSlotRepository(db, boltdb.DefaultBucket).(*slotRepository)
}

func TestSlotRepository_GetMissing(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	if _, err := repo.Get(context.Background(), "nothing"); !errors.Is(err, domain.ErrSlotNotFound) {
		t.Errorf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestSlotRepository_PutGet(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Put(ctx, "k", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "k", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("expected last write to win, got %s", got)
	}
	if err := repo.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestSlotRepository_CanceledContext(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Put(ctx, "k", []byte("v")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSlotRepository_Reopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "state.db")
	db, err := boltdb.Open(path, "", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := NewSlotRepository(db, boltdb.DefaultBucket).Put(context.Background(), "k", []byte("persisted")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := boltdb.Close(db, nil); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err = boltdb.Open(path, "", nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer boltdb.Close(db, nil)

	got, err := NewSlotRepository(db, boltdb.DefaultBucket).Get(context.Background(), "k")
	if err != nil || string(got) != "persisted" {
		t.Errorf("expected persisted value, got %q (%v)", got, err)
	}
}
