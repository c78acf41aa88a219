package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/fastygo/tasklist/domain"
)

func TestSlotRepository(t *testing.T) {
	t.Parallel()

	repo := NewSlotRepository()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "k"); !errors.Is(err, domain.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}

	value := []byte("first")
	if err := repo.Put(ctx, "k", value); err != nil {
		t.Fatalf("put: %v", err)
	}
	value[0] = 'F'

	got, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "first" {
		t.Errorf("stored value aliased caller memory: %s", got)
	}
	got[0] = 'X'
	if again, _ := repo.Get(ctx, "k"); string(again) != "first" {
		t.Errorf("returned value aliased stored memory: %s", again)
	}
}
