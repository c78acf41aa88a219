package usecase

import (
	"context"

	"github.com/fastygo/tasklist/domain"
)

// StatePersister abstracts the state store so use cases stay storage-agnostic.
// Save never fails from the caller's point of view.
type StatePersister interface {
	Save(ctx context.Context, state *domain.AppState)
}
