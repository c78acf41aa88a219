package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
	"github.com/fastygo/tasklist/usecase"
)

// DefaultKey names the slot holding the application state.
const DefaultKey = "tasklist.state"

// Store persists the whole AppState under a single slot key and upgrades
// older snapshots on load. Neither Load nor Save report errors: failures
// are logged and the in-memory state stays authoritative.
type Store struct {
	slot       repository.SlotRepository
	key        string
	loc        *time.Location
	migrations []Migration
	logger     *zap.Logger
}

type Option func(*Store)

// WithLocation sets the calendar used by date-based migrations.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithMigrations replaces the migration chain.
func WithMigrations(chain []Migration) Option {
	return func(s *Store) {
		s.migrations = chain
	}
}

func New(slot repository.SlotRepository, key string, logger *zap.Logger, opts ...Option) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		slot:   slot,
		key:    key,
		loc:    time.Local,
		logger: logger.With(zap.String("slot", key)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.migrations == nil {
		s.migrations = Migrations(s.loc)
	}
	return s
}

// Load reads the slot and returns the upgraded state, or a default state
// when the slot is empty, unreadable or malformed.
func (s *Store) Load(ctx context.Context) *domain.AppState {
	if s.slot == nil {
		s.logger.Warn("no state slot configured, starting empty")
		return s.defaultState()
	}

	raw, err := s.slot.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			s.logger.Info("no saved state, starting empty")
		} else {
			s.logger.Error("failed to read state", zap.Error(err))
		}
		return s.defaultState()
	}

	var rec stateRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.logger.Warn("saved state is malformed, starting empty", zap.Error(err))
		return s.defaultState()
	}

	state, version := decodeState(rec, s.loc)
	switch {
	case version > CurrentVersion:
		// left untouched on disk until the next command saves
		s.logger.Warn("saved state is newer than supported",
			zap.Int("version", version),
			zap.Int("supported", CurrentVersion))
		return state
	case version < CurrentVersion:
		migrated, reached := Migrate(*state, version, s.migrations)
		if reached < CurrentVersion {
			// stamping a version that was never reached would skip the
			// missing steps for good
			s.logger.Warn("migration chain incomplete, state not re-saved",
				zap.Int("from", version), zap.Int("reached", reached))
			return &migrated
		}
		s.logger.Info("state migrated", zap.Int("from", version), zap.Int("to", reached))
		state = &migrated
	}
	state.SchemaVersion = CurrentVersion

	s.Save(ctx, state)
	return state
}

// Save writes the full state stamped with CurrentVersion.
func (s *Store) Save(ctx context.Context, state *domain.AppState) {
	if state == nil {
		return
	}
	if s.slot == nil {
		s.logger.Warn("no state slot configured, state not saved")
		return
	}

	payload, err := json.Marshal(encodeState(state, CurrentVersion))
	if err != nil {
		s.logger.Error("failed to encode state", zap.Error(err))
		return
	}
	if err := s.slot.Put(ctx, s.key, payload); err != nil {
		s.logger.Error("failed to save state",
			zap.Int("tasks", len(state.Tasks)),
			zap.Int("deleted_tasks", len(state.DeletedTasks)),
			zap.Error(err))
		return
	}
	s.logger.Debug("state saved", zap.Int("bytes", len(payload)))
}

// Location is the calendar the store migrates against.
func (s *Store) Location() *time.Location {
	return s.loc
}

func (s *Store) defaultState() *domain.AppState {
	state := domain.NewAppState()
	state.SchemaVersion = CurrentVersion
	return state
}

var _ usecase.StatePersister = (*Store)(nil)
