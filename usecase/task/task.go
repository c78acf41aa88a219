package task

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/usecase"
)

// UseCase owns the application state. It is the only component that
// mutates it: every command changes the in-memory state first and then
// hands the full snapshot to the persister.
type UseCase struct {
	mu     sync.Mutex
	state  *domain.AppState
	store  usecase.StatePersister
	logger *zap.Logger

	now   func() time.Time
	newID func() string
	loc   *time.Location
}

type Option func(*UseCase)

func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(uc *UseCase) {
		if gen != nil {
			uc.newID = gen
		}
	}
}

// WithLocation sets the calendar that decides what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

func New(state *domain.AppState, store usecase.StatePersister, logger *zap.Logger, opts ...Option) *UseCase {
	if state == nil {
		state = domain.NewAppState()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		state:  state,
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// AddTask prepends a new task. Text is trimmed; blank text is ignored.
func (uc *UseCase) AddTask(ctx context.Context, text string, important bool, due *domain.Date) (domain.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Task{}, false
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	t := domain.Task{
		ID:        uc.newID(),
		Text:      text,
		Important: important,
		CreatedAt: uc.now(),
	}
	if due != nil {
		d := *due
		t.DueDate = &d
	}
	uc.state.Tasks = append([]domain.Task{t}, uc.state.Tasks...)
	uc.persist(ctx, "add", zap.String("task_id", t.ID))
	return t.Clone(), true
}

// ToggleTask flips the completion flag of an active task.
func (uc *UseCase) ToggleTask(ctx context.Context, id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := indexOf(uc.state.Tasks, id)
	if i < 0 {
		return false
	}
	uc.state.Tasks[i].Completed = !uc.state.Tasks[i].Completed
	uc.persist(ctx, "toggle", zap.String("task_id", id))
	return true
}

// DeleteTask moves an active task to the front of the trash.
func (uc *UseCase) DeleteTask(ctx context.Context, id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := indexOf(uc.state.Tasks, id)
	if i < 0 {
		return false
	}
	t := uc.state.Tasks[i]
	uc.state.Tasks = removeAt(uc.state.Tasks, i)

	deletedAt := uc.now()
	t.DeletedAt = &deletedAt
	uc.state.DeletedTasks = append([]domain.Task{t}, uc.state.DeletedTasks...)
	uc.persist(ctx, "delete", zap.String("task_id", id))
	return true
}

// RestoreTask moves a trashed task back to the front of the active set.
func (uc *UseCase) RestoreTask(ctx context.Context, id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := indexOf(uc.state.DeletedTasks, id)
	if i < 0 {
		return false
	}
	t := uc.state.DeletedTasks[i]
	uc.state.DeletedTasks = removeAt(uc.state.DeletedTasks, i)

	t.DeletedAt = nil
	uc.state.Tasks = append([]domain.Task{t}, uc.state.Tasks...)
	uc.persist(ctx, "restore", zap.String("task_id", id))
	return true
}

// PurgeTask removes a trashed task for good.
func (uc *UseCase) PurgeTask(ctx context.Context, id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := indexOf(uc.state.DeletedTasks, id)
	if i < 0 {
		return false
	}
	uc.state.DeletedTasks = removeAt(uc.state.DeletedTasks, i)
	uc.persist(ctx, "purge", zap.String("task_id", id))
	return true
}

// EmptyTrash purges every trashed task and returns how many were removed.
func (uc *UseCase) EmptyTrash(ctx context.Context) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	n := len(uc.state.DeletedTasks)
	uc.state.DeletedTasks = []domain.Task{}
	uc.persist(ctx, "empty_trash", zap.Int("purged", n))
	return n
}

// PurgeExpired purges trashed tasks deleted before cutoff. Tasks without a
// deletion stamp are kept.
func (uc *UseCase) PurgeExpired(ctx context.Context, cutoff time.Time) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	kept := make([]domain.Task, 0, len(uc.state.DeletedTasks))
	for _, t := range uc.state.DeletedTasks {
		if t.DeletedAt != nil && t.DeletedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, t)
	}
	n := len(uc.state.DeletedTasks) - len(kept)
	if n == 0 {
		return 0
	}
	uc.state.DeletedTasks = kept
	uc.persist(ctx, "purge_expired", zap.Int("purged", n), zap.Time("cutoff", cutoff))
	return n
}

func (uc *UseCase) SetStatusFilter(ctx context.Context, f domain.StatusFilter) bool {
	if !f.Valid() {
		return false
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.state.StatusFilter = f
	uc.persist(ctx, "set_status_filter", zap.String("status_filter", string(f)))
	return true
}

// ToggleTag selects the tag if it is not selected and deselects it otherwise.
func (uc *UseCase) ToggleTag(ctx context.Context, tag domain.Tag) bool {
	if !tag.Valid() {
		return false
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	tags := make([]domain.Tag, 0, len(uc.state.Tags)+1)
	found := false
	for _, selected := range uc.state.Tags {
		if selected == tag {
			found = true
			continue
		}
		tags = append(tags, selected)
	}
	if !found {
		tags = append(tags, tag)
	}
	uc.state.Tags = tags
	uc.persist(ctx, "toggle_tag", zap.String("tag", string(tag)), zap.Bool("selected", !found))
	return true
}

func (uc *UseCase) persist(ctx context.Context, command string, fields ...zap.Field) {
	uc.logger.Debug("task command applied", append(fields, zap.String("command", command))...)
	if uc.store == nil {
		return
	}
	uc.store.Save(ctx, uc.state)
}

func indexOf(tasks []domain.Task, id string) int {
	if id == "" {
		return -1
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func removeAt(tasks []domain.Task, i int) []domain.Task {
	out := make([]domain.Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...)
}
