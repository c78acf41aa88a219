package task

import (
	"github.com/fastygo/tasklist/domain"
)

// Counts summarizes the tasks selected by the current filters. Under the
// deleted filter only Total is meaningful and Trash is set.
type Counts struct {
	Total     int  `json:"total"`
	Active    int  `json:"active"`
	Completed int  `json:"completed"`
	Trash     bool `json:"trash,omitempty"`
}

// TaskView is a task as shown to the user.
type TaskView struct {
	domain.Task
	Overdue bool `json:"overdue"`
}

// View bundles everything a view layer re-reads after a command.
type View struct {
	Tasks        []TaskView          `json:"tasks"`
	Counts       Counts              `json:"counts"`
	TrashCount   int                 `json:"trashCount"`
	StatusFilter domain.StatusFilter `json:"statusFilter"`
	Tags         []domain.Tag        `json:"tags"`
	Today        domain.Date         `json:"today"`
}

// VisibleTasks returns the tasks selected by both filter axes in display order.
func (uc *UseCase) VisibleTasks() []domain.Task {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.visibleTasks(uc.env())
}

func (uc *UseCase) Counts() Counts {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.counts(uc.env())
}

// TrashCount is the size of the trash regardless of filters.
func (uc *UseCase) TrashCount() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.state.DeletedTasks)
}

// View computes the visible tasks, counts and filters in one consistent read.
func (uc *UseCase) View() View {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	env := uc.env()
	visible := uc.visibleTasks(env)
	tasks := make([]TaskView, 0, len(visible))
	for _, t := range visible {
		tasks = append(tasks, TaskView{Task: t, Overdue: t.IsOverdue(env.Today)})
	}
	return View{
		Tasks:        tasks,
		Counts:       uc.counts(env),
		TrashCount:   len(uc.state.DeletedTasks),
		StatusFilter: uc.state.StatusFilter,
		Tags:         append([]domain.Tag{}, uc.state.Tags...),
		Today:        env.Today,
	}
}

// Snapshot returns a deep copy of the current state.
func (uc *UseCase) Snapshot() *domain.AppState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state.Clone()
}

// Today is the current calendar date in the configured location.
func (uc *UseCase) Today() domain.Date {
	return domain.DateIn(uc.now(), uc.loc)
}

// IsOverdue reports whether t is incomplete and due before today.
func (uc *UseCase) IsOverdue(t domain.Task) bool {
	return t.IsOverdue(uc.Today())
}

func (uc *UseCase) env() Env {
	return Env{Today: uc.Today(), Location: uc.loc}
}

func (uc *UseCase) visibleTasks(env Env) []domain.Task {
	if uc.state.StatusFilter == domain.StatusDeleted {
		trash := filterTasks(uc.state.DeletedTasks, Everything, env)
		sortTrash(trash)
		return trash
	}
	tasks := uc.filtered(env)
	sortForDisplay(tasks)
	return tasks
}

func (uc *UseCase) counts(env Env) Counts {
	if uc.state.StatusFilter == domain.StatusDeleted {
		return Counts{Total: len(uc.state.DeletedTasks), Trash: true}
	}
	var c Counts
	for _, t := range uc.filtered(env) {
		c.Total++
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

// filtered is shared by the list and the counts so both always agree.
func (uc *UseCase) filtered(env Env) []domain.Task {
	match := ViewPredicate(uc.state.StatusFilter, uc.state.Tags)
	return filterTasks(uc.state.Tasks, match, env)
}
