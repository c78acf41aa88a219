package task

import (
	"sort"
	"time"

	"github.com/fastygo/tasklist/domain"
)

// Env carries the calendar facts predicates depend on.
type Env struct {
	Today    domain.Date
	Location *time.Location
}

// Predicate decides whether a task belongs to a view.
type Predicate func(t domain.Task, env Env) bool

func Everything(domain.Task, Env) bool { return true }

func IsActive(t domain.Task, _ Env) bool { return !t.Completed }

func IsCompleted(t domain.Task, _ Env) bool { return t.Completed }

// IsForToday matches tasks due today, and undated tasks created today.
func IsForToday(t domain.Task, env Env) bool {
	if t.DueDate != nil {
		return t.DueDate.Equal(env.Today)
	}
	return domain.DateIn(t.CreatedAt, env.Location).Equal(env.Today)
}

func IsImportant(t domain.Task, _ Env) bool { return t.Important }

// IsSomeday matches any task with a due date.
func IsSomeday(t domain.Task, _ Env) bool { return t.HasDueDate() }

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(t domain.Task, env Env) bool {
		for _, p := range preds {
			if !p(t, env) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches. Any() matches nothing.
func Any(preds ...Predicate) Predicate {
	return func(t domain.Task, env Env) bool {
		for _, p := range preds {
			if p(t, env) {
				return true
			}
		}
		return false
	}
}

var statusPredicates = map[domain.StatusFilter]Predicate{
	domain.StatusToday:     IsForToday,
	domain.StatusAll:       Everything,
	domain.StatusActive:    IsActive,
	domain.StatusCompleted: IsCompleted,
}

var tagPredicates = map[domain.Tag]Predicate{
	domain.TagImportant: IsImportant,
	domain.TagSomeday:   IsSomeday,
}

// StatusPredicate returns the predicate of a status filter. The deleted
// filter selects the trash set instead and has no predicate.
func StatusPredicate(f domain.StatusFilter) (Predicate, bool) {
	p, ok := statusPredicates[f]
	return p, ok
}

// TagPredicate ORs the predicates of the selected tags. No tags selects everything.
func TagPredicate(tags []domain.Tag) Predicate {
	var preds []Predicate
	for _, tag := range tags {
		if p, ok := tagPredicates[tag]; ok {
			preds = append(preds, p)
		}
	}
	if len(preds) == 0 {
		return Everything
	}
	return Any(preds...)
}

// ViewPredicate combines both filter axes.
func ViewPredicate(f domain.StatusFilter, tags []domain.Tag) Predicate {
	status, ok := StatusPredicate(f)
	if !ok {
		status = Everything
	}
	return And(status, TagPredicate(tags))
}

func filterTasks(tasks []domain.Task, match Predicate, env Env) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if match(t, env) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// sortForDisplay orders incomplete before completed, important before
// ordinary, then newest first.
func sortForDisplay(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.Important != b.Important {
			return a.Important
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// sortTrash orders by deletion time, newest first; unstamped tasks sink.
func sortTrash(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DeletedAt, tasks[j].DeletedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
