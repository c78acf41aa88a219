package store

import (
	"time"

	"github.com/fastygo/tasklist/domain"
)

const (
	// CurrentVersion is stamped on every saved snapshot.
	CurrentVersion = 2

	// legacyVersion is assumed for records written without a schemaVersion.
	legacyVersion = 1
)

// Migration upgrades state written with schema version From to From+1.
// Apply must not modify its argument.
type Migration struct {
	From  int
	Name  string
	Apply func(domain.AppState) domain.AppState
}

// Migrations returns the ordered migration chain. Calendar comparisons use loc.
func Migrations(loc *time.Location) []Migration {
	return []Migration{
		{From: 1, Name: "clear auto-assigned due dates", Apply: ClearAutoDueDates(loc)},
	}
}

// Migrate applies the steps of chain in order, starting at version from,
// and returns the migrated state with the version it reached.
func Migrate(state domain.AppState, from int, chain []Migration) (domain.AppState, int) {
	version := from
	for _, step := range chain {
		if step.From != version || version >= CurrentVersion {
			continue
		}
		state = step.Apply(state)
		version = step.From + 1
	}
	state.SchemaVersion = version
	return state, version
}

// ClearAutoDueDates drops due dates that equal the creation day. Older
// versions stamped every task with its creation date as due date, which
// cannot be told apart from a same-day date picked by the user.
func ClearAutoDueDates(loc *time.Location) func(domain.AppState) domain.AppState {
	return func(in domain.AppState) domain.AppState {
		out := *in.Clone()
		clearMatching(out.Tasks, loc)
		clearMatching(out.DeletedTasks, loc)
		return out
	}
}

func clearMatching(tasks []domain.Task, loc *time.Location) {
	for i := range tasks {
		t := &tasks[i]
		if t.DueDate != nil && t.DueDate.Equal(domain.DateIn(t.CreatedAt, loc)) {
			t.DueDate = nil
		}
	}
}
