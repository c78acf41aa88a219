package task

import (
	"context"
	"errors"
	"testing"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/usecase"
)

func newTestDispatcher(t *testing.T) (*usecase.Dispatcher, *UseCase) {
	t.Helper()
	uc, _ := newTestUseCase(nil)
	d := usecase.NewDispatcher()
	uc.Register(d)
	return d, uc
}

func execute(t *testing.T, d *usecase.Dispatcher, name, payload string) CommandResult {
	t.Helper()
	out, err := d.ExecuteCommand(context.Background(), name, []byte(payload))
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	res, ok := out.(CommandResult)
	if !ok {
		t.Fatalf("%s: expected CommandResult, got %T", name, out)
	}
	return res
}

func TestRegister_CommandNames(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)
	want := []string{
		CommandSetStatus, CommandToggleTag, CommandAdd, CommandDelete,
		CommandPurge, CommandRestore, CommandToggle, CommandEmptyTrash,
	}
	got := d.Commands()
	if len(got) != len(want) {
		t.Fatalf("expected %d commands, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestRegister_TaskLifecycle(t *testing.T) {
	t.Parallel()

	d, uc := newTestDispatcher(t)

	added := execute(t, d, CommandAdd, `{"text":"call mom","important":true,"dueDate":"2026-10-25"}`)
	if !added.Applied || added.Task == nil {
		t.Fatalf("expected task to be added, got %+v", added)
	}
	if added.Task.DueDate == nil || added.Task.DueDate.String() != "2026-10-25" {
		t.Errorf("unexpected due date: %v", added.Task.DueDate)
	}
	id := `{"id":"` + added.Task.ID + `"}`

	if res := execute(t, d, CommandToggle, id); !res.Applied {
		t.Error("expected toggle to apply")
	}
	if res := execute(t, d, CommandDelete, id); !res.Applied {
		t.Error("expected delete to apply")
	}
	if res := execute(t, d, CommandToggle, id); res.Applied {
		t.Error("toggle of trashed task must not apply")
	}
	if res := execute(t, d, CommandRestore, id); !res.Applied {
		t.Error("expected restore to apply")
	}
	execute(t, d, CommandDelete, id)
	if res := execute(t, d, CommandEmptyTrash, ""); !res.Applied || res.Purged != 1 {
		t.Errorf("expected one purged task, got %+v", res)
	}
	if res := execute(t, d, CommandRestore, id); res.Applied {
		t.Error("restore after empty trash must be a no-op")
	}
	if uc.TrashCount() != 0 || len(uc.Snapshot().Tasks) != 0 {
		t.Error("expected no tasks left")
	}
}

func TestRegister_BlankTextIsNotAnError(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)
	if res := execute(t, d, CommandAdd, `{"text":"   "}`); res.Applied {
		t.Error("blank text must not add a task")
	}
}

func TestRegister_Filters(t *testing.T) {
	t.Parallel()

	d, uc := newTestDispatcher(t)

	if res := execute(t, d, CommandSetStatus, `{"statusFilter":"completed"}`); !res.Applied {
		t.Error("expected status filter to apply")
	}
	execute(t, d, CommandToggleTag, `{"tag":"someday"}`)

	view, err := d.ExecuteQuery(context.Background(), QueryView, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := view.(View)
	if v.StatusFilter != domain.StatusCompleted {
		t.Errorf("expected completed, got %s", v.StatusFilter)
	}
	if len(v.Tags) != 1 || v.Tags[0] != domain.TagSomeday {
		t.Errorf("expected [someday], got %v", v.Tags)
	}
	if !uc.Snapshot().HasTag(domain.TagSomeday) {
		t.Error("tag was not applied to state")
	}
}

func TestRegister_InvalidPayloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
		payload string
	}{
		{"malformed json", CommandAdd, `{"text":`},
		{"bad due date", CommandAdd, `{"text":"x","dueDate":"25/10/2026"}`},
		{"missing id", CommandToggle, `{}`},
		{"empty payload for id", CommandDelete, ``},
		{"unknown status filter", CommandSetStatus, `{"statusFilter":"someday"}`},
		{"missing status filter", CommandSetStatus, `{}`},
		{"unknown tag", CommandToggleTag, `{"tag":"urgent"}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, uc := newTestDispatcher(t)
			_, err := d.ExecuteCommand(context.Background(), tt.command, []byte(tt.payload))
			if err == nil {
				t.Fatal("expected error")
			}
			if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
				t.Errorf("expected INVALID error, got %v", err)
			}
			if state := uc.Snapshot(); len(state.Tasks) != 0 || state.StatusFilter != domain.StatusToday {
				t.Errorf("state changed by rejected command: %+v", state)
			}
		})
	}
}

func TestRegister_UnknownCommand(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)
	_, err := d.ExecuteCommand(context.Background(), "task.rename", nil)
	if !errors.Is(err, domain.ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}
