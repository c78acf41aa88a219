package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fastygo/tasklist/domain"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

func TestResolveID(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{{ID: "abc123"}, {ID: "abd456"}, {ID: "xyz"}}
	tests := []struct {
		prefix  string
		want    string
		wantErr bool
	}{
		{"abc123", "abc123", false},
		{"abc", "abc123", false},
		{" xy ", "xyz", false},
		{"ab", "", true},
		{"nope", "nope", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := resolveID(tasks, tt.prefix)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveID(%q) error = %v, wantErr %v", tt.prefix, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveID(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestRenderView(t *testing.T) {
	t.Parallel()

	due := domain.Date{Year: 2026, Month: time.October, Day: 1}
	view := taskUC.View{
		Tasks: []taskUC.TaskView{{
			Task:    domain.Task{ID: "0123456789", Text: "renew passport", Important: true, DueDate: &due},
			Overdue: true,
		}},
		Counts:       taskUC.Counts{Total: 1, Active: 1},
		TrashCount:   2,
		StatusFilter: domain.StatusAll,
		Tags:         []domain.Tag{domain.TagImportant},
		Today:        domain.Date{Year: 2026, Month: time.October, Day: 19},
	}

	var out bytes.Buffer
	if err := renderView(&out, view); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Filter: all", "Tags: important", "ID", "TASK", "FLAGS", "01234567", "[ ]", "renew passport", "due 2026-10-01", "OVERDUE", "1 shown, 1 active, 0 completed, 2 in trash"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestTaskTable_OneRowPerTask(t *testing.T) {
	t.Parallel()

	tasks := []taskUC.TaskView{
		{Task: domain.Task{ID: "aaaaaaaaaa", Text: "open"}},
		{Task: domain.Task{ID: "bbbbbbbbbb", Text: "done", Completed: true}},
	}
	out := taskTable(tasks)
	for _, want := range []string{"aaaaaaaa", "bbbbbbbb", "[ ]", "[x]", "open", "done"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "aaaaaaaaaa") {
		t.Error("ids must be shortened")
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("tasklist %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestCommands_EndToEnd(t *testing.T) {
	t.Setenv("STORE_DRIVER", "bolt")
	t.Setenv("BOLTDB_PATH", filepath.Join(t.TempDir(), "tasks.db"))
	t.Setenv("TASKLIST_TIMEZONE", "UTC")
	t.Setenv("TRASH_RETENTION_HOURS", "0")

	out := execute(t, "add", "-i", "buy", "milk")
	if !strings.Contains(out, "buy milk") || !strings.Contains(out, "!") {
		t.Errorf("expected new important task in today's view:\n%s", out)
	}

	out = execute(t, "add", "   ")
	if !strings.Contains(out, "Nothing added") {
		t.Errorf("expected blank text to be reported:\n%s", out)
	}

	out = execute(t, "filter", "completed")
	if !strings.Contains(out, "Filter: completed") || !strings.Contains(out, "No tasks.") {
		t.Errorf("expected empty completed view:\n%s", out)
	}

	out = execute(t, "tag", "important")
	if !strings.Contains(out, "Tags: important") {
		t.Errorf("expected tag to be selected:\n%s", out)
	}

	out = execute(t, "ls")
	if !strings.Contains(out, "Filter: completed") || !strings.Contains(out, "Tags: important") {
		t.Errorf("filters were not persisted:\n%s", out)
	}

	out = execute(t, "empty-trash")
	if !strings.Contains(out, "Purged 0 task(s).") {
		t.Errorf("unexpected empty-trash output:\n%s", out)
	}
}

func TestCommands_RejectInvalidArguments(t *testing.T) {
	t.Parallel()

	tests := [][]string{
		{"filter", "later"},
		{"tag", "urgent"},
		{"add", "--due", "tomorrow", "x"},
		{"toggle"},
	}
	for _, args := range tests {
		root := NewRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		if err := root.Execute(); err == nil {
			t.Errorf("tasklist %s: expected error", strings.Join(args, " "))
		}
	}
}
