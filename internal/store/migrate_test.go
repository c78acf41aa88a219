package store

import (
	"testing"
	"time"

	"github.com/fastygo/tasklist/domain"
)

func TestClearAutoDueDates(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, time.October, 10, 23, 30, 0, 0, time.UTC)
	sameDayUTC := domain.Date{Year: 2026, Month: time.October, Day: 10}
	nextDay := domain.Date{Year: 2026, Month: time.October, Day: 11}

	tests := []struct {
		name      string
		loc       *time.Location
		due       domain.Date
		wantClear bool
	}{
		{"same day in utc", time.UTC, sameDayUTC, true},
		{"other day in utc", time.UTC, nextDay, false},
		// 23:30 UTC is already the 11th two hours east
		{"same day in local calendar", time.FixedZone("UTC+2", 2*60*60), nextDay, true},
		{"utc day is not local day", time.FixedZone("UTC+2", 2*60*60), sameDayUTC, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			due := tt.due
			in := domain.NewAppState()
			in.Tasks = []domain.Task{{ID: "a", CreatedAt: created, DueDate: &due}}

			out := ClearAutoDueDates(tt.loc)(*in)
			if cleared := out.Tasks[0].DueDate == nil; cleared != tt.wantClear {
				t.Errorf("cleared = %v, want %v", cleared, tt.wantClear)
			}
			if in.Tasks[0].DueDate == nil {
				t.Error("migration step modified its input")
			}
		})
	}
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	var applied []string
	step := func(name string) func(domain.AppState) domain.AppState {
		return func(s domain.AppState) domain.AppState {
			applied = append(applied, name)
			return s
		}
	}
	chain := []Migration{
		{From: 1, Name: "one", Apply: step("one")},
		{From: 2, Name: "two", Apply: step("two")},
	}

	state, version := Migrate(*domain.NewAppState(), 1, chain)
	if version != CurrentVersion || state.SchemaVersion != CurrentVersion {
		t.Errorf("expected version %d, got %d (state %d)", CurrentVersion, version, state.SchemaVersion)
	}
	// steps at or past the current version never run
	if len(applied) != 1 || applied[0] != "one" {
		t.Errorf("unexpected steps applied: %v", applied)
	}
}

func TestMigrate_IncompleteChain(t *testing.T) {
	t.Parallel()

	_, version := Migrate(*domain.NewAppState(), 0, Migrations(time.UTC))
	if version != 0 {
		t.Errorf("expected chain without a step from 0 to stop at 0, got %d", version)
	}
}

func TestMigrations_CoverEveryVersion(t *testing.T) {
	t.Parallel()

	chain := Migrations(time.UTC)
	for v := legacyVersion; v < CurrentVersion; v++ {
		found := false
		for _, m := range chain {
			if m.From == v {
				found = true
				if m.Name == "" || m.Apply == nil {
					t.Errorf("migration from %d is incomplete", v)
				}
			}
		}
		if !found {
			t.Errorf("no migration from version %d", v)
		}
	}
}
