package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "STORE_KEY", "TASKLIST_TIMEZONE", "TRASH_RETENTION_HOURS", "DATABASE_URL", "DB_PASSWORD"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Driver != DriverBolt {
		t.Errorf("expected bolt driver by default, got %s", cfg.Store.Driver)
	}
	if cfg.Store.Key != "tasklist.state" {
		t.Errorf("unexpected default key %s", cfg.Store.Key)
	}
	if cfg.Trash.Retention != 0 {
		t.Errorf("expected retention disabled by default, got %v", cfg.Trash.Retention)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Errorf("expected local calendar, got %v (%v)", loc, err)
	}
	if !strings.HasPrefix(cfg.Database.URL, "postgres://") {
		t.Errorf("expected a built database url, got %s", cfg.Database.URL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("TASKLIST_TIMEZONE", "UTC")
	t.Setenv("TRASH_RETENTION_HOURS", "72")
	t.Setenv("TRASH_SWEEP_INTERVAL", "90")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Driver != DriverRedis {
		t.Errorf("expected driver to be lower-cased, got %s", cfg.Store.Driver)
	}
	if cfg.Trash.Retention != 72*time.Hour {
		t.Errorf("unexpected retention %v", cfg.Trash.Retention)
	}
	if cfg.Trash.SweepInterval != 90*time.Second {
		t.Errorf("expected bare numbers to mean seconds, got %v", cfg.Trash.SweepInterval)
	}
	if cfg.Address() != "0.0.0.0:9000" {
		t.Errorf("unexpected address %s", cfg.Address())
	}
	if cfg.Database.URL != "postgres://u:p@db:5432/x" {
		t.Errorf("explicit database url was replaced: %s", cfg.Database.URL)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("unexpected location %v (%v)", loc, err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "STORE_DRIVER", "sqlite"},
		{"unknown timezone", "TASKLIST_TIMEZONE", "Mars/Olympus_Mons"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
