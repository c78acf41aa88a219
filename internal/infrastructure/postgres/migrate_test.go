package postgres

import (
	"testing"

	"github.com/fastygo/tasklist/internal/config"
)

func TestMigrateSlots_Disabled(t *testing.T) {
	t.Parallel()

	// an unreachable URL proves nothing is dialed
	db := config.DatabaseConfig{URL: "postgres://nobody@127.0.0.1:1/none?sslmode=disable"}
	version, err := MigrateSlots(db, config.MigrationsConfig{Enabled: false}, nil)
	if err != nil || version != 0 {
		t.Errorf("expected no-op, got version %d, err %v", version, err)
	}
}
