package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenAndMigrate(t *testing.T) {
	dsn, err := FileDSN(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	if !strings.HasPrefix(dsn, "file:") || !strings.Contains(dsn, "busy_timeout") {
		t.Fatalf("unexpected dsn %q", dsn)
	}

	d, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	// migrating twice must be harmless
	for i := 0; i < 2; i++ {
		if err := Migrate(context.Background(), d); err != nil {
			t.Fatalf("migrate pass %d: %v", i+1, err)
		}
	}

	for _, table := range []string{"tasks", "logs"} {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s to exist: %v", table, err)
		}
	}
}
