package repo

import (
	"path/filepath"
	"testing"

	"github.com/promptkeep/go-prompt-backend/internal/domain"
)

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "no", "such", "dir", "app.db")
	if _, err := OpenSQLite(dsn); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

func TestOpenSQLite_AndAutoMigrate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "app.db")
	db, err := OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	m := db.Migrator()
	for _, tbl := range []any{&domain.Prompt{}, &domain.LicenseRecord{}, &domain.IdempotencyKey{}, &domain.UserStats{}, &domain.Achievement{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T after AutoMigrate", tbl)
		}
	}

	// WAL pragma applied
	var mode string
	if err := db.Raw("PRAGMA journal_mode;").Scan(&mode).Error; err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q; want wal", mode)
	}
}
