package migrate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/epc-retail/exclusivity-backend/pkg/migrate"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "1_too_short.go", "goose.AddMigrationContext(up00001, down00001)")

	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected filename error")
	}
}

func TestValidateDirRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001_first.go", "goose.AddMigrationContext(up00001, down00001)")
	writeMigration(t, dir, "00001_second.go", "goose.AddMigrationContext(up00001, down00001)")

	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected duplicate version error")
	}
}

func TestValidateDirRejectsVersionGap(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001_first.go", "goose.AddMigrationContext(up00001, down00001)")
	writeMigration(t, dir, "00003_third.go", "goose.AddMigrationContext(up00003, down00003)")

	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected gap error")
	}
}

func TestValidateDirReportsAllFindings(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001_ok.go", "goose.AddMigrationContext(up00001, down00001)")
	writeMigration(t, dir, "00002_missing_registration.go", "package migrations")
	writeMigration(t, dir, "BadName.go", "whatever")

	err := migrate.ValidateDir(dir)
	if err == nil {
		t.Fatalf("expected validation errors")
	}
}

func TestCreateGoMigrationNumbersSequentially(t *testing.T) {
	dir := t.TempDir()

	first, err := migrate.CreateGoMigration(dir, "Add Widget Table")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if filepath.Base(first) != "00001_add_widget_table.go" {
		t.Fatalf("unexpected first filename %s", filepath.Base(first))
	}

	second, err := migrate.CreateGoMigration(dir, "widen widget column")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if filepath.Base(second) != "00002_widen_widget_column.go" {
		t.Fatalf("unexpected second filename %s", filepath.Base(second))
	}

	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated stubs failed validation: %v", err)
	}
}

func TestCreateGoMigrationRejectsEmptyName(t *testing.T) {
	if _, err := migrate.CreateGoMigration(t.TempDir(), "!!!"); err == nil {
		t.Fatalf("expected sanitize error")
	}
}

func writeMigration(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
