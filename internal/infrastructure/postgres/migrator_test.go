package postgres

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestRunMigrationsRejectsMissingSource(t *testing.T) {
	err := RunMigrations("postgres://localhost:1/db?sslmode=disable", "/nonexistent/migrations", zerolog.Nop())
	if err == nil {
		t.Fatal("expected error for missing migrations directory")
	}
}
