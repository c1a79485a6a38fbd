// Package testutil provides shared test helpers for setting up stores and analyzers.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/starford/laguz/internal/analyzer"
	"github.com/starford/laguz/internal/store"
)

// Logger returns a logger that discards all output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestStore creates a temporary SQLite store that is automatically cleaned up.
func TestStore(t *testing.T) *store.SQLite {
	t.Helper()
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestAnalyzer creates an analyzer with no model backend, so every operation
// uses the deterministic fallback paths.
func TestAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()
	return analyzer.New(context.Background(), Logger(), nil, "", "")
}
