package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonahtballard/CatBase/internal/config"
	"github.com/jonahtballard/CatBase/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runExport runs the command against handler with the spinner bypassed and
// returns the exit code and the snapshot path
func runExport(t *testing.T, handler http.HandlerFunc, extra ...string) (int, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv(config.KeyLogFile, filepath.Join(dir, "export.log"))

	orig := spin
	spin = func(_ context.Context, _ string, action func()) error {
		action()
		return nil
	}
	t.Cleanup(func() { spin = orig })

	dbPath := filepath.Join(dir, "catbase.db")
	args := append([]string{"-db", dbPath, "-api", srv.URL}, extra...)
	return run(args), dbPath
}

func openSnapshot(t *testing.T, path string) *db.DB {
	t.Helper()
	database, err := db.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestRunStoresSnapshot(t *testing.T) {
	code, dbPath := runExport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sections", r.URL.Path)
		w.Write([]byte(`{"items":[
			{"section_id":1,"crn":"91","subject":"CS","course_number":"021","title":"Intro","semester":"Fall","year":2025},
			{"section_id":2,"crn":"92","subject":"CS","course_number":"021","title":"Intro","semester":"Fall","year":2025}
		],"total":2,"limit":50,"offset":0}`))
	})
	require.Equal(t, 0, code)

	database := openSnapshot(t, dbPath)
	e, err := database.GetExport(1)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Pages)
	assert.Equal(t, 2, e.Sections)

	n, err := database.CountSections()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRunFailedWalkFinishesExport(t *testing.T) {
	code, dbPath := runExport(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database is locked", http.StatusInternalServerError)
	})
	assert.Equal(t, 1, code)

	// the deferred close ran, so the snapshot holds the finished export
	database := openSnapshot(t, dbPath)
	e, err := database.GetExport(1)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Pages)
	assert.Equal(t, 0, e.Sections)

	data, err := os.ReadFile(os.Getenv(config.KeyLogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "export started")
}

func TestRunRejectsBadInput(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	}

	code, dbPath := runExport(t, handler, "-status", "waitlist")
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, dbPath)

	code, _ = runExport(t, handler, "-no-such-flag")
	assert.Equal(t, 2, code)
}
