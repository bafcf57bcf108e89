package history

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/csmith/steamicons/restore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRuns(t *testing.T) {
	store := openTestStore(t)

	summary := restore.Summary{
		Scanned:     3,
		Written:     1,
		Skipped:     1,
		FetchFailed: 1,
		Outcomes: []restore.Outcome{
			{File: "a.url", GameID: "220", IconFilename: "hl.ico", State: restore.Written},
			{File: "b.url", GameID: "400", IconFilename: "portal.ico", State: restore.Skipped},
			{File: "c.url", GameID: "570", IconFilename: "dota.ico", State: restore.FetchFailed, Err: errors.New("HTTP 404")},
		},
	}
	require.NoError(t, store.Record(summary))

	runs, err := store.Runs(0)

	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Scanned)
	assert.Equal(t, 1, runs[0].Written)
	assert.Equal(t, 1, runs[0].Skipped)
	assert.Equal(t, 1, runs[0].FetchFailed)
	assert.False(t, runs[0].Time.IsZero())
}

func TestRuns_NewestFirstWithLimit(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record(restore.Summary{Scanned: 1}))
	require.NoError(t, store.Record(restore.Summary{Scanned: 2}))
	require.NoError(t, store.Record(restore.Summary{Scanned: 3}))

	runs, err := store.Runs(2)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 3, runs[0].Scanned)
	assert.Equal(t, 2, runs[1].Scanned)
}

func TestOpen_ReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(restore.Summary{Scanned: 1}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Runs(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
