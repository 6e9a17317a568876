package iocache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dailyq/dailyq/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateHistory_NoneBackend(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	require.NoError(t, err)

	// Already at latest
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))

	// The migrated schema is usable by the store
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	_, err = store.BeginRun(time.Now(), schema.DaysView, nil)
	assert.NoError(t, err)
}

func TestClearHistory(t *testing.T) {
	tests := []struct {
		name      string
		backend   schema.DatabaseBackend
		path      string
		expectErr bool
	}{
		{"none", schema.NoneBackend, "", false},
		{"sqlite without path", schema.SQLiteBackend, "", true},
		{"sqlite missing file", schema.SQLiteBackend, filepath.Join(t.TempDir(), "missing.db"), false},
		{"unsupported", schema.DatabaseBackend("oracle"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClearHistory(tt.backend, tt.path, "")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClearHistory_SQLiteFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestPrintHistoryStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintHistoryStatus(&buf, schema.HistoryStatus{Backend: "none"})
	assert.Equal(t, "History Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintHistoryStatus(&buf, schema.HistoryStatus{
		Backend:       "sqlite",
		Connected:     true,
		TotalRuns:     2,
		LastRunID:     2,
		LastRunTime:   time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		OldestRunTime: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		TotalKept:     12,
		TableSizes:    map[string]int64{dailyScoresTable: 6, reportRunsTable: 2},
	})
	expected := "History Backend: sqlite\n" +
		"Connected: true\n" +
		"Total Runs: 2\n" +
		"Last Run ID: 2\n" +
		"Last Run: 2024-03-02 10:00:00\n" +
		"Oldest Run: 2024-03-01 09:30:00\n" +
		"Total Records Kept: 12\n" +
		"Table Sizes:\n" +
		"  dailyq_daily_scores: 6 rows\n" +
		"  dailyq_report_runs: 2 rows\n"
	assert.Equal(t, expected, buf.String())
}

func TestExecuteHistoryExport(t *testing.T) {
	store := newSQLiteStore(t)
	runID, err := store.BeginRun(time.Now(), schema.MonthsView, map[string]any{"months": 2})
	require.NoError(t, err)
	require.NoError(t, store.RecordDailyScores(runID, samplePoints()))
	require.NoError(t, store.EndRun(runID, time.Now(), schema.IngestSummary{Seen: 4, Kept: 3}))

	prefix := filepath.Join(t.TempDir(), "history")
	require.NoError(t, ExecuteHistoryExport(store, prefix))

	for _, suffix := range []string{".report_runs.parquet", ".daily_scores.parquet"} {
		info, err := os.Stat(prefix + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestExecuteHistoryExport_Errors(t *testing.T) {
	assert.ErrorContains(t, ExecuteHistoryExport(nil, "out"), "not configured")
	assert.ErrorContains(t, ExecuteHistoryExport(&MockHistoryStore{}, ""), "--output-file is required")

	empty := &MockHistoryStore{}
	empty.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)
	assert.ErrorContains(t, ExecuteHistoryExport(empty, "out"), "no report history found")
	empty.AssertExpectations(t)

	failing := &MockHistoryStore{}
	failing.On("GetStatus").Return(schema.HistoryStatus{TotalRuns: 1}, nil)
	failing.On("GetAllRuns").Return(nil, assert.AnError)
	err := ExecuteHistoryExport(failing, filepath.Join(t.TempDir(), "out"))
	assert.ErrorIs(t, err, assert.AnError)
	failing.AssertNotCalled(t, "GetAllDailyScores")
}

func TestHistoryStoreManager(t *testing.T) {
	mgr := &HistoryStoreManager{}
	assert.Nil(t, mgr.GetHistoryStore())

	store := newSQLiteStore(t)
	mgr.history = store
	assert.Equal(t, store, mgr.GetHistoryStore())
}
