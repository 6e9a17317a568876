// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/dailyq/dailyq/schema"
)

// HistoryManager defines the interface for reaching the report history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking report runs and the daily
// score series they produced.
type HistoryStore interface {
	// BeginRun creates a new report run and returns its unique ID
	BeginRun(startTime time.Time, view schema.ViewName, configParams map[string]any) (int64, error)

	// EndRun updates the report run with completion data
	EndRun(runID int64, endTime time.Time, summary schema.IngestSummary) error

	// RecordDailyScores stores the normalized month-view series of a run
	RecordDailyScores(runID int64, points []schema.TrendPoint) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves all report runs
	GetAllRuns() ([]schema.ReportRunRecord, error)

	// GetAllDailyScores retrieves all recorded daily scores
	GetAllDailyScores() ([]schema.DailyScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

// ChartSurface renders a score series and its fitted trend line.
type ChartSurface interface {
	Render(result schema.TrendResult) (string, error)
}
