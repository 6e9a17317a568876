package schema

import "time"

// HistoryStatus represents the status of the report history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalKept     int              `json:"total_kept"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// ReportRunRecord represents a row from the dailyq_report_runs table.
type ReportRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	View          string
	RecordsSeen   int32
	RecordsKept   int32
	ConfigParams  *string
}

// DailyScoreRecord represents a row from the dailyq_daily_scores table.
type DailyScoreRecord struct {
	RunID         int64
	ScoreDate     time.Time
	Score         int32
	QuestionCount int32
}
