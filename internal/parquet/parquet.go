// Package parquet exports report history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/dailyq/dailyq/schema"
	"github.com/parquet-go/parquet-go"
)

// ReportRun is one report run with its settings and ingestion counts.
// This struct maps to the dailyq_report_runs database table.
type ReportRun struct {
	RunID         int64      `parquet:"run_id,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`

	// View is the report view that produced the run (days, months, stats, trend or report)
	View string `parquet:"view,snappy,dict"`

	RecordsSeen int32 `parquet:"records_seen,snappy"`
	RecordsKept int32 `parquet:"records_kept,snappy"`

	// ConfigParams contains the JSON-encoded report settings (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// DailyScore is one normalized day of the month-view series recorded by a run.
// This struct maps to the dailyq_daily_scores database table.
type DailyScore struct {
	RunID         int64     `parquet:"run_id,snappy"`
	ScoreDate     time.Time `parquet:"score_date,snappy"`
	Score         int32     `parquet:"score,snappy"`
	QuestionCount int32     `parquet:"question_count,snappy"`
}

// WriteReportRunsParquet writes report runs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDailyScoresParquet writes daily scores to a Parquet file.
func WriteDailyScoresParquet(data []DailyScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to outputPath with the schema inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertReportRunRecords converts schema.ReportRunRecord to ReportRun for Parquet export.
func ConvertReportRunRecords(records []schema.ReportRunRecord) []ReportRun {
	result := make([]ReportRun, len(records))
	for i, record := range records {
		result[i] = ReportRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			View:          record.View,
			RecordsSeen:   record.RecordsSeen,
			RecordsKept:   record.RecordsKept,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertDailyScoreRecords converts schema.DailyScoreRecord to DailyScore for Parquet export.
func ConvertDailyScoreRecords(records []schema.DailyScoreRecord) []DailyScore {
	result := make([]DailyScore, len(records))
	for i, record := range records {
		result[i] = DailyScore{
			RunID:         record.RunID,
			ScoreDate:     record.ScoreDate,
			Score:         record.Score,
			QuestionCount: record.QuestionCount,
		}
	}
	return result
}
