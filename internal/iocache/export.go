package iocache

import (
	"errors"
	"fmt"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/internal/parquet"
)

// ExecuteHistoryExport exports report runs and daily scores to Parquet files
// named after outputFile.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("report history is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no report history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total report runs: %d\n", status.TotalRuns)
	fmt.Printf("Total daily scores: %d\n", status.TableSizes[dailyScoresTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve report runs: %w", err)
	}
	scores, err := store.GetAllDailyScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve daily scores: %w", err)
	}

	runsFile := outputFile + ".report_runs.parquet"
	parquetRuns := parquet.ConvertReportRunRecords(runs)
	if err := parquet.WriteReportRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write report runs: %w", err)
	}
	fmt.Printf("Exported %d report runs to: %s\n", len(parquetRuns), runsFile)

	scoresFile := outputFile + ".daily_scores.parquet"
	parquetScores := parquet.ConvertDailyScoreRecords(scores)
	if err := parquet.WriteDailyScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write daily scores: %w", err)
	}
	fmt.Printf("Exported %d daily scores to: %s\n", len(parquetScores), scoresFile)

	fmt.Println("\nExport complete! The Parquet files can be read with DuckDB, Pandas (via pyarrow) or Apache Arrow.")
	return nil
}
