// Package core has core logic for ingesting the question log and building the report views.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dailyq/dailyq/core/reader"
	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/internal/outwriter"
	"github.com/dailyq/dailyq/schema"
)

// writer renders every view through the configured output format.
var writer = outwriter.NewOutWriter()

// ExecutorFunc defines the function signature for executing the report views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// LoadStore reads the configured log and ingests it into a fresh Store.
// Text sources are parsed strictly and file sources tolerantly.
func LoadStore(ctx context.Context, cfg *contract.Config) (*Store, schema.IngestSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, schema.IngestSummary{}, err
	}

	rd := reader.New(cfg.ScoreRange)
	var (
		raw []schema.RawRecord
		err error
	)
	if cfg.SourceText != "" {
		raw, err = rd.ReadText(cfg.SourceText)
	} else {
		raw, err = rd.ReadFile(cfg.Source)
	}
	if err != nil {
		return nil, schema.IngestSummary{}, fmt.Errorf("failed to read log: %w", err)
	}

	cutoff := CutoffDate(cfg.Today, cfg.Days, cfg.LookbackMonths)
	store := NewStore()
	seen, kept := store.Ingest(raw, cutoff, cfg.Censor)
	slog.Info("ingested records", "seen", seen, "kept", kept, "cutoff", cutoff.Format(contract.DateFormat))

	return store, schema.IngestSummary{Seen: seen, Kept: kept, Cutoff: cutoff}, nil
}

// runReportCore loads the store and tracks the run in the history store, if any.
// The returned finish function must be called once the view has been built.
func runReportCore(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, view schema.ViewName) (*Store, func(), error) {
	store, summary, err := LoadStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if !shouldSuppressHeader(ctx) {
		logReportHeader(cfg, summary.Cutoff.Format(contract.DateFormat))
	}

	// --- Begin Run Tracking (if configured) ---
	var history contract.HistoryStore
	if mgr != nil {
		history = mgr.GetHistoryStore()
	}
	if history == nil {
		return store, func() {}, nil
	}

	startTime := time.Now()
	runID, err := history.BeginRun(startTime, view, map[string]any{
		"days":        cfg.Days,
		"months":      cfg.Months,
		"score_range": []float64{cfg.ScoreRange.Min, cfg.ScoreRange.Max},
		"scale":       []float64{cfg.Scale.Min, cfg.Scale.Max},
		"today":       cfg.Today.Format(contract.TodayFormat),
		"censor":      cfg.Censor,
	})
	if err != nil {
		contract.LogWarn("Report tracking initialization failed", err)
		return store, func() {}, nil
	}
	ctx = withRunID(ctx, runID)

	finish := func() {
		id, ok := getRunID(ctx)
		if !ok || id <= 0 {
			return
		}
		points := TrendSeries(store.MonthRows(MonthBoundary(cfg.Today)), cfg.ScoreRange, cfg.Scale)
		if err := history.RecordDailyScores(id, points); err != nil {
			contract.LogWarn("Failed to record daily scores", err)
		}
		if err := history.EndRun(id, time.Now(), summary); err != nil {
			contract.LogWarn("Failed to finalize report tracking", err)
		}
	}
	return store, finish, nil
}

// GetDayViewResults builds the day view without printing it.
func GetDayViewResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (schema.DayView, time.Duration, error) {
	start := time.Now()
	store, finish, err := runReportCore(ctx, cfg, mgr, schema.DaysView)
	if err != nil {
		return schema.DayView{}, 0, err
	}
	defer finish()
	return BuildDayView(store, cfg), time.Since(start), nil
}

// GetMonthViewResults builds the month view without printing it.
func GetMonthViewResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (schema.MonthView, time.Duration, error) {
	start := time.Now()
	store, finish, err := runReportCore(ctx, cfg, mgr, schema.MonthsView)
	if err != nil {
		return schema.MonthView{}, 0, err
	}
	defer finish()
	view, err := BuildMonthView(store, cfg)
	return view, time.Since(start), err
}

// GetStatisticsResults builds the statistics view without printing it.
func GetStatisticsResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (schema.Statistics, time.Duration, error) {
	start := time.Now()
	store, finish, err := runReportCore(ctx, cfg, mgr, schema.StatsView)
	if err != nil {
		return schema.Statistics{}, 0, err
	}
	defer finish()
	return BuildStatistics(store, cfg), time.Since(start), nil
}

// GetTrendResults builds the trend without printing it.
func GetTrendResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (schema.TrendResult, time.Duration, error) {
	start := time.Now()
	store, finish, err := runReportCore(ctx, cfg, mgr, schema.TrendView)
	if err != nil {
		return schema.TrendResult{}, 0, err
	}
	defer finish()
	result, err := BuildTrend(store, cfg)
	return result, time.Since(start), err
}

// GetReportResults builds every view without printing them.
func GetReportResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (schema.Report, time.Duration, error) {
	start := time.Now()
	store, finish, err := runReportCore(ctx, cfg, mgr, schema.ReportView)
	if err != nil {
		return schema.Report{}, 0, err
	}
	defer finish()
	return BuildReport(store, cfg), time.Since(start), nil
}

// ExecuteDays builds the day view and prints it.
// It serves as the main entry point for the 'days' command.
func ExecuteDays(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	view, duration, err := GetDayViewResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteDays(view, cfg, duration)
}

// ExecuteMonths builds the month calendars and prints them.
// An empty month window prints a notice instead of an empty table.
func ExecuteMonths(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	view, duration, err := GetMonthViewResults(ctx, cfg, mgr)
	if errors.Is(err, contract.ErrEmptyResult) {
		logEmptyResult(schema.MonthsView)
		return nil
	}
	if err != nil {
		return err
	}
	return writer.WriteMonths(view, cfg, duration)
}

// ExecuteStats builds the weekday and question averages and prints them.
func ExecuteStats(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	stats, duration, err := GetStatisticsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteStats(stats, cfg, duration)
}

// ExecuteTrend fits the trend line and renders it through the chart surface.
func ExecuteTrend(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	result, duration, err := GetTrendResults(ctx, cfg, mgr)
	if errors.Is(err, contract.ErrEmptyResult) {
		logEmptyResult(schema.TrendView)
		return nil
	}
	if err != nil {
		return err
	}
	return writer.WriteTrend(result, cfg, duration)
}

// ExecuteReport builds every view and prints them as one document.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	report, duration, err := GetReportResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteReport(report, cfg, duration)
}
