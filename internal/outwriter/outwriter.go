// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDays prints the day view using the configured output format.
func (ow *OutWriter) WriteDays(view schema.DayView, cfg *contract.Config, duration time.Duration) error {
	return WriteDayView(view, cfg, duration)
}

// WriteMonths prints the month calendars using the configured output format.
func (ow *OutWriter) WriteMonths(view schema.MonthView, cfg *contract.Config, duration time.Duration) error {
	return WriteMonthView(view, cfg, duration)
}

// WriteStats prints the statistics using the configured output format.
func (ow *OutWriter) WriteStats(stats schema.Statistics, cfg *contract.Config, duration time.Duration) error {
	return WriteStatistics(stats, cfg, duration)
}

// WriteTrend prints the trend using the configured output format.
func (ow *OutWriter) WriteTrend(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	return WriteTrend(result, cfg, duration)
}

// WriteReport prints the combined report using the configured output format.
func (ow *OutWriter) WriteReport(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return WriteReport(report, cfg, duration)
}
