package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
)

// logReportHeader prints a concise, 2-line header for each report to stderr.
func logReportHeader(cfg *contract.Config, cutoffLabel string) {
	source := "text"
	if cfg.Source != "" {
		source = filepath.Base(cfg.Source)
	}

	// Line 1: The report summary (source and windows)
	_, _ = fmt.Fprintf(os.Stderr, "📒 Log: %s (Days: %d, Months: %d)\n", source, cfg.Days, cfg.Months)

	// Line 2: The retained date range
	_, _ = fmt.Fprintf(os.Stderr, "📅 Range: %s → %s\n", cutoffLabel, cfg.Today.Format(contract.DateFormat))
}

// logEmptyResult tells the user that a view had nothing to render.
func logEmptyResult(view schema.ViewName) {
	_, _ = fmt.Fprintf(os.Stderr, "📭 No records for the %s view since the start of the previous month\n", view)
}
