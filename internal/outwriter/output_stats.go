package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteStatistics outputs the weekday and question averages, dispatching based on the output format configured.
func WriteStatistics(stats schema.Statistics, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsCSV(w, stats)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTables(w, stats, cfg, duration)
		}, "Wrote table")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, RenderStatistics(stats, cfg))
			return err
		}, "Wrote HTML")
	}
	return nil
}

// writeStatsCSV writes the weekday rows followed by the question rows.
func writeStatsCSV(w io.Writer, stats schema.Statistics) error {
	header := []string{"group", "label", "score"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range stats.ByWeekday {
			if err := cw.Write([]string{"weekday", s.Label, formatNumber(s.Score)}); err != nil {
				return err
			}
		}
		for _, s := range stats.ByQuestion {
			if err := cw.Write([]string{"question", s.Label, formatNumber(s.Score)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// statsLabelWidth sizes the label column to the longest question so both
// tables line up, capped like the day table's question column.
func statsLabelWidth(stats schema.Statistics, cfg *contract.Config) int {
	return min(max(stats.MaxQuestionLen, len("Wednesday")), getMaxQuestionWidth(cfg, 0))
}

// writeStatsTables prints both averages as tables with a bar column.
func writeStatsTables(w io.Writer, stats schema.Statistics, cfg *contract.Config, duration time.Duration) error {
	width := len(formatNumber(stats.ScoreMax))
	labelWidth := statsLabelWidth(stats, cfg)
	groups := []struct {
		by     string
		scores []schema.LabeledScore
	}{
		{"weekday", stats.ByWeekday},
		{"question", stats.ByQuestion},
	}

	for _, g := range groups {
		if _, err := fmt.Fprintln(w, statsHeading(g.by, stats.Months)); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Label", "Score", "Bar"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})

		var data [][]string
		for _, s := range g.scores {
			data = append(data, []string{
				fmt.Sprintf("%-*s", labelWidth, contract.TruncateText(s.Label, labelWidth)),
				fmt.Sprintf("%.2f", s.Score),
				fmt.Sprintf("|%-*so", width, scoreBar(s.Score, cfg.Multiplier)),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Statistics over %d month(s) built in %v\n", stats.Months, duration); err != nil {
		return err
	}
	return nil
}
