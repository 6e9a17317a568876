package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDayView outputs the day view, dispatching based on the output format configured.
func WriteDayView(view schema.DayView, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, view)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDayCSV(w, view)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDayTable(w, view, cfg, duration)
		}, "Wrote table")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, RenderDayTable(view, cfg))
			return err
		}, "Wrote HTML")
	}
	return nil
}

// writeDayCSV writes one row per answered (question, date) pair.
func writeDayCSV(w io.Writer, view schema.DayView) error {
	header := []string{"question", "date", "score", "normalized", "smiley"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range view.Rows {
			for i, cell := range row.Cells {
				if cell == nil {
					continue
				}
				record := []string{
					row.Question,
					view.Dates[i].Format(contract.DateFormat),
					formatNumber(*cell),
					strconv.Itoa(row.Normalized),
					row.Smiley,
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeDayTable generates and writes the human-readable day grid.
func writeDayTable(w io.Writer, view schema.DayView, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{cfg.QuestionPrefix}
	for _, d := range view.Dates {
		headers = append(headers, strconv.Itoa(d.Day()))
	}
	headers = append(headers, fmt.Sprintf("Grade(%s)", formatNumber(cfg.Scale.Max)), "")
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	questionWidth := getMaxQuestionWidth(cfg, len(view.Dates))
	var data [][]string
	for _, row := range view.Rows {
		record := []string{contract.TruncateText(row.Question, questionWidth)}
		for _, cell := range row.Cells {
			if cell == nil {
				record = append(record, "")
				continue
			}
			record = append(record, strings.TrimSpace(formatDayScore(*cell, cfg.OnlyDecimals)))
		}
		grade := strconv.Itoa(row.Normalized)
		if cfg.UseColors {
			grade = contract.GetColorBand(row.Band, grade)
		}
		record = append(record, grade, row.Smiley)
		data = append(data, record)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d question(s) over %d day(s). Report built in %v\n", len(view.Rows), len(view.Dates), duration); err != nil {
		return err
	}
	return nil
}
