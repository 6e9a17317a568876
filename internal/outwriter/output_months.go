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

// WriteMonthView outputs the month calendars, dispatching based on the output format configured.
func WriteMonthView(view schema.MonthView, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, view)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMonthCSV(w, view)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMonthTables(w, view, cfg, duration)
		}, "Wrote table")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, RenderMonthTables(view, cfg))
			return err
		}, "Wrote HTML")
	}
	return nil
}

// calendarDate returns the date shown by the cell at index, or false for padding cells.
func calendarDate(cal schema.MonthCalendar, index int) (time.Time, bool) {
	if !cal.Cells[index].InMonth() {
		return time.Time{}, false
	}
	return time.Date(cal.Year, cal.Month, index-cal.Delta, 0, 0, 0, 0, time.UTC), true
}

// writeMonthCSV writes one row per in-month calendar day.
func writeMonthCSV(w io.Writer, view schema.MonthView) error {
	header := []string{"date", "score", "question_count", "normalized", "band"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, cal := range view.Calendars {
			for i, cell := range cal.Cells {
				d, ok := calendarDate(cal, i)
				if !ok {
					continue
				}
				record := []string{
					d.Format(contract.DateFormat),
					formatNumber(cell.Score),
					strconv.Itoa(cell.QuestionCount),
					strconv.Itoa(cell.Display()),
					string(cell.Band),
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeMonthTables prints a titled seven-column table per month.
func writeMonthTables(w io.Writer, view schema.MonthView, cfg *contract.Config, duration time.Duration) error {
	width := cellWidth(view.MaxScore)
	header := weekHeader(max(width, 2))
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	for _, cal := range view.Calendars {
		if _, err := fmt.Fprintf(w, "%s\n", cal.Key); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.Header(header)
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for week := 0; week < schema.CalendarCells; week += 7 {
			var record []string
			for _, cell := range cal.Cells[week : week+7] {
				record = append(record, formatCalendarCell(cell, cfg.UseColors))
			}
			data = append(data, record)
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Showing %d month(s). Report built in %v\n", len(view.Calendars), duration); err != nil {
		return err
	}
	return nil
}

// formatCalendarCell renders a score, a dash for an empty day or a blank for padding.
func formatCalendarCell(cell schema.CalendarCell, useColors bool) string {
	switch v := cell.Display(); {
	case v > 0:
		text := strconv.Itoa(v)
		if useColors {
			return contract.GetColorBand(cell.Band, text)
		}
		return text
	case v == 0:
		return "-"
	default:
		return ""
	}
}
