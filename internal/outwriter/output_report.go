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
)

// WriteReport outputs every view as one document, dispatching based on the output format configured.
func WriteReport(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, cfg, duration)
		}, "Wrote report")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			out, err := RenderReportHTML(report, cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, out)
			return err
		}, "Wrote HTML")
	}
	return nil
}

// RenderReportHTML joins the day table, the month calendars, the statistics and
// the trend chart into one HTML document.
func RenderReportHTML(report schema.Report, cfg *contract.Config) (string, error) {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(RenderDayTable(report.DayView, cfg))
	if report.MonthView != nil {
		b.WriteString(RenderMonthTables(*report.MonthView, cfg))
	}
	b.WriteString(RenderStatistics(report.Statistics, cfg))
	if report.Trend != nil {
		chart := NewTerminalChart(cfg)
		chart.Styled = false
		out, err := RenderTrendHTML(*report.Trend, chart)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	b.WriteString("</body></html>")
	return b.String(), nil
}

// writeReportText prints each text view in turn, ending with a sparkline of the daily scores.
func writeReportText(w io.Writer, report schema.Report, cfg *contract.Config, duration time.Duration) error {
	if err := writeDayTable(w, report.DayView, cfg, duration); err != nil {
		return err
	}
	if report.MonthView != nil {
		if err := writeMonthTables(w, *report.MonthView, cfg, duration); err != nil {
			return err
		}
	}
	if err := writeStatsTables(w, report.Statistics, cfg, duration); err != nil {
		return err
	}
	if report.Trend == nil {
		return nil
	}
	if err := writeTrendChart(w, *report.Trend, NewTerminalChart(cfg), duration); err != nil {
		return err
	}
	width := min(max(len(report.Trend.Points), 1), getTerminalWidth(cfg))
	_, err := fmt.Fprintln(w, renderSparkline(report.Trend.Points, width, cfg.UseColors))
	return err
}

// writeReportCSV flattens every view into section,label,date,value rows.
func writeReportCSV(w io.Writer, report schema.Report) error {
	header := []string{"section", "label", "date", "value"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		write := func(section, label string, date time.Time, value string) error {
			dateText := ""
			if !date.IsZero() {
				dateText = date.Format(contract.DateFormat)
			}
			return cw.Write([]string{section, label, dateText, value})
		}

		for _, row := range report.DayView.Rows {
			for i, cell := range row.Cells {
				if cell == nil {
					continue
				}
				if err := write("day", row.Question, report.DayView.Dates[i], formatNumber(*cell)); err != nil {
					return err
				}
			}
			if err := write("grade", row.Question, time.Time{}, strconv.Itoa(row.Normalized)); err != nil {
				return err
			}
		}
		if report.MonthView != nil {
			for _, cal := range report.MonthView.Calendars {
				for i, cell := range cal.Cells {
					d, ok := calendarDate(cal, i)
					if !ok || cell.QuestionCount == 0 {
						continue
					}
					if err := write("month", cal.Key, d, strconv.Itoa(cell.Display())); err != nil {
						return err
					}
				}
			}
		}
		for _, s := range report.Statistics.ByWeekday {
			if err := write("weekday", s.Label, time.Time{}, formatNumber(s.Score)); err != nil {
				return err
			}
		}
		for _, s := range report.Statistics.ByQuestion {
			if err := write("question", s.Label, time.Time{}, formatNumber(s.Score)); err != nil {
				return err
			}
		}
		return nil
	})
}
