package outwriter

import (
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"strconv"
	"time"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
)

// WriteTrend outputs the trend, dispatching based on the output format configured.
// Text and HTML output draw the series through the chart surface.
func WriteTrend(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendCSV(w, result)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendChart(w, result, NewTerminalChart(cfg), duration)
		}, "Wrote chart")
	default:
		chart := NewTerminalChart(cfg)
		chart.Styled = false
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			out, err := RenderTrendHTML(result, chart)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, out)
			return err
		}, "Wrote HTML")
	}
	return nil
}

// RenderTrendHTML embeds the rendered chart in a preformatted block.
func RenderTrendHTML(result schema.TrendResult, surface contract.ChartSurface) (string, error) {
	chart, err := surface.Render(result)
	if err != nil {
		return "", err
	}
	return "<pre>" + html.EscapeString(chart) + "</pre>", nil
}

// writeTrendCSV writes the series alongside the fitted values.
func writeTrendCSV(w io.Writer, result schema.TrendResult) error {
	header := []string{"date", "score", "question_count", "fitted"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, p := range result.Points {
			record := []string{
				p.Date.Format(contract.DateFormat),
				strconv.Itoa(p.Score),
				strconv.Itoa(p.QuestionCount),
				strconv.FormatFloat(result.Fitted[i], 'f', 2, 64),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeTrendChart renders the chart surface followed by a summary line.
func writeTrendChart(w io.Writer, result schema.TrendResult, surface contract.ChartSurface, duration time.Duration) error {
	chart, err := surface.Render(result)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, chart); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Trend over %d day(s) built in %v\n", len(result.Points), duration); err != nil {
		return err
	}
	return nil
}
