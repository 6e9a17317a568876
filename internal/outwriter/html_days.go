package outwriter

import (
	"fmt"
	"html"
	"strings"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
)

const (
	dayTableOpen   = `<table style="font-family:arial,sans-serif;border-collapse:collapse;table-layout: fixed;">`
	dayHeaderOpen  = `<tr style="background-color:#dddddd">`
	evenRowOpen    = `<tr style="background-color:#eeeeee">`
	oddRowOpen     = `<tr>`
	emptyScoreCell = `<td>  </td>`
)

// RenderDayTable renders the day view as an HTML table: a row of month groups,
// a row of day numbers and one row per question with its grade and smiley.
func RenderDayTable(view schema.DayView, cfg *contract.Config) string {
	var b strings.Builder
	b.WriteString(dayTableOpen)
	writeDayColumnGroups(&b, view.Months)
	writeDayMonthHeader(&b, view.Months, cfg.QuestionPrefix)
	writeDayHeader(&b, view, cfg.Scale)
	for i, row := range view.Rows {
		writeQuestionRow(&b, i, row, cfg)
	}
	b.WriteString("</table>")
	return b.String()
}

func writeDayColumnGroups(b *strings.Builder, months []schema.MonthSpan) {
	b.WriteString("<col>")
	for _, m := range months {
		_, _ = fmt.Fprintf(b, `<colgroup span="%d"></colgroup>`, m.Days)
	}
	b.WriteString(`<colgroup span="1"></colgroup>`)
}

// writeDayMonthHeader spans each month label over its days plus the two trailing columns.
func writeDayMonthHeader(b *strings.Builder, months []schema.MonthSpan, prefix string) {
	_, _ = fmt.Fprintf(b, `<tr><td style="text-align: left;" rowspan="2">%s</td>`, html.EscapeString(prefix))
	for _, m := range months {
		_, _ = fmt.Fprintf(b, `<th style="text-align: left" colspan="%d" scope="colgroup">%s</th>`, m.Days+2, m.Label)
	}
	b.WriteString("</tr>")
}

func writeDayHeader(b *strings.Builder, view schema.DayView, scale schema.Range) {
	b.WriteString(dayHeaderOpen)
	for _, d := range view.Dates {
		_, _ = fmt.Fprintf(b, `<th scope="col" style="box-sizing: content-box;">%2d</th>`, d.Day())
	}
	_, _ = fmt.Fprintf(b, `<th scope="col">Grade(%s)</th><th scope="col"></th></tr>`, formatNumber(scale.Max))
}

func writeQuestionRow(b *strings.Builder, index int, row schema.QuestionRow, cfg *contract.Config) {
	if index%2 == 0 {
		b.WriteString(evenRowOpen)
	} else {
		b.WriteString(oddRowOpen)
	}
	_, _ = fmt.Fprintf(b, `<th scope="row" style="text-align: right">%s</th>`, html.EscapeString(row.Question))

	for _, cell := range row.Cells {
		if cell == nil {
			b.WriteString(emptyScoreCell)
			continue
		}
		_, _ = fmt.Fprintf(b, `<td style="color: %s;"><p>%s</p></td>`, scoreColor(*cell, cfg.ScoreRange), formatDayScore(*cell, cfg.OnlyDecimals))
	}
	_, _ = fmt.Fprintf(b, `<td style="color: %s;">%3d</td><td>%-3s</td></tr>`, row.Color, row.Normalized, row.Smiley)
}

// formatDayScore pads a score to two characters. Numbers align right and the
// fraction-only form aligns left.
func formatDayScore(score float64, onlyDecimals bool) string {
	if onlyDecimals {
		if s, ok := formatDecimals(score); ok {
			return fmt.Sprintf("%-2s", s)
		}
	}
	return fmt.Sprintf("%2s", formatNumber(score))
}

// scoreColor highlights the bottom of the score range.
func scoreColor(score float64, scoreRange schema.Range) string {
	if score == scoreRange.Min {
		return schema.WarningColor
	}
	return schema.DefaultColor
}
