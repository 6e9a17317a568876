package outwriter

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
)

// fullDayNameWidth is the width from which weekday headers use full names.
const fullDayNameWidth = 9

// mondayFirst lists the weekdays in calendar column order.
var mondayFirst = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// RenderMonthTables renders one HTML calendar table per month.
// An empty view renders nothing.
func RenderMonthTables(view schema.MonthView, _ *contract.Config) string {
	if len(view.Calendars) == 0 {
		return ""
	}
	width := cellWidth(view.MaxScore)

	var b strings.Builder
	for _, cal := range view.Calendars {
		writeMonthTable(&b, cal, width)
	}
	return b.String()
}

func writeMonthTable(b *strings.Builder, cal schema.MonthCalendar, width int) {
	_, _ = fmt.Fprintf(b, `<table><tr><th colspan="7" style="text-align: center;" >%s</th></tr>`, cal.Key)

	b.WriteString("<tr>")
	for _, name := range weekHeader(width) {
		_, _ = fmt.Fprintf(b, "<td>%s</td>", name)
	}
	b.WriteString("</tr>")

	b.WriteString("<tr>")
	for i, cell := range cal.Cells {
		if i%7 == 0 && i != 0 {
			b.WriteString("</tr><tr>")
		}
		switch v := cell.Display(); {
		case v > 0:
			_, _ = fmt.Fprintf(b, `<td style="color: %s;">%*d</td>`, cellColor(cell), width, v)
		case v == 0:
			_, _ = fmt.Fprintf(b, "<td>%-*s</td>", width, "-")
		default:
			_, _ = fmt.Fprintf(b, "<td>%-*s</td>", width, " ")
		}
	}
	b.WriteString("</tr></table>")
}

// cellWidth is the number of characters of the largest raw daily sum.
func cellWidth(maxScore float64) int {
	return len(formatNumber(maxScore))
}

func cellColor(cell schema.CalendarCell) string {
	if cell.Color == "" {
		return schema.DefaultColor
	}
	return cell.Color
}

// weekHeader returns the Monday-first weekday names cut and centered to width.
// Widths below nine use the three letter abbreviations as the source names.
func weekHeader(width int) []string {
	names := make([]string, 0, len(mondayFirst))
	for _, wd := range mondayFirst {
		name := wd.String()
		if width < fullDayNameWidth {
			name = name[:3]
		}
		if len(name) > width {
			name = name[:width]
		}
		names = append(names, center(name, width))
	}
	return names
}

// center pads s with spaces on both sides to width. When the padding is odd the
// extra space goes to the left only if width is odd as well.
func center(s string, width int) string {
	margin := width - utf8.RuneCountInString(s)
	if margin <= 0 {
		return s
	}
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", margin-left)
}
