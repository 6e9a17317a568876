package core

import (
	"fmt"
	"time"

	"github.com/dailyq/dailyq/schema"
)

// daysInMonth returns the number of days of the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// leadingBlanks counts the cells of the first Monday-based week that belong to
// the previous month.
func leadingBlanks(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return (int(first.Weekday()) + 6) % 7
}

// NewMonthCalendar returns the flattened grid of a month. Cells outside the month
// hold the OutsideMonth sentinel and in-month cells start at zero.
func NewMonthCalendar(year int, month time.Month) schema.MonthCalendar {
	leading := leadingBlanks(year, month)
	days := daysInMonth(year, month)

	cal := schema.MonthCalendar{
		Year:  year,
		Month: month,
		Key:   fmt.Sprintf("%s %d", month, year),
		Delta: leading - 1,
	}
	for i := range cal.Cells {
		if i < leading || i >= leading+days {
			cal.Cells[i] = schema.CalendarCell{Score: schema.OutsideMonth}
		}
	}
	return cal
}

// CellIndex returns the flat index of day within the calendar.
func CellIndex(cal schema.MonthCalendar, day int) int {
	return day + cal.Delta
}

// BuildCalendars merges the month-view rows, which must ascend by date, into one
// calendar per month. It also returns the largest raw summed score seen.
func BuildCalendars(rows []schema.DayAggregate, scoreRange, scale schema.Range) ([]schema.MonthCalendar, float64) {
	var (
		calendars []schema.MonthCalendar
		current   *schema.MonthCalendar
		maxScore  float64
	)
	for _, row := range rows {
		if current == nil || current.Year != row.Year || current.Month != row.Month {
			if current != nil {
				calendars = append(calendars, *current)
			}
			cal := NewMonthCalendar(row.Year, row.Month)
			current = &cal
		}

		cell := schema.CalendarCell{Score: row.Score, QuestionCount: row.QuestionCount}
		if normalized, ok := Normalize(row.Score, row.QuestionCount, scoreRange, scale); ok {
			cell.Normalized = normalized
			cell.Band, cell.Color = ClassifyDay(normalized, scale)
		}
		current.Cells[CellIndex(*current, row.Day)] = cell
		maxScore = max(maxScore, row.Score)
	}
	if current != nil {
		calendars = append(calendars, *current)
	}
	return calendars, maxScore
}
