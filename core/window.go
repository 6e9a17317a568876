package core

import "time"

// daysPerLookbackMonth converts the day window into whole months for the cutoff.
const daysPerLookbackMonth = 31

// firstOfMonth returns midnight UTC on the first day of t's month.
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// truncateDay drops the clock part of t.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CutoffDate returns the earliest date retained by the record store: the first day
// of the month that lies max(days/31, lookbackMonths) months before today.
func CutoffDate(today time.Time, days, lookbackMonths int) time.Time {
	lookback := max(days/daysPerLookbackMonth, lookbackMonths)
	first := firstOfMonth(today)
	return time.Date(first.Year(), first.Month()-time.Month(lookback), 1, 0, 0, 0, 0, time.UTC)
}

// DateList returns the days consecutive dates ending yesterday, oldest first.
func DateList(today time.Time, days int) []time.Time {
	end := truncateDay(today).AddDate(0, 0, -1)
	dates := make([]time.Time, days)
	for i := range days {
		dates[i] = end.AddDate(0, 0, i-days+1)
	}
	return dates
}

// MonthBoundary returns the first day of the month before today's month.
func MonthBoundary(today time.Time) time.Time {
	first := firstOfMonth(today)
	return time.Date(first.Year(), first.Month()-1, 1, 0, 0, 0, 0, time.UTC)
}

// DayViewStart returns the earliest date included in the day view query.
func DayViewStart(today time.Time, days int) time.Time {
	return truncateDay(today).AddDate(0, 0, -days)
}
