package core

import (
	"time"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
)

// BuildDayView lays out the last cfg.Days dates as columns and one row per question.
func BuildDayView(store *Store, cfg *contract.Config) schema.DayView {
	dates := DateList(cfg.Today, cfg.Days)
	view := schema.DayView{
		Dates:  dates,
		Months: monthSpans(dates),
	}

	for _, qd := range store.DayRows(DayViewStart(cfg.Today, cfg.Days)) {
		byDate := make(map[time.Time]float64, len(qd.Scores))
		for _, ds := range qd.Scores {
			byDate[ds.Date] = ds.Score
		}

		row := schema.QuestionRow{
			Question: qd.Question,
			Cells:    make([]*float64, len(dates)),
		}
		for i, d := range dates {
			score, ok := byDate[d]
			if !ok {
				continue
			}
			row.Cells[i] = &score
			row.Total += score
			row.Counted++
		}

		row.Normalized, _ = Normalize(row.Total, row.Counted, cfg.ScoreRange, cfg.Scale)
		grade := ClassifyQuestion(row.Normalized, cfg.Scale)
		row.Band, row.Smiley, row.Color = grade.Band, grade.Smiley, grade.Color
		view.Rows = append(view.Rows, row)
	}
	return view
}

// monthSpans counts how many of the dates fall in each month, in date order.
func monthSpans(dates []time.Time) []schema.MonthSpan {
	var spans []schema.MonthSpan
	var last time.Time
	for _, d := range dates {
		if len(spans) > 0 && d.Year() == last.Year() && d.Month() == last.Month() {
			spans[len(spans)-1].Days++
			continue
		}
		spans = append(spans, schema.MonthSpan{Label: d.Format("Jan"), Days: 1})
		last = d
	}
	return spans
}

// BuildMonthView builds one calendar per month from the month boundary onwards.
// It returns contract.ErrEmptyResult when no record falls in that window.
func BuildMonthView(store *Store, cfg *contract.Config) (schema.MonthView, error) {
	rows := store.MonthRows(MonthBoundary(cfg.Today))
	if len(rows) == 0 {
		return schema.MonthView{}, contract.ErrEmptyResult
	}
	calendars, maxScore := BuildCalendars(rows, cfg.ScoreRange, cfg.Scale)
	return schema.MonthView{Calendars: calendars, MaxScore: maxScore}, nil
}

// BuildStatistics averages every stored record by weekday and by question.
func BuildStatistics(store *Store, cfg *contract.Config) schema.Statistics {
	byQuestion, maxLen := store.QuestionStats(cfg.ScoreRange)
	return schema.Statistics{
		Months:         cfg.Months,
		ByWeekday:      store.WeekdayStats(cfg.ScoreRange),
		ByQuestion:     byQuestion,
		MaxQuestionLen: maxLen,
		ScoreMax:       adjustAverage(cfg.ScoreRange.Max, cfg.ScoreRange),
	}
}

// BuildTrend fits a trend line through the normalized month-view series.
// It returns contract.ErrEmptyResult when the series is empty.
func BuildTrend(store *Store, cfg *contract.Config) (schema.TrendResult, error) {
	rows := store.MonthRows(MonthBoundary(cfg.Today))
	if len(rows) == 0 {
		return schema.TrendResult{}, contract.ErrEmptyResult
	}
	return FitTrend(TrendSeries(rows, cfg.ScoreRange, cfg.Scale), cfg.Scale), nil
}

// BuildReport assembles every view. Empty month windows leave MonthView and Trend nil.
func BuildReport(store *Store, cfg *contract.Config) schema.Report {
	report := schema.Report{
		DayView:    BuildDayView(store, cfg),
		Statistics: BuildStatistics(store, cfg),
	}
	if monthView, err := BuildMonthView(store, cfg); err == nil {
		report.MonthView = &monthView
	}
	if trend, err := BuildTrend(store, cfg); err == nil {
		report.Trend = &trend
	}
	return report
}
