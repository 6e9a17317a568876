package core

import (
	"testing"
	"time"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(today time.Time) *contract.Config {
	return &contract.Config{
		Today:          today,
		Days:           2,
		Months:         2,
		LookbackMonths: 1,
		ScoreRange:     schema.Range{Min: 0, Max: 1},
		Scale:          schema.Range{Min: 0, Max: 100},
		QuestionPrefix: schema.DefaultQuestionPrefix,
		Multiplier:     schema.DefaultMultiplier,
		Output:         schema.HTMLOut,
	}
}

func TestBuildDayViewRoundTrip(t *testing.T) {
	cfg := testConfig(date(2024, 1, 3))
	store := newTestStore(t, []schema.RawRecord{
		{Date: date(2024, 1, 1), Question: "Did I exercise?", Score: 1},
		{Date: date(2024, 1, 2), Question: "Did I exercise?", Score: 0},
	})

	view := BuildDayView(store, cfg)

	assert.Equal(t, []time.Time{date(2024, 1, 1), date(2024, 1, 2)}, view.Dates)
	assert.Equal(t, []schema.MonthSpan{{Label: "Jan", Days: 2}}, view.Months)
	require.Len(t, view.Rows, 1)

	row := view.Rows[0]
	assert.Equal(t, "Did I exercise?", row.Question)
	require.Len(t, row.Cells, 2)
	require.NotNil(t, row.Cells[0])
	require.NotNil(t, row.Cells[1])
	assert.Equal(t, 1.0, *row.Cells[0])
	assert.Equal(t, 0.0, *row.Cells[1])
	assert.Equal(t, 1.0, row.Total)
	assert.Equal(t, 2, row.Counted)
	assert.Equal(t, 50, row.Normalized)
	assert.Equal(t, schema.NeutralSmiley, row.Smiley)
	assert.Equal(t, schema.NeutralBand, row.Band)
	assert.Equal(t, schema.DefaultColor, row.Color)
}

func TestBuildDayViewGapsAndMonths(t *testing.T) {
	cfg := testConfig(date(2024, 3, 3))
	cfg.Days = 4
	store := newTestStore(t, []schema.RawRecord{
		{Date: date(2024, 2, 28), Question: "Did I read?", Score: 1},
		{Date: date(2024, 3, 2), Question: "Did I read?", Score: 1},
		{Date: date(2024, 3, 3), Question: "Did I rest?", Score: 1}, // today, outside the date list
	})

	view := BuildDayView(store, cfg)

	assert.Equal(t, []schema.MonthSpan{{Label: "Feb", Days: 2}, {Label: "Mar", Days: 2}}, view.Months)
	require.Len(t, view.Rows, 2)

	read := view.Rows[0]
	assert.NotNil(t, read.Cells[0])
	assert.Nil(t, read.Cells[1])
	assert.Nil(t, read.Cells[2])
	assert.NotNil(t, read.Cells[3])
	assert.Equal(t, 100, read.Normalized)
	assert.Equal(t, schema.GoodSmiley, read.Smiley)

	rest := view.Rows[1]
	assert.Equal(t, 0, rest.Counted)
	assert.Equal(t, 0, rest.Normalized)
	assert.Equal(t, schema.BadSmiley, rest.Smiley)
}

func TestBuildMonthView(t *testing.T) {
	cfg := testConfig(date(2024, 3, 15))

	t.Run("empty window", func(t *testing.T) {
		store := newTestStore(t, []schema.RawRecord{{Date: date(2024, 1, 31), Question: "Did I read?", Score: 1}})
		_, err := BuildMonthView(store, cfg)
		assert.ErrorIs(t, err, contract.ErrEmptyResult)
		_, err = BuildTrend(store, cfg)
		assert.ErrorIs(t, err, contract.ErrEmptyResult)
	})

	t.Run("previous and current month", func(t *testing.T) {
		store := newTestStore(t, []schema.RawRecord{
			{Date: date(2024, 1, 31), Question: "Did I read?", Score: 1},
			{Date: date(2024, 2, 1), Question: "Did I read?", Score: 1},
			{Date: date(2024, 3, 1), Question: "Did I read?", Score: 0},
		})
		view, err := BuildMonthView(store, cfg)
		require.NoError(t, err)
		require.Len(t, view.Calendars, 2)
		assert.Equal(t, "February 2024", view.Calendars[0].Key)
		assert.Equal(t, "March 2024", view.Calendars[1].Key)
		assert.Equal(t, 1.0, view.MaxScore)
	})
}

func TestBuildStatistics(t *testing.T) {
	cfg := testConfig(date(2024, 3, 15))
	store := newTestStore(t, []schema.RawRecord{
		{Date: date(2024, 3, 4), Question: "Did I read?", Score: 1},
		{Date: date(2024, 3, 5), Question: "Did I read?", Score: 0},
	})

	stats := BuildStatistics(store, cfg)
	assert.Equal(t, 2, stats.Months)
	assert.Equal(t, 2.0, stats.ScoreMax)
	assert.Equal(t, []schema.LabeledScore{{Label: "Monday", Score: 2}, {Label: "Tuesday", Score: 0}}, stats.ByWeekday)
	assert.Equal(t, []schema.LabeledScore{{Label: "Did I read?", Score: 1}}, stats.ByQuestion)
	assert.Equal(t, 11, stats.MaxQuestionLen)
}

func TestBuildReport(t *testing.T) {
	cfg := testConfig(date(2024, 3, 15))

	empty := BuildReport(NewStore(), cfg)
	assert.Nil(t, empty.MonthView)
	assert.Nil(t, empty.Trend)
	assert.Len(t, empty.DayView.Dates, 2)

	store := newTestStore(t, []schema.RawRecord{{Date: date(2024, 3, 14), Question: "Did I read?", Score: 1}})
	report := BuildReport(store, cfg)
	require.NotNil(t, report.MonthView)
	require.NotNil(t, report.Trend)
	assert.Len(t, report.DayView.Rows, 1)
	assert.Equal(t, []float64{100}, report.Trend.Fitted)
}
