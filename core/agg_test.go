package core

import (
	"testing"

	"github.com/dailyq/dailyq/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, raw []schema.RawRecord) *Store {
	t.Helper()
	store := NewStore()
	_, kept := store.Ingest(raw, date(2000, 1, 1), false)
	require.Equal(t, len(raw), kept)
	return store
}

func TestDayRows(t *testing.T) {
	store := newTestStore(t, []schema.RawRecord{
		{Date: date(2024, 1, 2), Question: "Did I read?", Score: 1},
		{Date: date(2024, 1, 1), Question: "Did I read?", Score: 0},
		{Date: date(2024, 1, 1), Question: "Did I exercise?", Score: 1},
		{Date: date(2024, 1, 1), Question: "Did I eat well?", Score: 0},
		{Date: date(2024, 1, 2), Question: "Did I read?", Score: 0}, // duplicate, replaces the first
		{Date: date(2023, 12, 1), Question: "Did I set clear goals?", Score: 1},
	})

	rows := store.DayRows(date(2024, 1, 1))
	expected := []schema.QuestionDays{
		{Question: "Did I eat well?", Scores: []schema.DateScore{{Date: date(2024, 1, 1), Score: 0}}},
		{Question: "Did I exercise?", Scores: []schema.DateScore{{Date: date(2024, 1, 1), Score: 1}}},
		{Question: "Did I read?", Scores: []schema.DateScore{
			{Date: date(2024, 1, 1), Score: 0},
			{Date: date(2024, 1, 2), Score: 0},
		}},
	}
	assert.Equal(t, expected, rows)
}

func TestMonthRows(t *testing.T) {
	store := newTestStore(t, []schema.RawRecord{
		{Date: date(2024, 2, 3), Question: "Did I read?", Score: 1},
		{Date: date(2024, 2, 1), Question: "Did I read?", Score: 1},
		{Date: date(2024, 2, 1), Question: "Did I read?", Score: 1},
		{Date: date(2024, 2, 1), Question: "Did I exercise?", Score: 0.5},
		{Date: date(2024, 1, 31), Question: "Did I exercise?", Score: 1},
	})

	rows := store.MonthRows(date(2024, 2, 1))
	expected := []schema.DayAggregate{
		{Date: date(2024, 2, 1), Year: 2024, Month: 2, Day: 1, Score: 2.5, QuestionCount: 2},
		{Date: date(2024, 2, 3), Year: 2024, Month: 2, Day: 3, Score: 1, QuestionCount: 1},
	}
	assert.Equal(t, expected, rows)
	assert.Empty(t, store.MonthRows(date(2024, 3, 1)))
}

func TestWeekdayStats(t *testing.T) {
	raw := []schema.RawRecord{
		{Date: date(2024, 1, 1), Question: "Did I read?", Score: 1},   // Monday
		{Date: date(2024, 1, 8), Question: "Did I read?", Score: 0},   // Monday
		{Date: date(2024, 1, 7), Question: "Did I read?", Score: 0.5}, // Sunday
		{Date: date(2024, 1, 6), Question: "Did I read?", Score: 1},   // Saturday
	}
	store := newTestStore(t, raw)

	t.Run("doubled below ten", func(t *testing.T) {
		stats := store.WeekdayStats(schema.Range{Min: 0, Max: 1})
		expected := []schema.LabeledScore{
			{Label: "Sunday", Score: 1},
			{Label: "Monday", Score: 1},
			{Label: "Saturday", Score: 2},
		}
		assert.Equal(t, expected, stats)
	})

	t.Run("raw average from ten up", func(t *testing.T) {
		stats := store.WeekdayStats(schema.Range{Min: 0, Max: 10})
		require.Len(t, stats, 3)
		assert.Equal(t, 0.5, stats[0].Score)
		assert.Equal(t, 0.5, stats[1].Score)
		assert.Equal(t, 1.0, stats[2].Score)
	})
}

func TestQuestionStats(t *testing.T) {
	store := newTestStore(t, []schema.RawRecord{
		{Date: date(2024, 1, 1), Question: "Did I read?", Score: 1},
		{Date: date(2024, 1, 2), Question: "Did I read?", Score: 0},
		{Date: date(2024, 1, 1), Question: "Did I set clear goals?", Score: 1},
		{Date: date(2024, 1, 1), Question: "Did I rest?", Score: 0},
	})

	stats, maxLen := store.QuestionStats(schema.Range{Min: 0, Max: 1})
	expected := []schema.LabeledScore{
		{Label: "Did I set clear goals?", Score: 2},
		{Label: "Did I read?", Score: 1},
		{Label: "Did I rest?", Score: 0},
	}
	assert.Equal(t, expected, stats)
	assert.Equal(t, 22, maxLen)
}
