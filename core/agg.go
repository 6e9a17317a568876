package core

import (
	"cmp"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/dailyq/dailyq/schema"
)

// doublingThreshold is the score range upper bound below which averages are doubled.
const doublingThreshold = 10

// dayKey identifies one (question, date) group of the day view.
type dayKey struct {
	question string
	date     time.Time
}

// compareQuestions orders longer questions first and breaks ties alphabetically.
func compareQuestions(a, b string) int {
	if c := cmp.Compare(utf8.RuneCountInString(b), utf8.RuneCountInString(a)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

// DayRows groups records dated on or after since by (question, date).
// A later record for the same pair replaces an earlier one. Questions are ordered
// by text length, longest first, and dates ascend within a question.
func (s *Store) DayRows(since time.Time) []schema.QuestionDays {
	latest := make(map[dayKey]float64)
	for _, r := range s.records {
		if r.Date.Before(since) {
			continue
		}
		latest[dayKey{question: r.Question, date: r.Date}] = r.Score
	}

	keys := make([]dayKey, 0, len(latest))
	for k := range latest {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b dayKey) int {
		if c := compareQuestions(a.question, b.question); c != 0 {
			return c
		}
		return a.date.Compare(b.date)
	})

	grouped := NewOrderedMap[string, []schema.DateScore]()
	for _, k := range keys {
		scores := grouped.GetOrInsert(k.question, nil)
		grouped.Set(k.question, append(scores, schema.DateScore{Date: k.date, Score: latest[k]}))
	}

	rows := make([]schema.QuestionDays, 0, grouped.Len())
	for _, q := range grouped.Keys() {
		scores, _ := grouped.Get(q)
		rows = append(rows, schema.QuestionDays{Question: q, Scores: scores})
	}
	return rows
}

// MonthRows sums the scores of every date on or after since and counts the
// distinct questions answered that day. Rows ascend by date.
func (s *Store) MonthRows(since time.Time) []schema.DayAggregate {
	byDate := make(map[time.Time]*schema.DayAggregate)
	questions := make(map[time.Time]map[string]struct{})
	for _, r := range s.records {
		if r.Date.Before(since) {
			continue
		}
		agg, ok := byDate[r.Date]
		if !ok {
			agg = &schema.DayAggregate{Date: r.Date, Year: r.Year, Month: r.Month, Day: r.Day}
			byDate[r.Date] = agg
			questions[r.Date] = make(map[string]struct{})
		}
		agg.Score += r.Score
		questions[r.Date][r.Question] = struct{}{}
	}

	rows := make([]schema.DayAggregate, 0, len(byDate))
	for date, agg := range byDate {
		agg.QuestionCount = len(questions[date])
		rows = append(rows, *agg)
	}
	slices.SortFunc(rows, func(a, b schema.DayAggregate) int {
		return a.Date.Compare(b.Date)
	})
	return rows
}

// adjustAverage doubles avg when the score range tops out below ten.
func adjustAverage(avg float64, scoreRange schema.Range) float64 {
	if scoreRange.Max < doublingThreshold {
		return avg * 2
	}
	return avg
}

// WeekdayStats averages the scores of each weekday that has records, Sunday first.
func (s *Store) WeekdayStats(scoreRange schema.Range) []schema.LabeledScore {
	var sums [7]float64
	var counts [7]int
	for _, r := range s.records {
		wd := r.Date.Weekday()
		sums[wd] += r.Score
		counts[wd]++
	}

	var stats []schema.LabeledScore
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] == 0 {
			continue
		}
		avg := sums[wd] / float64(counts[wd])
		stats = append(stats, schema.LabeledScore{Label: wd.String(), Score: adjustAverage(avg, scoreRange)})
	}
	return stats
}

// QuestionStats averages the scores of each question, longest question first,
// and returns the length of the longest question.
func (s *Store) QuestionStats(scoreRange schema.Range) ([]schema.LabeledScore, int) {
	sums := NewOrderedMap[string, float64]()
	counts := make(map[string]int)
	maxLen := 0
	for _, r := range s.records {
		sums.Set(r.Question, sums.GetOrInsert(r.Question, 0)+r.Score)
		counts[r.Question]++
		maxLen = max(maxLen, utf8.RuneCountInString(r.Question))
	}

	questions := slices.Clone(sums.Keys())
	slices.SortFunc(questions, compareQuestions)

	stats := make([]schema.LabeledScore, 0, len(questions))
	for _, q := range questions {
		sum, _ := sums.Get(q)
		avg := sum / float64(counts[q])
		stats = append(stats, schema.LabeledScore{Label: q, Score: adjustAverage(avg, scoreRange)})
	}
	return stats, maxLen
}
