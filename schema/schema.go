// Package schema has configs, models and global variables for all parts of dailyq.
package schema

import "time"

// RawRecord is one parsed log row before the retention window is applied.
type RawRecord struct {
	Date     time.Time // Calendar date at day precision (UTC midnight)
	Question string    // Trimmed question text
	Score    float64   // Numeric self-score
}

// Record represents one (date, question, score) observation held by the record store.
// Year, Month and Day are derived from Date and kept for grouping convenience.
type Record struct {
	Date     time.Time
	Year     int
	Month    time.Month
	Day      int
	Question string // Possibly censored at ingestion
	Score    float64
}

// IngestSummary reports how many rows were read and how many survived the cutoff.
type IngestSummary struct {
	Seen   int       `json:"seen"`
	Kept   int       `json:"kept"`
	Cutoff time.Time `json:"cutoff"`
}

// DateScore is a single scored date for a question.
type DateScore struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// Range is an inclusive (Min, Max) numeric interval such as the raw score range
// or the display scale.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}
