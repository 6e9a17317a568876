package core

import (
	"time"

	"github.com/dailyq/dailyq/schema"
)

// Store holds the records that survived the retention cutoff.
// It is rebuilt on every load and is owned by a single caller.
type Store struct {
	records []schema.Record
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Ingest stores every raw record dated on or after cutoff and returns how many
// records were seen and kept. With censor set the question text is masked
// before storage.
func (s *Store) Ingest(raw []schema.RawRecord, cutoff time.Time, censor bool) (seen, kept int) {
	for _, r := range raw {
		seen++
		date := truncateDay(r.Date)
		if date.Before(cutoff) {
			continue
		}
		question := r.Question
		if censor {
			question = Censor(question)
		}
		s.records = append(s.records, schema.Record{
			Date:     date,
			Year:     date.Year(),
			Month:    date.Month(),
			Day:      date.Day(),
			Question: question,
			Score:    r.Score,
		})
		kept++
	}
	return seen, kept
}

// Records returns the stored records in ingestion order.
func (s *Store) Records() []schema.Record {
	return s.records
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Censor replaces every third character of text, starting with the first, with
// the mask character.
func Censor(text string) string {
	runes := []rune(text)
	for i := range runes {
		if i%3 == 0 {
			runes[i] = schema.CensorMask
		}
	}
	return string(runes)
}
