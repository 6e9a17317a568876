// Package reader turns the pipe-delimited question log into raw records.
//
// Each row carries three fields: YYYY/MM/DD|question text|numeric score.
// File input is tolerant and skips rows that cannot be parsed; text input is
// strict and fails on the first malformed row.
package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dailyq/dailyq/internal/contract"
	"github.com/dailyq/dailyq/schema"
)

// fieldCount is the number of fields in a well-formed row.
const fieldCount = 3

// parseLayout accepts both padded and unpadded month and day numbers.
const parseLayout = "2006/1/2"

// Reader parses log rows. Scores outside the configured range are kept and
// reported at DEBUG.
type Reader struct {
	ScoreRange schema.Range
}

// New returns a Reader for the given raw score range.
func New(scoreRange schema.Range) *Reader {
	return &Reader{ScoreRange: scoreRange}
}

// ReadFile reads the log at path. Rows that are malformed are skipped.
func (rd *Reader) ReadFile(path string) ([]schema.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return rd.Read(file)
}

// Read parses pipe-delimited rows from r, skipping malformed ones.
func (rd *Reader) Read(r io.Reader) ([]schema.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = '|'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var records []schema.RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				slog.Debug("skipping unreadable row", "line", csvErr.Line, "err", csvErr.Err)
				continue
			}
			return nil, fmt.Errorf("failed to read log: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if len(row) != fieldCount {
			slog.Debug("skipping row", "line", line, "fields", len(row))
			continue
		}
		rec, err := rd.ParseRow(row, line)
		if err != nil {
			slog.Debug("skipping row", "line", line, "err", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadText parses a literal log. Blank lines are ignored; any other malformed
// line aborts with a *contract.ParseError.
func (rd *Reader) ReadText(text string) ([]schema.RawRecord, error) {
	var records []schema.RawRecord
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := strings.Split(line, "|")
		if len(row) != fieldCount {
			return nil, &contract.ParseError{
				Line:   i + 1,
				Row:    line,
				Reason: fmt.Sprintf("expected %d fields, found %d", fieldCount, len(row)),
			}
		}
		rec, err := rd.ParseRow(row, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseRow converts the three fields of a row into a RawRecord.
func (rd *Reader) ParseRow(row []string, line int) (schema.RawRecord, error) {
	raw := strings.Join(row, "|")

	date, err := time.Parse(parseLayout, strings.TrimSpace(row[0]))
	if err != nil {
		return schema.RawRecord{}, &contract.ParseError{Line: line, Row: raw, Reason: "invalid date", Err: err}
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return schema.RawRecord{}, &contract.ParseError{Line: line, Row: raw, Reason: "invalid score", Err: err}
	}
	if score < rd.ScoreRange.Min || score > rd.ScoreRange.Max {
		slog.Debug("score outside range", "line", line, "score", score, "min", rd.ScoreRange.Min, "max", rd.ScoreRange.Max)
	}

	return schema.RawRecord{
		Date:     date,
		Question: strings.TrimSpace(row[1]),
		Score:    score,
	}, nil
}
