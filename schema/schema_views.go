package schema

import "time"

// CalendarCells is the number of cells in a flattened month grid (6 weeks x 7 days).
const CalendarCells = 42

// OutsideMonth marks a calendar cell that does not belong to the month.
const OutsideMonth = -1.0

// QuestionDays holds the scored dates for one question in the day view.
type QuestionDays struct {
	Question string      `json:"question"`
	Scores   []DateScore `json:"scores"`
}

// QuestionRow is one rendered row of the day view.
type QuestionRow struct {
	Question   string     `json:"question"`
	Cells      []*float64 `json:"cells"`   // One per date in DayView.Dates; nil means no score
	Total      float64    `json:"total"`   // Sum of the shown scores
	Counted    int        `json:"counted"` // Number of dates that had a score
	Normalized int        `json:"normalized"`
	Band       Band       `json:"band"`
	Smiley     string     `json:"smiley"`
	Color      string     `json:"color"`
}

// MonthSpan groups consecutive dates of the day view under one month label.
type MonthSpan struct {
	Label string `json:"label"` // Abbreviated month name
	Days  int    `json:"days"`
}

// DayView is the rolling day-by-day grid.
type DayView struct {
	Dates  []time.Time   `json:"dates"`
	Months []MonthSpan   `json:"months"`
	Rows   []QuestionRow `json:"rows"`
}

// DayAggregate is one month-view query row: all scores of a calendar date summed.
type DayAggregate struct {
	Date          time.Time  `json:"date"`
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	Day           int        `json:"day"`
	Score         float64    `json:"score"`
	QuestionCount int        `json:"question_count"`
}

// CalendarCell is one cell of a flattened month grid.
// Score is OutsideMonth for cells outside the month.
type CalendarCell struct {
	Score         float64 `json:"score"` // Raw summed score
	QuestionCount int     `json:"question_count"`
	Normalized    int     `json:"normalized"` // Only meaningful when QuestionCount > 0
	Band          Band    `json:"band,omitempty"`
	Color         string  `json:"color,omitempty"`
}

// Display returns the value shown for the cell: the normalized score when the
// day has answers, otherwise the raw score (0 for an empty day, OutsideMonth
// for a padding cell).
func (c CalendarCell) Display() int {
	if c.QuestionCount > 0 {
		return c.Normalized
	}
	return int(c.Score)
}

// InMonth reports whether the cell belongs to the month.
func (c CalendarCell) InMonth() bool {
	return c.Score != OutsideMonth
}

// MonthCalendar is the 42-cell grid for one month.
type MonthCalendar struct {
	Year  int                         `json:"year"`
	Month time.Month                  `json:"month"`
	Key   string                      `json:"key"` // "January 2024"
	Delta int                         `json:"delta"`
	Cells [CalendarCells]CalendarCell `json:"cells"`
}

// MonthView is the multi-month calendar heat-map.
type MonthView struct {
	Calendars []MonthCalendar `json:"calendars"`
	MaxScore  float64         `json:"max_score"` // Largest raw summed score across all days
}

// LabeledScore is one averaged statistic row.
type LabeledScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Statistics holds the weekday and question averages.
type Statistics struct {
	Months         int            `json:"months"`
	ByWeekday      []LabeledScore `json:"by_weekday"`
	ByQuestion     []LabeledScore `json:"by_question"`
	MaxQuestionLen int            `json:"max_question_len"`
	ScoreMax       float64        `json:"score_max"` // Largest possible displayed average
}

// Report bundles every view for the combined report.
// MonthView and Trend are nil when the month window has no records.
type Report struct {
	DayView    DayView      `json:"day_view"`
	MonthView  *MonthView   `json:"month_view,omitempty"`
	Statistics Statistics   `json:"statistics"`
	Trend      *TrendResult `json:"trend,omitempty"`
}
