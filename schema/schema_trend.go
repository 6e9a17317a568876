package schema

import "time"

// TrendPoint is one normalized daily score of the month-view series.
type TrendPoint struct {
	Date          time.Time `json:"date"`
	Score         int       `json:"score"`
	QuestionCount int       `json:"question_count"`
}

// TrendResult holds the series, the fitted degree-1 trend and the chart bounds.
type TrendResult struct {
	Points    []TrendPoint `json:"points"`
	Fitted    []float64    `json:"fitted"`
	Slope     float64      `json:"slope"`
	Intercept float64      `json:"intercept"`
	RSquared  float64      `json:"r_squared"`
	YMin      float64      `json:"y_min"`
	YMax      float64      `json:"y_max"`
}
