package core

import (
	"math"

	"github.com/dailyq/dailyq/schema"
	"gonum.org/v1/gonum/stat"
)

// trendHeadroom stretches the y axis above the top of the scale.
const trendHeadroom = 1.1

// TrendSeries normalizes each month-view row. Days without answers keep their
// raw score.
func TrendSeries(rows []schema.DayAggregate, scoreRange, scale schema.Range) []schema.TrendPoint {
	points := make([]schema.TrendPoint, 0, len(rows))
	for _, row := range rows {
		score, ok := Normalize(row.Score, row.QuestionCount, scoreRange, scale)
		if !ok {
			score = int(row.Score)
		}
		points = append(points, schema.TrendPoint{
			Date:          row.Date,
			Score:         score,
			QuestionCount: row.QuestionCount,
		})
	}
	return points
}

// FitTrend fits a straight line to the series over the indexes 0..n-1.
// A series with fewer than two points gets a flat line through its only value.
func FitTrend(points []schema.TrendPoint, scale schema.Range) schema.TrendResult {
	result := schema.TrendResult{
		Points: points,
		Fitted: make([]float64, len(points)),
		YMin:   scale.Min,
		YMax:   scale.Max * trendHeadroom,
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = float64(p.Score)
	}

	switch len(points) {
	case 0:
		return result
	case 1:
		result.Intercept = ys[0]
	default:
		result.Intercept, result.Slope = stat.LinearRegression(xs, ys, nil, false)
		if r2 := stat.RSquared(xs, ys, nil, result.Intercept, result.Slope); !math.IsNaN(r2) && !math.IsInf(r2, 0) {
			result.RSquared = r2
		}
	}

	for i, x := range xs {
		result.Fitted[i] = result.Intercept + result.Slope*x
	}
	return result
}
