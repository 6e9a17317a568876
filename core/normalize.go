package core

import "github.com/dailyq/dailyq/schema"

// Normalize maps total, the sum of count scores drawn from scoreRange, onto the
// display scale. The result is truncated toward zero.
// It returns false when count is zero or the range is degenerate; callers treat
// that as a zero score.
func Normalize(total float64, count int, scoreRange, scale schema.Range) (int, bool) {
	lower := float64(count) * scoreRange.Min
	upper := float64(count) * scoreRange.Max
	if count <= 0 || upper == lower {
		return 0, false
	}
	return int((total - lower) * scale.Span() / (upper - lower)), true
}
