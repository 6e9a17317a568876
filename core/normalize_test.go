package core

import (
	"testing"

	"github.com/dailyq/dailyq/schema"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	unit := schema.Range{Min: 0, Max: 1}
	ten := schema.Range{Min: 1, Max: 10}
	scale := schema.Range{Min: 0, Max: 100}

	tests := []struct {
		name       string
		total      float64
		count      int
		scoreRange schema.Range
		expected   int
		ok         bool
	}{
		{"half of two", 1, 2, unit, 50, true},
		{"all good", 3, 3, unit, 100, true},
		{"all bad", 0, 3, unit, 0, true},
		{"truncates toward zero", 2, 3, unit, 66, true},
		{"offset range", 15, 2, ten, 72, true},
		{"no contributing items", 0, 0, unit, 0, false},
		{"degenerate range", 2, 2, schema.Range{Min: 1, Max: 1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.total, tt.count, tt.scoreRange, scale)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNormalizeEndpoints(t *testing.T) {
	scale := schema.Range{Min: 0, Max: 100}
	ranges := []schema.Range{{Min: 0, Max: 1}, {Min: 1, Max: 5}, {Min: 0, Max: 10}, {Min: -1, Max: 1}}

	for _, r := range ranges {
		for count := 1; count <= 31; count++ {
			lo, ok := Normalize(float64(count)*r.Min, count, r, scale)
			assert.True(t, ok)
			assert.Equal(t, 0, lo, "range %v count %d", r, count)

			hi, _ := Normalize(float64(count)*r.Max, count, r, scale)
			assert.Equal(t, 100, hi, "range %v count %d", r, count)
		}
	}
}

func TestNormalizeMonotonic(t *testing.T) {
	r := schema.Range{Min: 0, Max: 5}
	scale := schema.Range{Min: 0, Max: 100}
	const count = 7

	prev := -1
	for total := 0.0; total <= count*r.Max; total += 0.25 {
		got, _ := Normalize(total, count, r, scale)
		assert.GreaterOrEqual(t, got, prev, "total %g", total)
		prev = got
	}
}
