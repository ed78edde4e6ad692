package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRange(t *testing.T) {
	tests := []struct {
		name        string
		values      []float64
		includeZero bool
		lo, hi      float64
	}{
		{"empty", nil, false, 0, 1},
		{"constant", []float64{5}, false, 4, 6},
		{"bars from zero", []float64{10, 20}, true, 0, 21},
		{"negative bars", []float64{-10, -5}, true, -10.5, 0},
		{"mixed bars", []float64{-10, 10}, true, -11, 11},
		{"line", []float64{100, 200}, false, 95, 205},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := valueRange(tc.values, tc.includeZero)
			assert.InDelta(t, tc.lo, lo, 1e-9)
			assert.InDelta(t, tc.hi, hi, 1e-9)
		})
	}
}

func TestMajorTicks_WithinRange(t *testing.T) {
	ticks := majorTicks(2009.3, 2026.7)
	require.NotEmpty(t, ticks)
	for _, tick := range ticks {
		assert.NotEmpty(t, tick.Label)
		assert.GreaterOrEqual(t, tick.Value, 2009.3)
		assert.LessOrEqual(t, tick.Value, 2026.7)
	}
}

func TestLinear(t *testing.T) {
	s := linear{lo: 0, hi: 10, from: 400, to: 100}
	assert.Equal(t, 400.0, s.at(0))
	assert.Equal(t, 100.0, s.at(10))
	assert.Equal(t, 250.0, s.at(5))
}
