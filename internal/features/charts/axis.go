package charts

import (
	"math"

	"gonum.org/v1/plot"
)

// valueRange returns an axis range covering values with 5% headroom. With
// includeZero the range always contains 0 and is not padded past it.
func valueRange(values []float64, includeZero bool) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 1
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if includeZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	if lo == hi {
		return lo - 1, hi + 1
	}

	pad := (hi - lo) * 0.05
	if !(includeZero && lo == 0) {
		lo -= pad
	}
	if !(includeZero && hi == 0) {
		hi += pad
	}
	return lo, hi
}

// majorTicks returns the labelled ticks gonum/plot would place on [lo, hi].
func majorTicks(lo, hi float64) []plot.Tick {
	var ticks []plot.Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if t.Label == "" || t.Value < lo || t.Value > hi {
			continue
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// linear maps [lo, hi] onto the pixel span [from, to].
type linear struct {
	lo, hi   float64
	from, to float64
}

func (s linear) at(v float64) float64 {
	return s.from + (v-s.lo)/(s.hi-s.lo)*(s.to-s.from)
}
