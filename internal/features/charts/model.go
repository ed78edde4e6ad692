// Package charts renders bar and line charts to PNG files.
package charts

import (
	"image/color"

	"fashion-visuals/internal/table"
)

type Marker int

const (
	MarkerNone Marker = iota
	MarkerCircle
	MarkerCross
)

// Point is one sample of a line series. A point whose Y is not valid breaks
// the line into separate segments.
type Point struct {
	X float64
	Y table.NullFloat
}

type Series struct {
	Label  string
	Color  color.Color
	Points []Point
	Dashed bool
	Marker Marker
}

// LineChart is a multi-series line chart over a numeric x axis.
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

// Bar is one category. Bars without a valid value keep their slot and label.
type Bar struct {
	Label string
	Value table.NullFloat
	Color color.Color
}

// BarChart is a categorical bar chart. Horizontal bars are drawn bottom-up,
// so Bars[0] ends up at the bottom of the chart.
type BarChart struct {
	Title      string
	XLabel     string
	YLabel     string
	Bars       []Bar
	Horizontal bool
	Grid       bool
}
