package analytics

import (
	"errors"
	"fmt"

	"fashion-visuals/internal/table"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrDegenerateFit is returned when fewer than two distinct x values are
	// available, so no slope can be estimated.
	ErrDegenerateFit = errors.New("degenerate fit: need at least two distinct observations")

	// ErrHorizonNotAfterData is returned when a forecast year does not lie
	// strictly after the last observed year.
	ErrHorizonNotAfterData = errors.New("forecast year is not after the last observed year")
)

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// FitLine fits an ordinary least-squares line through (xs[i], ys[i]).
func FitLine(xs, ys []float64) (Line, error) {
	if len(xs) != len(ys) {
		return Line{}, fmt.Errorf("fit: %d x values but %d y values", len(xs), len(ys))
	}
	distinct := false
	for _, x := range xs[min(1, len(xs)):] {
		if x != xs[0] {
			distinct = true
			break
		}
	}
	if !distinct {
		return Line{}, ErrDegenerateFit
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return Line{Slope: slope, Intercept: intercept}, nil
}

// Point is one (x, y) observation or prediction.
type Point struct {
	X float64
	Y float64
}

// BrandForecast is the observed series of a brand plus its extrapolation.
// When Err is set the fit failed and Predicted is empty.
type BrandForecast struct {
	Brand     Brand
	Observed  []Point
	Line      Line
	Predicted []Point
	Err       error
}

// ForecastBrands fits each brand over its observed (year, value) pairs and
// evaluates the line at every future year. Rows with a missing year or value
// are left out of both the fit and Observed. Per-brand numeric failures are
// reported on BrandForecast.Err; only table lookup failures are returned.
func ForecastBrands(t *table.Table, brands []Brand, future []float64) ([]BrandForecast, error) {
	years, err := t.Floats(ColumnYear)
	if err != nil {
		return nil, err
	}

	out := make([]BrandForecast, 0, len(brands))
	for _, brand := range brands {
		values, err := t.Floats(brand.Column)
		if err != nil {
			return nil, err
		}
		out = append(out, Forecast(brand, years, values, future))
	}
	return out, nil
}

// Forecast fits one series. See ForecastBrands.
func Forecast(brand Brand, years, values []table.NullFloat, future []float64) BrandForecast {
	bf := BrandForecast{Brand: brand}

	xs := make([]float64, 0, len(years))
	ys := make([]float64, 0, len(years))
	for i := range years {
		if i >= len(values) || !years[i].Valid || !values[i].Valid {
			continue
		}
		xs = append(xs, years[i].Float)
		ys = append(ys, values[i].Float)
		bf.Observed = append(bf.Observed, Point{X: years[i].Float, Y: values[i].Float})
	}

	line, err := FitLine(xs, ys)
	if err != nil {
		bf.Err = fmt.Errorf("%s: %w", brand.Name, err)
		return bf
	}

	last := xs[0]
	for _, x := range xs {
		last = max(last, x)
	}
	for _, year := range future {
		if year <= last {
			bf.Err = fmt.Errorf("%s: %w: %v <= %v", brand.Name, ErrHorizonNotAfterData, year, last)
			return bf
		}
	}

	bf.Line = line
	for _, year := range future {
		bf.Predicted = append(bf.Predicted, Point{X: year, Y: line.At(year)})
	}
	return bf
}
