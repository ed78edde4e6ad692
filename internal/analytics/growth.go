package analytics

import (
	"fashion-visuals/internal/table"
)

// GrowthSeries is the period-over-period change of one brand, aligned with
// Growth.Years.
type GrowthSeries struct {
	Brand  Brand
	Values []table.NullFloat
}

type Growth struct {
	Years  []table.NullFloat
	Series []GrowthSeries
}

// PercentChange returns (v[i]-v[i-1])/v[i-1]*100. The first element, and any
// element whose current or prior value is missing or whose prior value is
// zero, is Null.
func PercentChange(values []table.NullFloat) []table.NullFloat {
	out := make([]table.NullFloat, len(values))
	for i := 1; i < len(values); i++ {
		prev, cur := values[i-1], values[i]
		if !prev.Valid || !cur.Valid || prev.Float == 0 {
			continue
		}
		out[i] = table.Some((cur.Float - prev.Float) / prev.Float * 100)
	}
	return out
}

// BrandGrowth computes PercentChange for every listed brand column.
func BrandGrowth(t *table.Table, brands []Brand) (*Growth, error) {
	years, err := t.Floats(ColumnYear)
	if err != nil {
		return nil, err
	}

	g := &Growth{Years: years}
	for _, brand := range brands {
		values, err := t.Floats(brand.Column)
		if err != nil {
			return nil, err
		}
		g.Series = append(g.Series, GrowthSeries{
			Brand:  brand,
			Values: PercentChange(values),
		})
	}
	return g, nil
}
