package analytics

import (
	"fashion-visuals/internal/table"
)

// OtherGroup is assigned to brands absent from the mapping.
const OtherGroup = "Other"

// GroupPair is one literal brand → group entry.
type GroupPair struct {
	Brand string `mapstructure:"brand" validate:"required"`
	Group string `mapstructure:"group" validate:"required"`
}

// GroupMap is an immutable brand → group lookup. The zero value maps every
// brand to OtherGroup.
type GroupMap struct {
	groups map[string]string
}

// NewGroupMap copies pairs into a lookup. A later pair for the same brand
// replaces an earlier one.
func NewGroupMap(pairs []GroupPair) GroupMap {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.Brand] = p.Group
	}
	return GroupMap{groups: m}
}

// Lookup returns the group of brand, or OtherGroup.
func (g GroupMap) Lookup(brand string) string {
	if group, ok := g.groups[brand]; ok {
		return group
	}
	return OtherGroup
}

// Targets reports whether group is a mapping target or OtherGroup.
func (g GroupMap) Targets(group string) bool {
	if group == OtherGroup {
		return true
	}
	for _, target := range g.groups {
		if target == group {
			return true
		}
	}
	return false
}

// GroupMean is the average index of one group.
type GroupMean struct {
	Group string
	Mean  table.NullFloat
	Rows  int
}

// AverageByGroup groups the transparency table by mapped brand group and
// averages the index per group.
func AverageByGroup(t *table.Table, groups GroupMap) ([]GroupMean, error) {
	brands, err := t.Strings(ColumnBrand)
	if err != nil {
		return nil, err
	}
	values, err := t.Floats(ColumnTransparency)
	if err != nil {
		return nil, err
	}
	return MeanByGroup(brands, values, groups), nil
}

// MeanByGroup averages values per mapped group. Groups are returned in the
// order they first appear in brands; empty values are left out of the mean.
func MeanByGroup(brands []string, values []table.NullFloat, groups GroupMap) []GroupMean {
	type acc struct {
		sum   float64
		count int
		rows  int
	}

	var order []string
	sums := make(map[string]*acc)
	for i, brand := range brands {
		group := groups.Lookup(brand)
		a, ok := sums[group]
		if !ok {
			a = &acc{}
			sums[group] = a
			order = append(order, group)
		}
		a.rows++
		if i < len(values) && values[i].Valid {
			a.sum += values[i].Float
			a.count++
		}
	}

	out := make([]GroupMean, 0, len(order))
	for _, group := range order {
		a := sums[group]
		mean := table.Null()
		if a.count > 0 {
			mean = table.Some(a.sum / float64(a.count))
		}
		out = append(out, GroupMean{Group: group, Mean: mean, Rows: a.rows})
	}
	return out
}
