package analytics

import (
	"sort"

	"fashion-visuals/internal/table"
)

// BehaviorChange is the difference between the two snapshots of a behavior.
type BehaviorChange struct {
	Behavior string
	Change   table.NullFloat
}

// RankChanges computes after − before per behavior row and sorts ascending.
func RankChanges(t *table.Table) ([]BehaviorChange, error) {
	labels, err := t.Strings(ColumnBehavior)
	if err != nil {
		return nil, err
	}
	before, err := t.Floats(ColumnBefore)
	if err != nil {
		return nil, err
	}
	after, err := t.Floats(ColumnAfter)
	if err != nil {
		return nil, err
	}
	return Rank(labels, before, after), nil
}

// Rank sorts rows ascending by change. Ties keep row order; rows missing a
// snapshot have a Null change and go last.
func Rank(labels []string, before, after []table.NullFloat) []BehaviorChange {
	out := make([]BehaviorChange, len(labels))
	for i, label := range labels {
		out[i] = BehaviorChange{Behavior: label}
		if i < len(before) && i < len(after) && before[i].Valid && after[i].Valid {
			out[i].Change = table.Some(after[i].Float - before[i].Float)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Change, out[j].Change
		if !a.Valid || !b.Valid {
			return a.Valid && !b.Valid
		}
		return a.Float < b.Float
	})
	return out
}
