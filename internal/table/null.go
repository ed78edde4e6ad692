package table

import "strconv"

// NullFloat is a number that may be absent. Empty cells, undefined growth
// and groups without values are carried as Valid == false.
type NullFloat struct {
	Float float64
	Valid bool
}

func Some(v float64) NullFloat {
	return NullFloat{Float: v, Valid: true}
}

func Null() NullFloat {
	return NullFloat{}
}

func (n NullFloat) String() string {
	if !n.Valid {
		return "null"
	}
	return strconv.FormatFloat(n.Float, 'f', -1, 64)
}
