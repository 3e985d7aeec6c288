package scene

import (
	"cmp"
	"slices"
)

// Positioned is anything with a top-left corner.
type Positioned interface {
	X() float64
	Y() float64
}

// CompareReadingPosition orders a before b when it is higher on the page,
// or at exactly the same height and further left.
func CompareReadingPosition(a, b Positioned) int {
	if c := cmp.Compare(a.Y(), b.Y()); c != 0 {
		return c
	}
	return cmp.Compare(a.X(), b.X())
}

// SortByReadingPosition returns nodes sorted top-to-bottom, then
// left-to-right. The sort is stable: nodes at the same position keep their
// input order. The input slice is not modified.
func SortByReadingPosition[N Positioned](nodes []N) []N {
	out := slices.Clone(nodes)
	slices.SortStableFunc(out, func(a, b N) int {
		return CompareReadingPosition(a, b)
	})
	return out
}
