package richtext

import "fmt"

// FormattingRange is a half-open rune interval [Start, End) with the
// attributes of every character it covers.
type FormattingRange struct {
	Start int
	End   int
	Attributes
}

// String returns a human-readable representation of the range.
func (r FormattingRange) String() string {
	return fmt.Sprintf("[%d:%d) %s", r.Start, r.End, r.Attributes)
}

// Len returns the number of characters covered.
func (r FormattingRange) Len() int {
	return r.End - r.Start
}

// IsValid returns true if the range covers at least one character at a
// non-negative offset.
func (r FormattingRange) IsValid() bool {
	return r.Start >= 0 && r.Start < r.End
}

// Contains returns true if the given offset is within the range.
func (r FormattingRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Shift returns a copy of the range moved by delta.
func (r FormattingRange) Shift(delta int) FormattingRange {
	r.Start += delta
	r.End += delta
	return r
}

// TranslateOffset returns a new range list with every range shifted by
// delta. Ranges whose shifted end is not past zero, or whose width is not
// positive, are dropped. Surviving ranges are never clipped.
func TranslateOffset(ranges []FormattingRange, delta int) []FormattingRange {
	out := make([]FormattingRange, 0, len(ranges))
	for _, r := range ranges {
		s := r.Shift(delta)
		if s.End <= 0 || s.End <= s.Start {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Coalesce merges adjacent ranges with identical attributes into wider runs.
// The input must be sorted by Start and non-overlapping.
func Coalesce(ranges []FormattingRange) []FormattingRange {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]FormattingRange, 0, len(ranges))
	cur := ranges[0]
	for _, r := range ranges[1:] {
		if r.Start == cur.End && r.Attributes.Equal(cur.Attributes) {
			cur.End = r.End
			continue
		}
		out = append(out, cur)
		cur = r
	}
	return append(out, cur)
}

// Expand splits every range into width-1 ranges.
func Expand(ranges []FormattingRange) []FormattingRange {
	n := 0
	for _, r := range ranges {
		if r.IsValid() {
			n += r.Len()
		}
	}
	out := make([]FormattingRange, 0, n)
	for _, r := range ranges {
		for i := r.Start; i < r.End; i++ {
			out = append(out, FormattingRange{Start: i, End: i + 1, Attributes: r.Attributes.Clone()})
		}
	}
	return out
}

// checkRanges verifies ranges are valid, sorted and disjoint.
func checkRanges(ranges []FormattingRange) error {
	prevEnd := 0
	for i, r := range ranges {
		if !r.IsValid() {
			return fmt.Errorf("range %d %v: %w", i, r, ErrRangeInvalid)
		}
		if r.Start < prevEnd {
			return fmt.Errorf("range %d %v: %w", i, r, ErrRangesOverlap)
		}
		prevEnd = r.End
	}
	return nil
}
