package richtext

import (
	"context"
	"fmt"
)

// StyleWriter is implemented by host objects that accept formatting writes.
type StyleWriter interface {
	// SetRangeAttributes writes every concrete attribute over [start, end)
	// and detaches the range from any linked style. The style link
	// identifiers in attrs are ignored.
	SetRangeAttributes(start, end int, attrs Attributes) error

	// SetRangeTextStyleID links [start, end) to a shared text style.
	SetRangeTextStyleID(ctx context.Context, start, end int, id string) error

	// SetRangeFillStyleID links [start, end) to a shared fill style.
	SetRangeFillStyleID(ctx context.Context, start, end int, id string) error
}

// ExtractRanges queries src for every character in [start, end) and returns
// one width-1 range per character, relative to start.
func ExtractRanges(src StyleReader, start, end int) ([]FormattingRange, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("extract [%d:%d): %w", start, end, ErrRangeInvalid)
	}
	out := make([]FormattingRange, 0, end-start)
	for i := start; i < end; i++ {
		attrs, err := src.StyleRange(i, i+1)
		if err != nil {
			return nil, fmt.Errorf("extract character %d: %w", i, err)
		}
		if attrs.Mixed != 0 {
			return nil, fmt.Errorf("character %d (%s): %w", i, attrs.Mixed, ErrMixedCharacter)
		}
		out = append(out, FormattingRange{Start: i - start, End: i - start + 1, Attributes: attrs.Clone()})
	}
	return out, nil
}

// ApplyRanges writes ranges to dst in ascending order. Style link
// identifiers are applied after the concrete attributes of each range, and
// only when non-empty. The list is validated before the first write.
func ApplyRanges(ctx context.Context, dst StyleWriter, ranges []FormattingRange) error {
	if err := checkRanges(ranges); err != nil {
		return err
	}
	for _, r := range ranges {
		if r.Mixed != 0 {
			return fmt.Errorf("apply %v: %w", r, ErrMixedCharacter)
		}
		if err := dst.SetRangeAttributes(r.Start, r.End, r.Attributes); err != nil {
			return fmt.Errorf("apply %v: %w", r, err)
		}
		if r.TextStyleID != "" {
			if err := dst.SetRangeTextStyleID(ctx, r.Start, r.End, r.TextStyleID); err != nil {
				return fmt.Errorf("apply text style %q: %w", r.TextStyleID, err)
			}
		}
		if r.FillStyleID != "" {
			if err := dst.SetRangeFillStyleID(ctx, r.Start, r.End, r.FillStyleID); err != nil {
				return fmt.Errorf("apply fill style %q: %w", r.FillStyleID, err)
			}
		}
	}
	return nil
}
