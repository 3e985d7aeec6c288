package richtext

import (
	"fmt"
	"unicode/utf8"
)

// StyleReader is implemented by host objects whose characters can be read
// along with their per-character formatting.
type StyleReader interface {
	// Characters returns the full text of the object.
	Characters() string

	// StyleRange returns the attributes of [start, end). Fields that vary
	// across the span are flagged in Attributes.Mixed.
	StyleRange(start, end int) (Attributes, error)
}

// Buffer is a text with its formatting ranges. The ranges are sorted by
// Start, do not overlap and are relative to the start of Text.
type Buffer struct {
	Text   string
	Ranges []FormattingRange
}

// Fragment is a Buffer carved out of a larger one by segmentation.
type Fragment = Buffer

// NewBuffer creates a buffer whose every character has attrs.
func NewBuffer(text string, attrs Attributes) Buffer {
	n := utf8.RuneCountInString(text)
	b := Buffer{Text: text}
	if n > 0 {
		b.Ranges = []FormattingRange{{Start: 0, End: n, Attributes: attrs.Clone()}}
	}
	return b
}

// Read loads the full text of src with one range per character.
func Read(src StyleReader) (Buffer, error) {
	text := src.Characters()
	ranges, err := ExtractRanges(src, 0, utf8.RuneCountInString(text))
	if err != nil {
		return Buffer{}, err
	}
	return Buffer{Text: text, Ranges: ranges}, nil
}

// Len returns the number of runes in the buffer.
func (b Buffer) Len() int {
	return utf8.RuneCountInString(b.Text)
}

// IsEmpty returns true if the buffer has no text.
func (b Buffer) IsEmpty() bool {
	return b.Text == ""
}

// AttributesAt returns the attributes of the character at offset.
func (b Buffer) AttributesAt(offset int) (Attributes, bool) {
	for _, r := range b.Ranges {
		if r.Contains(offset) {
			return r.Attributes, true
		}
	}
	return Attributes{}, false
}

// Slice returns the sub-buffer [start, end) with ranges clipped to the span
// and re-based to zero.
func (b Buffer) Slice(start, end int) (Buffer, error) {
	runes := []rune(b.Text)
	if start < 0 || end > len(runes) || start > end {
		return Buffer{}, fmt.Errorf("slice [%d:%d) of %d runes: %w", start, end, len(runes), ErrRangeInvalid)
	}
	out := Buffer{Text: string(runes[start:end])}
	for _, r := range b.Ranges {
		if r.End <= start || r.Start >= end {
			continue
		}
		c := r
		c.Attributes = r.Attributes.Clone()
		c.Start = max(r.Start, start) - start
		c.End = min(r.End, end) - start
		out.Ranges = append(out.Ranges, c)
	}
	return out, nil
}

// StyleRange implements StyleReader so a Buffer can stand in for a host
// object.
func (b Buffer) StyleRange(start, end int) (Attributes, error) {
	if start < 0 || start >= end || end > b.Len() {
		return Attributes{}, fmt.Errorf("style range [%d:%d): %w", start, end, ErrRangeInvalid)
	}
	var (
		out   Attributes
		found bool
	)
	for _, r := range b.Ranges {
		if r.End <= start || r.Start >= end {
			continue
		}
		if !found {
			out = r.Attributes.Clone()
			found = true
			continue
		}
		out = out.Merge(r.Attributes)
	}
	if !found {
		return Attributes{}, fmt.Errorf("no formatting for [%d:%d): %w", start, end, ErrRangeInvalid)
	}
	return out, nil
}

// Characters implements StyleReader.
func (b Buffer) Characters() string {
	return b.Text
}

// Validate checks that ranges are sorted, disjoint and inside the text.
func (b Buffer) Validate() error {
	if err := checkRanges(b.Ranges); err != nil {
		return err
	}
	if n := len(b.Ranges); n > 0 && b.Ranges[n-1].End > b.Len() {
		return fmt.Errorf("range %v past end of %d runes: %w", b.Ranges[n-1], b.Len(), ErrRangeInvalid)
	}
	return nil
}
