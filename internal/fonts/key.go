package fonts

import (
	"fmt"

	"github.com/dshills/textcutter/internal/richtext"
)

// Key identifies a font face to load.
type Key struct {
	Family string
	Style  string
}

// KeyOf converts a richtext font name to a Key.
func KeyOf(f richtext.FontName) Key {
	return Key{Family: f.Family, Style: f.Style}
}

// String returns "Family Style".
func (k Key) String() string {
	return k.Family + " " + k.Style
}

// Set is an insertion-ordered set of keys. The zero value is ready to use.
type Set struct {
	order []Key
	seen  map[Key]struct{}
}

// NewSet creates a set holding keys.
func NewSet(keys ...Key) *Set {
	s := &Set{}
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts k and reports whether it was new.
func (s *Set) Add(k Key) bool {
	if s.seen == nil {
		s.seen = make(map[Key]struct{})
	}
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.order = append(s.order, k)
	return true
}

// Has reports whether k is in the set.
func (s *Set) Has(k Key) bool {
	_, ok := s.seen[k]
	return ok
}

// Len returns the number of keys.
func (s *Set) Len() int {
	return len(s.order)
}

// Keys returns the keys in insertion order.
func (s *Set) Keys() []Key {
	out := make([]Key, len(s.order))
	copy(out, s.order)
	return out
}

// Union adds every key of o to s.
func (s *Set) Union(o *Set) {
	if o == nil {
		return
	}
	for _, k := range o.order {
		s.Add(k)
	}
}

// Collect walks every character of [start, end) in src and returns the
// distinct fonts used.
func Collect(src richtext.StyleReader, start, end int) (*Set, error) {
	s := &Set{}
	for i := start; i < end; i++ {
		attrs, err := src.StyleRange(i, i+1)
		if err != nil {
			return nil, fmt.Errorf("font of character %d: %w", i, err)
		}
		if attrs.IsMixed(richtext.FieldFontName) {
			return nil, fmt.Errorf("font of character %d: %w", i, richtext.ErrMixedCharacter)
		}
		s.Add(KeyOf(attrs.FontName))
	}
	return s, nil
}

// CollectRanges returns the distinct fonts referenced by ranges.
func CollectRanges(ranges []richtext.FormattingRange) *Set {
	s := &Set{}
	for _, r := range ranges {
		if r.IsMixed(richtext.FieldFontName) || !r.IsValid() {
			continue
		}
		s.Add(KeyOf(r.FontName))
	}
	return s
}
