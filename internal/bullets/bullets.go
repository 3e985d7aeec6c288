// Package bullets removes bullet glyphs from styled text while keeping every
// surviving character's formatting attached to it.
package bullets

import (
	"unicode"

	"github.com/dshills/textcutter/internal/richtext"
)

// DefaultGlyphs are the markers removed by a Stripper created without
// explicit glyphs. Dashes and ASCII markers are left alone since they occur
// in ordinary prose.
var DefaultGlyphs = []rune{
	'•', '◦', '‣', '⁃', '∙', '●', '○', '▪', '▫', '■', '□',
	'◆', '◇', '►', '▸', '➢', '✓', '✔', '☐', '☑', '★', '☆',
}

// Stripper removes a fixed set of glyphs, each along with one following
// whitespace character if there is one.
type Stripper struct {
	glyphs map[rune]struct{}
}

// New creates a Stripper for glyphs, or DefaultGlyphs if none are given.
func New(glyphs ...rune) *Stripper {
	if len(glyphs) == 0 {
		glyphs = DefaultGlyphs
	}
	s := &Stripper{glyphs: make(map[rune]struct{}, len(glyphs))}
	for _, g := range glyphs {
		s.glyphs[g] = struct{}{}
	}
	return s
}

// IsGlyph reports whether r is one of the stripped markers.
func (s *Stripper) IsGlyph(r rune) bool {
	_, ok := s.glyphs[r]
	return ok
}

// Strip removes every marker from buf and returns the shortened buffer and
// the number of characters removed.
//
// Each range is remapped by counting the characters that survive before its
// bounds, so formatting stays on the same characters wherever the removed
// markers were. Ranges left with no characters are dropped.
func (s *Stripper) Strip(buf richtext.Buffer) (richtext.Buffer, int) {
	runes := []rune(buf.Text)
	removed := s.match(runes)

	// kept[i] is the number of surviving characters in runes[:i].
	kept := make([]int, len(runes)+1)
	out := make([]rune, 0, len(runes))
	for i, r := range runes {
		kept[i+1] = kept[i]
		if removed[i] {
			continue
		}
		kept[i+1]++
		out = append(out, r)
	}
	n := len(runes) - len(out)
	if n == 0 {
		return buf, 0
	}

	res := richtext.Buffer{Text: string(out)}
	for _, r := range buf.Ranges {
		if r.Start < 0 || r.End > len(runes) || r.Start >= r.End {
			continue
		}
		m := r
		m.Attributes = r.Attributes.Clone()
		m.Start = kept[r.Start]
		m.End = kept[r.End]
		if m.End <= m.Start {
			continue
		}
		res.Ranges = append(res.Ranges, m)
	}
	return res, n
}

// match marks the runes to remove.
func (s *Stripper) match(runes []rune) []bool {
	removed := make([]bool, len(runes))
	for i := 0; i < len(runes); i++ {
		if !s.IsGlyph(runes[i]) {
			continue
		}
		removed[i] = true
		if i+1 < len(runes) && isBlank(runes[i+1]) {
			i++
			removed[i] = true
		}
	}
	return removed
}

// isBlank reports whether r is whitespace other than a line break.
func isBlank(r rune) bool {
	return r != '\n' && r != '\r' && unicode.IsSpace(r)
}

var defaultStripper = New()

// Strip removes DefaultGlyphs from buf.
func Strip(buf richtext.Buffer) (richtext.Buffer, int) {
	return defaultStripper.Strip(buf)
}
