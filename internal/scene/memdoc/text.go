package memdoc

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/richtext"
)

// Text is a text node holding one attribute bundle per character.
type Text struct {
	Node

	chars    []rune
	styles   []richtext.Attributes
	autoName bool // name follows the characters
}

// Characters implements richtext.StyleReader.
func (t *Text) Characters() string {
	return string(t.chars)
}

// Len returns the number of characters.
func (t *Text) Len() int {
	return len(t.chars)
}

// StyleRange implements richtext.StyleReader.
func (t *Text) StyleRange(start, end int) (richtext.Attributes, error) {
	if start < 0 || start >= end || end > len(t.chars) {
		return richtext.Attributes{}, fmt.Errorf("style range [%d:%d) of %d characters: %w",
			start, end, len(t.chars), richtext.ErrRangeInvalid)
	}
	out := t.styles[start].Clone()
	for i := start + 1; i < end; i++ {
		out = out.Merge(t.styles[i])
	}
	return out, nil
}

// Buffer returns the node's text with coalesced ranges.
func (t *Text) Buffer() richtext.Buffer {
	b := richtext.Buffer{Text: string(t.chars)}
	for i, a := range t.styles {
		b.Ranges = append(b.Ranges, richtext.FormattingRange{Start: i, End: i + 1, Attributes: a.Clone()})
	}
	b.Ranges = richtext.Coalesce(b.Ranges)
	return b
}

// SetRangeAttributes implements richtext.StyleWriter. The font in attrs
// must have been loaded.
func (t *Text) SetRangeAttributes(start, end int, attrs richtext.Attributes) error {
	if err := t.checkWrite(start, end); err != nil {
		return err
	}
	if attrs.Mixed != 0 {
		return fmt.Errorf("set range [%d:%d): %w", start, end, richtext.ErrMixedCharacter)
	}
	if !t.doc.IsLoaded(fonts.KeyOf(attrs.FontName)) {
		return fmt.Errorf("set range [%d:%d) to %s: %w", start, end, attrs.FontName, ErrFontNotLoaded)
	}
	for i := start; i < end; i++ {
		a := attrs.Clone()
		a.TextStyleID, a.FillStyleID = "", ""
		t.styles[i] = a
	}
	t.doc.countWrite()
	return nil
}

// SetRangeTextStyleID implements richtext.StyleWriter.
func (t *Text) SetRangeTextStyleID(ctx context.Context, start, end int, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.checkWrite(start, end); err != nil {
		return err
	}
	for i := start; i < end; i++ {
		t.styles[i].TextStyleID = id
	}
	t.doc.countWrite()
	return nil
}

// SetRangeFillStyleID implements richtext.StyleWriter.
func (t *Text) SetRangeFillStyleID(ctx context.Context, start, end int, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.checkWrite(start, end); err != nil {
		return err
	}
	for i := start; i < end; i++ {
		t.styles[i].FillStyleID = id
	}
	t.doc.countWrite()
	return nil
}

// SetCharacters implements scene.TextNode. Every font currently used by the
// node must be loaded. New characters take the first character's formatting.
func (t *Text) SetCharacters(text string) error {
	if t.removed {
		return ErrNodeRemoved
	}
	base := t.doc.defaults
	if len(t.styles) > 0 {
		base = t.styles[0]
	}
	for _, k := range t.fontKeys(base).Keys() {
		if !t.doc.IsLoaded(k) {
			return fmt.Errorf("set characters with %s: %w", k, ErrFontNotLoaded)
		}
	}
	t.chars = []rune(text)
	t.styles = make([]richtext.Attributes, len(t.chars))
	for i := range t.styles {
		t.styles[i] = base.Clone()
	}
	if t.autoName {
		t.name = defaultName(text)
	}
	t.doc.countWrite()
	return nil
}

// HasMissingFont implements scene.TextNode.
func (t *Text) HasMissingFont() bool {
	for _, k := range t.fontKeys(t.doc.defaults).Keys() {
		if !t.doc.IsInstalled(k) {
			return true
		}
	}
	return false
}

// Width implements scene.Node. Text nodes size to their content.
func (t *Text) Width() float64 {
	return measureWidth(t.chars, t.styles)
}

// Height implements scene.Node.
func (t *Text) Height() float64 {
	return measureHeight(t.chars, t.styles, t.doc.defaults)
}

// Rendered returns the text as displayed, with each character's text case
// applied.
func (t *Text) Rendered() string {
	var sb strings.Builder
	start := 0
	for i := 1; i <= len(t.chars); i++ {
		if i < len(t.chars) && t.styles[i].TextCase == t.styles[start].TextCase {
			continue
		}
		sb.WriteString(applyCase(string(t.chars[start:i]), t.styles[start].TextCase))
		start = i
	}
	return sb.String()
}

// fontKeys returns the fonts used by the node, or fallback's font when the
// node is empty.
func (t *Text) fontKeys(fallback richtext.Attributes) *fonts.Set {
	s := &fonts.Set{}
	if len(t.styles) == 0 {
		s.Add(fonts.KeyOf(fallback.FontName))
		return s
	}
	for _, a := range t.styles {
		s.Add(fonts.KeyOf(a.FontName))
	}
	return s
}

func (t *Text) checkWrite(start, end int) error {
	if t.removed {
		return ErrNodeRemoved
	}
	if start < 0 || start >= end || end > len(t.chars) {
		return fmt.Errorf("write [%d:%d) of %d characters: %w", start, end, len(t.chars), richtext.ErrRangeInvalid)
	}
	return nil
}
