// Package join concatenates styled buffers into one.
package join

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/textcutter/internal/richtext"
)

// ErrInsufficientInput indicates fewer than two buffers were given.
var ErrInsufficientInput = errors.New("join needs at least two text layers")

// Separator is the text inserted between joined buffers.
type Separator int

const (
	// None joins buffers directly.
	None Separator = iota
	// Space inserts a single space.
	Space
	// Newline inserts a line feed.
	Newline
)

// String returns the separator name.
func (s Separator) String() string {
	switch s {
	case None:
		return "none"
	case Space:
		return "space"
	case Newline:
		return "newline"
	default:
		return "unknown"
	}
}

// Text returns the characters inserted for s.
func (s Separator) Text() string {
	switch s {
	case Space:
		return " "
	case Newline:
		return "\n"
	default:
		return ""
	}
}

// ParseSeparator parses a separator name.
func ParseSeparator(s string) (Separator, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "space", " ":
		return Space, nil
	case "newline", "line", "\n":
		return Newline, nil
	default:
		return None, fmt.Errorf("unknown separator %q", s)
	}
}

// Join concatenates bufs in order with sep between consecutive buffers.
// The ranges of buffer k are shifted by the length of every earlier buffer
// plus the k separators inserted before it.
func Join(bufs []richtext.Buffer, sep Separator) (richtext.Buffer, error) {
	if len(bufs) < 2 {
		return richtext.Buffer{}, fmt.Errorf("got %d: %w", len(bufs), ErrInsufficientInput)
	}

	sepText := sep.Text()
	sepLen := len([]rune(sepText))

	var (
		sb     strings.Builder
		ranges []richtext.FormattingRange
		offset int
	)
	for k, b := range bufs {
		if k > 0 {
			sb.WriteString(sepText)
			offset += sepLen
		}
		sb.WriteString(b.Text)
		ranges = append(ranges, richtext.TranslateOffset(b.Ranges, offset)...)
		offset += b.Len()
	}
	return richtext.Buffer{Text: sb.String(), Ranges: ranges}, nil
}
