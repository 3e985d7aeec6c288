package segment

import (
	"strings"
	"unicode/utf8"
)

// Span is a fragment of a source text and its rune offsets in that text.
type Span struct {
	Text  string
	Start int
	End   int
}

// Len returns the rune length of the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Lines splits text on "\n" and "\r\n", discards empty lines, and trims
// surrounding whitespace from the rest. Lines holding only whitespace are
// discarded too.
func Lines(text string) []string {
	var out []string
	for _, line := range splitLineBreaks(text) {
		if line == "" {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Words splits text on runs of Unicode whitespace and discards empty tokens.
func Words(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	return words
}

// LineSpans returns Lines(text) with their offsets in text.
func LineSpans(text string) []Span {
	return locate(text, Lines(text))
}

// WordSpans returns Words(text) with their offsets in text.
func WordSpans(text string) []Span {
	return locate(text, Words(text))
}

// splitLineBreaks splits on '\n', treating "\r\n" as a single break.
func splitLineBreaks(text string) []string {
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// locate finds each fragment in source, searching from the end of the
// previous match. A fragment that cannot be found after the cursor falls
// back to its first occurrence anywhere in source.
func locate(source string, fragments []string) []Span {
	spans := make([]Span, 0, len(fragments))
	cursor := 0 // byte offset
	for _, frag := range fragments {
		idx := strings.Index(source[cursor:], frag)
		if idx >= 0 {
			idx += cursor
		} else {
			idx = strings.Index(source, frag)
		}
		if idx < 0 {
			continue
		}
		start := utf8.RuneCountInString(source[:idx])
		spans = append(spans, Span{
			Text:  frag,
			Start: start,
			End:   start + utf8.RuneCountInString(frag),
		})
		if end := idx + len(frag); end > cursor {
			cursor = end
		}
	}
	return spans
}
