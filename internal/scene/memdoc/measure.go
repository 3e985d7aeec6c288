package memdoc

import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/textcutter/internal/richtext"
)

// Glyph metrics used to size text nodes. A terminal cell maps to 0.6 em and
// an automatic line is 1.2 em tall.
const (
	cellAdvance = 0.6
	autoLeading = 1.2
)

// measureWidth returns the width of the widest line.
func measureWidth(chars []rune, styles []richtext.Attributes) float64 {
	widest, line := 0.0, 0.0
	idx := 0
	g := uniseg.NewGraphemes(string(chars))
	for g.Next() {
		rs := g.Runes()
		if rs[0] == '\n' || rs[0] == '\r' {
			widest = max(widest, line)
			line = 0
			idx += len(rs)
			continue
		}
		a := styles[idx]
		line += float64(g.Width())*cellAdvance*a.FontSize + letterSpacing(a)
		idx += len(rs)
	}
	return max(widest, line)
}

// measureHeight sums the tallest line height of every line.
func measureHeight(chars []rune, styles []richtext.Attributes, defaults richtext.Attributes) float64 {
	if len(chars) == 0 {
		return lineHeight(defaults)
	}
	total, tallest := 0.0, 0.0
	for i, r := range chars {
		if r == '\n' {
			if tallest == 0 {
				tallest = lineHeight(styles[i])
			}
			total += tallest
			tallest = 0
			continue
		}
		tallest = max(tallest, lineHeight(styles[i]))
	}
	if tallest == 0 {
		tallest = lineHeight(styles[len(styles)-1])
	}
	return total + tallest
}

func letterSpacing(a richtext.Attributes) float64 {
	switch a.LetterSpacing.Unit {
	case richtext.UnitPixels:
		return a.LetterSpacing.Value
	case richtext.UnitPercent:
		return a.LetterSpacing.Value / 100 * a.FontSize
	default:
		return 0
	}
}

func lineHeight(a richtext.Attributes) float64 {
	switch a.LineHeight.Unit {
	case richtext.UnitPixels:
		return a.LineHeight.Value
	case richtext.UnitPercent:
		return a.LineHeight.Value / 100 * a.FontSize
	default:
		return autoLeading * a.FontSize
	}
}

// applyCase transforms s for display. Casers are stateful, so each call
// gets its own.
func applyCase(s string, c richtext.TextCase) string {
	switch c {
	case richtext.CaseUpper:
		return cases.Upper(language.Und).String(s)
	case richtext.CaseLower:
		return cases.Lower(language.Und).String(s)
	case richtext.CaseTitle:
		return cases.Title(language.Und).String(s)
	default:
		return s
	}
}
