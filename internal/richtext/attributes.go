package richtext

import (
	"fmt"
	"slices"
	"strings"
)

// Field identifies one attribute of an Attributes bundle.
type Field uint16

const (
	FieldFontSize Field = 1 << iota
	FieldFontName
	FieldTextCase
	FieldTextDecoration
	FieldLetterSpacing
	FieldLineHeight
	FieldFills
	FieldTextStyleID
	FieldFillStyleID
)

// AllFields is the union of every attribute field.
const AllFields = FieldFontSize | FieldFontName | FieldTextCase | FieldTextDecoration |
	FieldLetterSpacing | FieldLineHeight | FieldFills | FieldTextStyleID | FieldFillStyleID

var fieldNames = []struct {
	f    Field
	name string
}{
	{FieldFontSize, "fontSize"},
	{FieldFontName, "fontName"},
	{FieldTextCase, "textCase"},
	{FieldTextDecoration, "textDecoration"},
	{FieldLetterSpacing, "letterSpacing"},
	{FieldLineHeight, "lineHeight"},
	{FieldFills, "fills"},
	{FieldTextStyleID, "textStyleId"},
	{FieldFillStyleID, "fillStyleId"},
}

// Has reports whether every bit of g is set in f.
func (f Field) Has(g Field) bool {
	return f&g == g
}

// String returns the set field names joined by '|'.
func (f Field) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range fieldNames {
		if f&fn.f != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// TextCase is the case transform applied when rendering.
type TextCase string

const (
	CaseOriginal TextCase = "ORIGINAL"
	CaseUpper    TextCase = "UPPER"
	CaseLower    TextCase = "LOWER"
	CaseTitle    TextCase = "TITLE"
)

// TextDecoration is a line drawn with the text.
type TextDecoration string

const (
	DecorationNone          TextDecoration = "NONE"
	DecorationUnderline     TextDecoration = "UNDERLINE"
	DecorationStrikethrough TextDecoration = "STRIKETHROUGH"
)

// Unit is the unit of a LetterSpacing or LineHeight value.
type Unit string

const (
	UnitPixels  Unit = "PIXELS"
	UnitPercent Unit = "PERCENT"
	UnitAuto    Unit = "AUTO" // LineHeight only; Value is ignored
)

// FontName identifies a font face.
type FontName struct {
	Family string
	Style  string
}

// String returns "Family Style".
func (f FontName) String() string {
	return f.Family + " " + f.Style
}

// LetterSpacing is the spacing added between characters.
type LetterSpacing struct {
	Value float64
	Unit  Unit
}

// LineHeight is the height of a line of text. Value is unused for UnitAuto.
type LineHeight struct {
	Value float64
	Unit  Unit
}

// Equal reports whether two line heights are the same.
func (l LineHeight) Equal(o LineHeight) bool {
	if l.Unit == UnitAuto || o.Unit == UnitAuto {
		return l.Unit == o.Unit
	}
	return l == o
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Paint describes one fill layer.
type Paint struct {
	Type    string // "SOLID" for the paints this package produces
	Color   Color
	Opacity float64
	Visible bool
}

// Attributes is the full formatting bundle of a character or span.
//
// Mixed marks the fields whose values differ across the queried span; the
// corresponding value fields are meaningless when their bit is set.
type Attributes struct {
	FontSize       float64
	FontName       FontName
	TextCase       TextCase
	TextDecoration TextDecoration
	LetterSpacing  LetterSpacing
	LineHeight     LineHeight
	Fills          []Paint
	TextStyleID    string
	FillStyleID    string

	Mixed Field
}

// DefaultAttributes returns the attributes a host gives newly created text.
func DefaultAttributes() Attributes {
	return Attributes{
		FontSize:       12,
		FontName:       FontName{Family: "Roboto", Style: "Regular"},
		TextCase:       CaseOriginal,
		TextDecoration: DecorationNone,
		LetterSpacing:  LetterSpacing{Value: 0, Unit: UnitPercent},
		LineHeight:     LineHeight{Unit: UnitAuto},
		Fills:          []Paint{{Type: "SOLID", Color: Color{A: 1}, Opacity: 1, Visible: true}},
	}
}

// IsMixed reports whether f is marked MIXED.
func (a Attributes) IsMixed(f Field) bool {
	return a.Mixed&f != 0
}

// Clone returns a copy that shares no memory with a.
func (a Attributes) Clone() Attributes {
	a.Fills = slices.Clone(a.Fills)
	return a
}

// Equal reports whether a and b describe the same formatting.
func (a Attributes) Equal(b Attributes) bool {
	return a.Mixed == b.Mixed &&
		a.FontSize == b.FontSize &&
		a.FontName == b.FontName &&
		a.TextCase == b.TextCase &&
		a.TextDecoration == b.TextDecoration &&
		a.LetterSpacing == b.LetterSpacing &&
		a.LineHeight.Equal(b.LineHeight) &&
		slices.Equal(a.Fills, b.Fills) &&
		a.TextStyleID == b.TextStyleID &&
		a.FillStyleID == b.FillStyleID
}

// Diff returns the fields in which a and b differ.
func (a Attributes) Diff(b Attributes) Field {
	var d Field
	if a.FontSize != b.FontSize {
		d |= FieldFontSize
	}
	if a.FontName != b.FontName {
		d |= FieldFontName
	}
	if a.TextCase != b.TextCase {
		d |= FieldTextCase
	}
	if a.TextDecoration != b.TextDecoration {
		d |= FieldTextDecoration
	}
	if a.LetterSpacing != b.LetterSpacing {
		d |= FieldLetterSpacing
	}
	if !a.LineHeight.Equal(b.LineHeight) {
		d |= FieldLineHeight
	}
	if !slices.Equal(a.Fills, b.Fills) {
		d |= FieldFills
	}
	if a.TextStyleID != b.TextStyleID {
		d |= FieldTextStyleID
	}
	if a.FillStyleID != b.FillStyleID {
		d |= FieldFillStyleID
	}
	return d
}

// Merge folds b into a as a span query would: every field that differs
// becomes MIXED.
func (a Attributes) Merge(b Attributes) Attributes {
	out := a.Clone()
	out.Mixed |= b.Mixed | a.Diff(b)
	return out
}

// String returns a compact description used in logs and test failures.
func (a Attributes) String() string {
	s := fmt.Sprintf("%s %gpx", a.FontName, a.FontSize)
	if a.Mixed != 0 {
		s += " mixed=" + a.Mixed.String()
	}
	return s
}
