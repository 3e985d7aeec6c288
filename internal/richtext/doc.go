// Package richtext provides the character-indexed styled text model shared by
// every textcutter operation.
//
// A Buffer is a run of text plus an ordered list of FormattingRange values.
// Each range covers a half-open rune interval [Start, End) and carries a full
// Attributes bundle: font, size, case, decoration, letter spacing, line
// height, fills and the linked text/fill style identifiers.
//
// # Extraction
//
// Ranges are read from a host object one character at a time:
//
//	ranges, err := richtext.ExtractRanges(node, 6, 11)
//	// len(ranges) == 5, ranges[0] is [0,1) relative to offset 6
//
// A query over a multi-character span may report an attribute as MIXED (see
// Attributes.Mixed). A width-1 query never does; ExtractRanges returns
// ErrMixedCharacter if a host claims otherwise.
//
// # Application
//
// ApplyRanges writes ranges back to a destination object. Ranges never
// overlap, so the write order across ranges does not matter; it proceeds in
// ascending Start order. Linked style identifiers are applied after the
// concrete attributes because the host call may suspend.
//
// # Offsets
//
// All offsets are rune (code point) offsets. TranslateOffset shifts a range
// list when fragments are concatenated and filters ranges that end up empty or
// before zero. Coalesce run-length encodes adjacent identical ranges; Expand
// undoes it. Both forms produce identical per-character results.
package richtext
