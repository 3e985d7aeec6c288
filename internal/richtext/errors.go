package richtext

import "errors"

// Errors returned by richtext operations.
var (
	// ErrRangeInvalid indicates a span with end < start or outside the text.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrMixedCharacter indicates a host reported MIXED for a single character.
	ErrMixedCharacter = errors.New("mixed attribute reported for a single character")

	// ErrRangesOverlap indicates two ranges in a list cover the same character.
	ErrRangesOverlap = errors.New("ranges overlap")
)
