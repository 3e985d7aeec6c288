package segment

// Default word layout parameters.
const (
	DefaultWordGap      = 0.25
	DefaultFallbackSize = 12
)

// WordLayout returns the horizontal offset of each word relative to the
// first. Each word starts after the rendered widths of the words before it
// plus, per preceding word, a gap of gapFactor times that word's font size.
// A non-positive size marks a word whose size is MIXED; fallback is used in
// its place.
//
// The gap only approximates natural word spacing. It is not text shaping and
// the result is not guaranteed to match what a host would lay out.
func WordLayout(widths, sizes []float64, gapFactor, fallback float64) []float64 {
	xs := make([]float64, len(widths))
	x := 0.0
	for i := range widths {
		xs[i] = x
		size := fallback
		if i < len(sizes) && sizes[i] > 0 {
			size = sizes[i]
		}
		x += widths[i] + gapFactor*size
	}
	return xs
}
