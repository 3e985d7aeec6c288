package cutter

import (
	"github.com/dshills/textcutter/internal/bullets"
	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/segment"
)

// Default configuration values.
const (
	DefaultWordGap      = segment.DefaultWordGap
	DefaultFallbackSize = segment.DefaultFallbackSize
	DefaultLineGap      = 0
)

// DefaultFont is the font hosts give newly created text.
var DefaultFont = fonts.Key{Family: "Roboto", Style: "Regular"}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithScheduler sets the font scheduler. By default the engine loads fonts
// through the document.
func WithScheduler(s *fonts.Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.fonts = s
		}
	}
}

// WithDefaultFont sets the font new text layers are created with.
func WithDefaultFont(k fonts.Key) Option {
	return func(e *Engine) {
		if k.Family != "" {
			e.defaultFont = k
		}
	}
}

// WithWordGap sets the inter-word gap as a fraction of the font size.
func WithWordGap(factor float64) Option {
	return func(e *Engine) {
		if factor >= 0 {
			e.wordGap = factor
		}
	}
}

// WithFallbackFontSize sets the size used for word spacing when a word's
// size is mixed.
func WithFallbackFontSize(size float64) Option {
	return func(e *Engine) {
		if size > 0 {
			e.fallbackSize = size
		}
	}
}

// WithLineGap sets the vertical space between split lines.
func WithLineGap(gap float64) Option {
	return func(e *Engine) {
		if gap >= 0 {
			e.lineGap = gap
		}
	}
}

// WithKeepOriginal keeps the source layer after a split.
func WithKeepOriginal(keep bool) Option {
	return func(e *Engine) {
		e.keepOriginal = keep
	}
}

// WithStripper sets the bullet stripper.
func WithStripper(s *bullets.Stripper) Option {
	return func(e *Engine) {
		if s != nil {
			e.stripper = s
		}
	}
}

// WithCoalesce run-length encodes ranges before writing them.
func WithCoalesce(on bool) Option {
	return func(e *Engine) {
		e.coalesce = on
	}
}
