package cutter

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/textcutter/internal/bullets"
	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/richtext"
	"github.com/dshills/textcutter/internal/scene"
)

// Logger is the logging interface used by the engine.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}

// Result is the outcome of a completed request.
type Result struct {
	// Status is the human-readable summary shown to the user.
	Status string

	// NoOp is true when the input needed no change and nothing was touched.
	NoOp bool

	// Created, Modified and Removed list affected node ids.
	Created  []string
	Modified []string
	Removed  []string
}

func noOp(status string) Result {
	return Result{Status: status, NoOp: true}
}

// Engine performs textcutter requests against one document.
type Engine struct {
	doc   scene.Document
	fonts *fonts.Scheduler
	log   Logger

	defaultFont  fonts.Key
	wordGap      float64
	fallbackSize float64
	lineGap      float64
	keepOriginal bool
	stripper     *bullets.Stripper
	coalesce     bool
}

// New creates an engine for doc.
func New(doc scene.Document, opts ...Option) *Engine {
	e := &Engine{
		doc:          doc,
		log:          nopLogger{},
		defaultFont:  DefaultFont,
		wordGap:      DefaultWordGap,
		fallbackSize: DefaultFallbackSize,
		lineGap:      DefaultLineGap,
		stripper:     bullets.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fonts == nil {
		e.fonts = fonts.NewScheduler(doc)
	}
	return e
}

// singleText checks that sel is exactly one text node.
func singleText(op string, sel []scene.Node) (scene.TextNode, error) {
	if len(sel) != 1 {
		return nil, newOpError(op, "", "Select a single node.",
			fmt.Errorf("%d nodes selected: %w", len(sel), ErrPreconditionFailed))
	}
	t, ok := scene.AsText(sel[0])
	if !ok {
		return nil, newOpError(op, sel[0].ID(), "Select a single text node.",
			fmt.Errorf("node is %s: %w", sel[0].Type(), ErrPreconditionFailed))
	}
	if err := checkAttached(op, t); err != nil {
		return nil, err
	}
	return t, nil
}

// allText checks that every node in sel is a live text node.
func allText(op string, sel []scene.Node) ([]scene.TextNode, error) {
	out := make([]scene.TextNode, 0, len(sel))
	for _, n := range sel {
		t, ok := scene.AsText(n)
		if !ok {
			return nil, newOpError(op, n.ID(), "Select only text layers.",
				fmt.Errorf("node is %s: %w", n.Type(), ErrPreconditionFailed))
		}
		if err := checkAttached(op, t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// checkAttached rejects nodes that an earlier request removed. Hosts may
// still resolve their ids, but they have no parent.
func checkAttached(op string, n scene.Node) error {
	if n.Parent() == nil {
		return newOpError(op, n.ID(), "The selected layer no longer exists.",
			fmt.Errorf("node is detached: %w", ErrPreconditionFailed))
	}
	return nil
}

func checkFonts[T scene.TextNode](op string, nodes []T) error {
	for _, t := range nodes {
		if t.HasMissingFont() {
			return newOpError(op, t.ID(), "Whoops, you need to have the font for this layer installed.",
				fmt.Errorf("missing font: %w", ErrFontUnavailable))
		}
	}
	return nil
}

func checkInstances[T scene.TextNode](op string, nodes []T, msg string) error {
	if n, ok := scene.AnyInsideInstance(nodes); ok {
		return newOpError(op, n.ID(), msg, ErrInstanceRestricted)
	}
	return nil
}

// loadFonts loads keys before any write of the request.
func (e *Engine) loadFonts(ctx context.Context, op string, keys *fonts.Set) error {
	e.log.Debug("%s: loading %d fonts", op, keys.Len())
	if err := e.fonts.EnsureLoaded(ctx, keys); err != nil {
		msg := "Whoops, you need to have the font for this layer installed."
		var ue *fonts.UnavailableError
		if errors.As(err, &ue) {
			msg = fmt.Sprintf("Could not load font %s.", ue.Key)
		}
		return newOpError(op, "", msg, fmt.Errorf("%w: %w", ErrFontUnavailable, err))
	}
	return nil
}

// write replaces the characters of t and applies ranges.
func (e *Engine) write(ctx context.Context, t scene.TextNode, buf richtext.Buffer) error {
	if err := t.SetCharacters(buf.Text); err != nil {
		return err
	}
	ranges := buf.Ranges
	if e.coalesce {
		ranges = richtext.Coalesce(ranges)
	}
	return richtext.ApplyRanges(ctx, t, ranges)
}

// rollback removes nodes created by a request that failed midway.
func (e *Engine) rollback(op string, created []scene.Node) {
	for _, n := range created {
		if err := e.doc.Remove(n); err != nil {
			e.log.Warn("%s: rollback of %s failed: %v", op, n.ID(), err)
		}
	}
}

func ids[N scene.Node](nodes []N) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}
