package cutter

import (
	"context"
	"fmt"

	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/richtext"
	"github.com/dshills/textcutter/internal/scene"
	"github.com/dshills/textcutter/internal/segment"
)

// placer positions freshly populated fragment nodes relative to src.
type placer func(src scene.TextNode, nodes []scene.TextNode, frags []richtext.Fragment)

// SplitLines replaces the selected text layer with one layer per line.
// Empty lines are dropped and each line is trimmed.
func (e *Engine) SplitLines(ctx context.Context, sel []scene.Node) (Result, error) {
	const op = "split-lines"
	src, err := e.splitGuards(op, sel)
	if err != nil {
		return Result{}, err
	}
	spans := segment.LineSpans(src.Characters())
	if len(spans) <= 1 {
		e.log.Info("%s: %s has a single line", op, src.ID())
		return noOp("Nothing to split: the text has a single line."), nil
	}
	res, err := e.split(ctx, op, src, spans, e.stackLines)
	if err != nil {
		return Result{}, err
	}
	res.Status = fmt.Sprintf("Split into %d layers.", len(res.Created))
	return res, nil
}

// SplitWords replaces the selected text layer with one layer per word.
func (e *Engine) SplitWords(ctx context.Context, sel []scene.Node) (Result, error) {
	const op = "split-words"
	src, err := e.splitGuards(op, sel)
	if err != nil {
		return Result{}, err
	}
	spans := segment.WordSpans(src.Characters())
	if len(spans) <= 1 {
		e.log.Info("%s: %s has a single word", op, src.ID())
		return noOp("Nothing to split: the text is a single word."), nil
	}
	res, err := e.split(ctx, op, src, spans, e.spreadWords)
	if err != nil {
		return Result{}, err
	}
	res.Status = fmt.Sprintf("Split into %d words.", len(res.Created))
	return res, nil
}

func (e *Engine) splitGuards(op string, sel []scene.Node) (scene.TextNode, error) {
	src, err := singleText(op, sel)
	if err != nil {
		return nil, err
	}
	nodes := []scene.TextNode{src}
	if err := checkFonts(op, nodes); err != nil {
		return nil, err
	}
	if err := checkInstances(op, nodes, "Text inside an instance cannot be split. Detach the instance first."); err != nil {
		return nil, err
	}
	return src, nil
}

// split creates one node per span, fully populated, before the source is
// touched.
func (e *Engine) split(ctx context.Context, op string, src scene.TextNode, spans []segment.Span, place placer) (Result, error) {
	frags := make([]richtext.Fragment, len(spans))
	keys := fonts.NewSet(e.defaultFont)
	for i, sp := range spans {
		ranges, err := richtext.ExtractRanges(src, sp.Start, sp.End)
		if err != nil {
			return Result{}, newOpError(op, src.ID(), "", err)
		}
		frags[i] = richtext.Fragment{Text: sp.Text, Ranges: ranges}
		keys.Union(fonts.CollectRanges(ranges))
	}
	e.log.Debug("%s: %s -> %d fragments", op, src.ID(), len(frags))

	if err := e.loadFonts(ctx, op, keys); err != nil {
		return Result{}, err
	}

	parent := src.Parent()
	nodes := make([]scene.TextNode, 0, len(frags))
	for _, f := range frags {
		t, err := e.doc.CreateText(ctx, parent)
		if err != nil {
			e.rollback(op, scene.Nodes(nodes))
			return Result{}, newOpError(op, src.ID(), "", err)
		}
		nodes = append(nodes, t)
		if err := e.write(ctx, t, f); err != nil {
			e.rollback(op, scene.Nodes(nodes))
			return Result{}, newOpError(op, t.ID(), "", err)
		}
	}
	place(src, nodes, frags)

	created := scene.Nodes(nodes)
	group, err := e.doc.Group(created, parent)
	if err != nil {
		e.rollback(op, created)
		return Result{}, newOpError(op, src.ID(), "", err)
	}

	res := Result{Created: ids(nodes)}
	if !e.keepOriginal {
		if err := e.doc.Remove(src); err != nil {
			// Removing the group takes the new layers with it.
			e.rollback(op, []scene.Node{group})
			return Result{}, newOpError(op, src.ID(), "", err)
		}
		res.Removed = []string{src.ID()}
	}
	e.doc.SetSelection(created)
	e.doc.ScrollIntoView(created)
	e.log.Info("%s: created %d layers from %s", op, len(nodes), src.ID())
	return res, nil
}

// stackLines places each line below the previous one.
func (e *Engine) stackLines(src scene.TextNode, nodes []scene.TextNode, _ []richtext.Fragment) {
	x, y := src.X(), src.Y()
	for _, n := range nodes {
		n.SetPosition(x, y)
		y += n.Height() + e.lineGap
	}
}

// spreadWords places words left to right on the source's first line. The
// gap between words is a fraction of the preceding word's font size, an
// approximation of the font's own word spacing.
func (e *Engine) spreadWords(src scene.TextNode, nodes []scene.TextNode, frags []richtext.Fragment) {
	widths := make([]float64, len(nodes))
	sizes := make([]float64, len(nodes))
	for i, n := range nodes {
		widths[i] = n.Width()
		if a, err := frags[i].StyleRange(0, frags[i].Len()); err == nil && !a.IsMixed(richtext.FieldFontSize) {
			sizes[i] = a.FontSize
		}
	}
	xs := segment.WordLayout(widths, sizes, e.wordGap, e.fallbackSize)
	for i, n := range nodes {
		n.SetPosition(src.X()+xs[i], src.Y())
	}
}
