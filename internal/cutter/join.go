package cutter

import (
	"context"
	"fmt"

	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/join"
	"github.com/dshills/textcutter/internal/richtext"
	"github.com/dshills/textcutter/internal/scene"
)

// Join merges the selected text layers into the one that comes first in
// reading order. The other layers are removed.
func (e *Engine) Join(ctx context.Context, sel []scene.Node, sep join.Separator) (Result, error) {
	op := "join"
	if sep != join.None {
		op = "join-" + sep.String()
	}
	texts, err := allText(op, sel)
	if err != nil {
		return Result{}, err
	}
	if len(texts) < 2 {
		return Result{}, newOpError(op, "", "Select at least two text layers to join.",
			fmt.Errorf("%d text layers selected: %w", len(texts), ErrInsufficientInput))
	}
	if err := checkFonts(op, texts); err != nil {
		return Result{}, err
	}
	if err := checkInstances(op, texts, "Text inside an instance cannot be joined. Detach the instance first."); err != nil {
		return Result{}, err
	}

	ordered := scene.SortByReadingPosition(texts)
	bufs := make([]richtext.Buffer, len(ordered))
	for i, t := range ordered {
		b, err := richtext.Read(t)
		if err != nil {
			return Result{}, newOpError(op, t.ID(), "", err)
		}
		bufs[i] = b
	}
	joined, err := join.Join(bufs, sep)
	if err != nil {
		return Result{}, newOpError(op, "", "", err)
	}

	dest := ordered[0]
	keys := fonts.CollectRanges(joined.Ranges)
	if bufs[0].IsEmpty() {
		keys.Add(e.defaultFont)
	}
	if err := e.loadFonts(ctx, op, keys); err != nil {
		return Result{}, err
	}

	if err := e.write(ctx, dest, joined); err != nil {
		return Result{}, newOpError(op, dest.ID(), "", err)
	}
	rest := ordered[1:]
	for _, t := range rest {
		if err := e.doc.Remove(t); err != nil {
			return Result{}, newOpError(op, t.ID(), "", err)
		}
	}
	e.doc.SetSelection([]scene.Node{dest})
	e.doc.ScrollIntoView([]scene.Node{dest})
	e.log.Info("%s: merged %d layers into %s", op, len(ordered), dest.ID())

	return Result{
		Status:   fmt.Sprintf("Joined %d layers.", len(ordered)),
		Modified: []string{dest.ID()},
		Removed:  ids(rest),
	}, nil
}
