package cutter

import (
	"context"
	"fmt"

	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/richtext"
	"github.com/dshills/textcutter/internal/scene"
)

// StripBullets removes bullet glyphs from each selected text layer in place.
// Formatting of the remaining characters is preserved.
func (e *Engine) StripBullets(ctx context.Context, sel []scene.Node) (Result, error) {
	const op = "strip-bullets"
	if len(sel) == 0 {
		return Result{}, newOpError(op, "", "Select at least one text layer.",
			fmt.Errorf("empty selection: %w", ErrPreconditionFailed))
	}
	texts, err := allText(op, sel)
	if err != nil {
		return Result{}, err
	}
	if err := checkFonts(op, texts); err != nil {
		return Result{}, err
	}

	type edit struct {
		node scene.TextNode
		buf  richtext.Buffer
	}
	var edits []edit
	keys := fonts.NewSet()
	total := 0
	for _, t := range texts {
		src, err := richtext.Read(t)
		if err != nil {
			return Result{}, newOpError(op, t.ID(), "", err)
		}
		out, removed := e.stripper.Strip(src)
		if removed == 0 {
			continue
		}
		edits = append(edits, edit{node: t, buf: out})
		keys.Union(fonts.CollectRanges(src.Ranges))
		keys.Union(fonts.CollectRanges(out.Ranges))
		total += removed
	}
	if len(edits) == 0 {
		return noOp("No bullets found."), nil
	}

	if err := e.loadFonts(ctx, op, keys); err != nil {
		return Result{}, err
	}
	modified := make([]string, 0, len(edits))
	for _, ed := range edits {
		if err := e.write(ctx, ed.node, ed.buf); err != nil {
			return Result{}, newOpError(op, ed.node.ID(), "", err)
		}
		modified = append(modified, ed.node.ID())
	}
	e.log.Info("%s: removed %d bullets from %d layers", op, total, len(edits))
	return Result{
		Status:   fmt.Sprintf("Removed bullets from %d layers.", len(edits)),
		Modified: modified,
	}, nil
}
