package cutter

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/join"
	"github.com/dshills/textcutter/internal/richtext"
	"github.com/dshills/textcutter/internal/scene"
	"github.com/dshills/textcutter/internal/scene/memdoc"
)

var inter = fonts.Key{Family: "Inter", Style: "Bold"}

func interAttrs() richtext.Attributes {
	a := richtext.DefaultAttributes()
	a.FontName = richtext.FontName{Family: "Inter", Style: "Bold"}
	a.FontSize = 20
	return a
}

func newDoc(t *testing.T) *memdoc.Document {
	t.Helper()
	return memdoc.New(memdoc.WithFonts(inter))
}

func addText(t *testing.T, d *memdoc.Document, parent scene.Node, text string, x, y float64) *memdoc.Text {
	t.Helper()
	n, err := d.AddText(parent, text, richtext.DefaultAttributes(), x, y)
	if err != nil {
		t.Fatalf("add text failed: %v", err)
	}
	return n
}

func lookupText(t *testing.T, d *memdoc.Document, id string) *memdoc.Text {
	t.Helper()
	n, err := d.Lookup(id)
	if err != nil {
		t.Fatalf("lookup %s failed: %v", id, err)
	}
	return n.(*memdoc.Text)
}

func texts(t *testing.T, d *memdoc.Document, ids []string) []string {
	t.Helper()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = lookupText(t, d, id).Characters()
	}
	return out
}

func TestSplitLines(t *testing.T) {
	d := newDoc(t)
	frame, _ := d.AddContainer(nil, scene.TypeFrame, "Frame", 0, 0, 400, 300)
	src := addText(t, d, frame, "Hello\n\nWorld  ", 10, 20)
	if err := d.Restyle(src, 7, 12, interAttrs()); err != nil {
		t.Fatalf("restyle failed: %v", err)
	}

	e := New(d)
	res, err := e.SplitLines(context.Background(), []scene.Node{src})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if res.NoOp {
		t.Fatal("expected changes")
	}
	if res.Status != "Split into 2 layers." {
		t.Errorf("unexpected status %q", res.Status)
	}
	if diff := cmp.Diff([]string{"Hello", "World"}, texts(t, d, res.Created)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	hello := lookupText(t, d, res.Created[0])
	world := lookupText(t, d, res.Created[1])
	a, _ := world.StyleRange(0, world.Len())
	if a.FontName.Family != "Inter" || a.FontSize != 20 {
		t.Errorf("expected Inter 20, got %v", a)
	}
	h, _ := hello.StyleRange(0, hello.Len())
	if h.FontName.Family != "Roboto" {
		t.Errorf("expected Roboto, got %v", h)
	}

	if hello.X() != 10 || hello.Y() != 20 {
		t.Errorf("expected first line at (10,20), got (%v,%v)", hello.X(), hello.Y())
	}
	if world.Y() != hello.Y()+hello.Height() {
		t.Errorf("expected second line below first, got y=%v", world.Y())
	}

	group := hello.Parent()
	if group == nil || group.Type() != scene.TypeGroup || group.Parent().ID() != frame.ID() {
		t.Errorf("expected lines grouped under frame, got %v", group)
	}
	if !src.Removed() {
		t.Error("expected source to be removed")
	}
	if diff := cmp.Diff(res.Created, ids(d.Selection())); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(res.Created, ids(d.Viewport())); diff != "" {
		t.Errorf("viewport mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitLinesKeepOriginal(t *testing.T) {
	d := newDoc(t)
	src := addText(t, d, nil, "a\nb", 0, 0)

	e := New(d, WithKeepOriginal(true), WithLineGap(4))
	res, err := e.SplitLines(context.Background(), []scene.Node{src})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if src.Removed() || len(res.Removed) != 0 {
		t.Error("expected source to be kept")
	}
	a := lookupText(t, d, res.Created[0])
	b := lookupText(t, d, res.Created[1])
	if b.Y() != a.Y()+a.Height()+4 {
		t.Errorf("expected line gap of 4, got y=%v", b.Y())
	}
}

func TestSplitNoOp(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		split func(*Engine, context.Context, []scene.Node) (Result, error)
	}{
		{"single line", "Hello World", (*Engine).SplitLines},
		{"blank lines", "\n  \nHello\n\n", (*Engine).SplitLines},
		{"single word", "  Hello\n", (*Engine).SplitWords},
		{"empty", "", (*Engine).SplitWords},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDoc(t)
			src := addText(t, d, nil, tt.text, 0, 0)
			res, err := tt.split(New(d), context.Background(), []scene.Node{src})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.NoOp {
				t.Errorf("expected no-op, got %+v", res)
			}
			if d.Writes() != 0 || src.Removed() {
				t.Errorf("expected untouched document, got %d writes", d.Writes())
			}
		})
	}
}

func TestSplitWords(t *testing.T) {
	d := newDoc(t)
	src := addText(t, d, nil, "ab  cd\nef", 10, 5)
	base := richtext.DefaultAttributes()
	base.FontSize = 10
	if err := d.Restyle(src, 0, src.Len(), base); err != nil {
		t.Fatalf("restyle failed: %v", err)
	}

	res, err := New(d).SplitWords(context.Background(), []scene.Node{src})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if res.Status != "Split into 3 words." {
		t.Errorf("unexpected status %q", res.Status)
	}
	if diff := cmp.Diff([]string{"ab", "cd", "ef"}, texts(t, d, res.Created)); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}

	ab := lookupText(t, d, res.Created[0])
	cd := lookupText(t, d, res.Created[1])
	ef := lookupText(t, d, res.Created[2])
	if ab.X() != 10 || ab.Y() != 5 || cd.Y() != 5 {
		t.Errorf("expected words on y=5 starting at x=10, got (%v,%v)", ab.X(), ab.Y())
	}
	wantCD := 10 + ab.Width() + 0.25*10
	if cd.X() != wantCD {
		t.Errorf("expected cd at x=%v, got %v", wantCD, cd.X())
	}
	if ef.X() != wantCD+cd.Width()+0.25*10 {
		t.Errorf("unexpected ef position %v", ef.X())
	}
}

func TestSplitWordsMixedSize(t *testing.T) {
	d := newDoc(t)
	src := addText(t, d, nil, "ab cd", 0, 0)
	if err := d.Restyle(src, 1, 2, interAttrs()); err != nil {
		t.Fatalf("restyle failed: %v", err)
	}

	res, err := New(d, WithWordGap(1), WithFallbackFontSize(7)).SplitWords(context.Background(), []scene.Node{src})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	ab := lookupText(t, d, res.Created[0])
	cd := lookupText(t, d, res.Created[1])
	if cd.X() != ab.Width()+7 {
		t.Errorf("expected fallback gap of 7, got x=%v", cd.X())
	}
}

func TestSplitPreconditions(t *testing.T) {
	d := newDoc(t)
	frame, _ := d.AddContainer(nil, scene.TypeFrame, "Frame", 0, 0, 100, 100)
	a := addText(t, d, nil, "a\nb", 0, 0)
	b := addText(t, d, nil, "c\nd", 0, 0)

	tests := []struct {
		name string
		sel  []scene.Node
		msg  string
	}{
		{"empty", nil, "Select a single node."},
		{"two nodes", []scene.Node{a, b}, "Select a single node."},
		{"not text", []scene.Node{frame}, "Select a single text node."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(d).SplitLines(context.Background(), tt.sel)
			if !errors.Is(err, ErrPreconditionFailed) {
				t.Fatalf("expected ErrPreconditionFailed, got %v", err)
			}
			if Message(err) != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, Message(err))
			}
		})
	}
	if d.Writes() != 0 {
		t.Errorf("expected no writes, got %d", d.Writes())
	}
}

func TestSplitMissingFont(t *testing.T) {
	d := newDoc(t)
	src := addText(t, d, nil, "a\nb", 0, 0)
	ghost := richtext.DefaultAttributes()
	ghost.FontName = richtext.FontName{Family: "Ghost", Style: "Regular"}
	if err := d.Restyle(src, 2, 3, ghost); err != nil {
		t.Fatalf("restyle failed: %v", err)
	}

	_, err := New(d).SplitLines(context.Background(), []scene.Node{src})
	if !errors.Is(err, ErrFontUnavailable) {
		t.Fatalf("expected ErrFontUnavailable, got %v", err)
	}
	if Message(err) != "Whoops, you need to have the font for this layer installed." {
		t.Errorf("unexpected message %q", Message(err))
	}
	if d.Writes() != 0 || src.Removed() {
		t.Error("expected untouched document")
	}
}

func TestSplitLoadFailureWritesNothing(t *testing.T) {
	d := newDoc(t)
	src := addText(t, d, nil, "a\nb", 0, 0)
	page := d.CurrentPage()
	before := len(page.Children())

	e := New(d, WithDefaultFont(fonts.Key{Family: "Ghost", Style: "Regular"}))
	_, err := e.SplitLines(context.Background(), []scene.Node{src})
	if !errors.Is(err, ErrFontUnavailable) {
		t.Fatalf("expected ErrFontUnavailable, got %v", err)
	}
	var ue *fonts.UnavailableError
	if !errors.As(err, &ue) || ue.Key.Family != "Ghost" {
		t.Errorf("expected unavailable Ghost font, got %v", err)
	}
	if d.Writes() != 0 {
		t.Errorf("expected no writes, got %d", d.Writes())
	}
	if len(page.Children()) != before {
		t.Errorf("expected no new nodes, got %d children", len(page.Children()))
	}
}

func TestSplitRemovedSource(t *testing.T) {
	d := newDoc(t)
	src := addText(t, d, nil, "a\nb", 0, 0)

	e := New(d)
	if _, err := e.SplitLines(context.Background(), []scene.Node{src}); err != nil {
		t.Fatalf("split failed: %v", err)
	}
	live := len(d.Walk())
	writes := d.Writes()

	// The host still resolves the old id after the first split.
	stale, err := d.Lookup(src.ID())
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	_, err = e.SplitLines(context.Background(), []scene.Node{stale})
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
	if Message(err) != "The selected layer no longer exists." {
		t.Errorf("unexpected message %q", Message(err))
	}
	if len(d.Walk()) != live {
		t.Errorf("expected %d live nodes, got %d", live, len(d.Walk()))
	}
	if d.Writes() != writes {
		t.Errorf("expected %d writes, got %d", writes, d.Writes())
	}
}

func TestSplitInsideInstance(t *testing.T) {
	d := newDoc(t)
	inst, _ := d.AddContainer(nil, scene.TypeInstance, "Button", 0, 0, 100, 40)
	frame, _ := d.AddContainer(inst, scene.TypeFrame, "Inner", 0, 0, 100, 40)
	src := addText(t, d, frame, "a b", 0, 0)

	_, err := New(d).SplitWords(context.Background(), []scene.Node{src})
	if !errors.Is(err, ErrInstanceRestricted) {
		t.Fatalf("expected ErrInstanceRestricted, got %v", err)
	}
	var oe *OperationError
	if !errors.As(err, &oe) || oe.Node != src.ID() || oe.Op != "split-words" {
		t.Errorf("unexpected operation error %+v", oe)
	}
	if d.Writes() != 0 {
		t.Errorf("expected no writes, got %d", d.Writes())
	}
}

func TestSplitCanceled(t *testing.T) {
	d := newDoc(t)
	src := addText(t, d, nil, "a\nb", 0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(d).SplitLines(ctx, []scene.Node{src})
	if err == nil {
		t.Fatal("expected error")
	}
	if d.Writes() != 0 || src.Removed() {
		t.Error("expected untouched document")
	}
}

func TestJoin(t *testing.T) {
	d := newDoc(t)
	b := addText(t, d, nil, "Beta", 0, 10)
	a := addText(t, d, nil, "Alpha", 50, 5)
	c := addText(t, d, nil, "Gamma", 0, 20)
	if err := d.Restyle(b, 0, 4, interAttrs()); err != nil {
		t.Fatalf("restyle failed: %v", err)
	}

	res, err := New(d).Join(context.Background(), []scene.Node{b, a, c}, join.Space)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if res.Status != "Joined 3 layers." {
		t.Errorf("unexpected status %q", res.Status)
	}
	if a.Characters() != "Alpha Beta Gamma" {
		t.Errorf("expected %q, got %q", "Alpha Beta Gamma", a.Characters())
	}
	if diff := cmp.Diff([]string{a.ID()}, res.Modified); diff != "" {
		t.Errorf("modified mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{b.ID(), c.ID()}, res.Removed); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
	if !b.Removed() || !c.Removed() || a.Removed() {
		t.Error("expected b and c removed, a kept")
	}

	attrs, _ := a.StyleRange(6, 10)
	if attrs.FontName.Family != "Inter" {
		t.Errorf("expected Beta in Inter, got %v", attrs)
	}
	sep, _ := a.StyleRange(5, 6)
	if sep.FontName.Family != "Roboto" {
		t.Errorf("expected separator in destination style, got %v", sep)
	}
	if sel := d.Selection(); len(sel) != 1 || sel[0].ID() != a.ID() {
		t.Errorf("expected destination selected, got %v", sel)
	}
}

func TestJoinSameRowOrdersByX(t *testing.T) {
	d := newDoc(t)
	right := addText(t, d, nil, "right", 100, 0)
	left := addText(t, d, nil, "left", 0, 0)

	if _, err := New(d).Join(context.Background(), []scene.Node{right, left}, join.None); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if left.Characters() != "leftright" {
		t.Errorf("expected %q, got %q", "leftright", left.Characters())
	}
}

func TestJoinErrors(t *testing.T) {
	d := newDoc(t)
	frame, _ := d.AddContainer(nil, scene.TypeFrame, "Frame", 0, 0, 100, 100)
	a := addText(t, d, nil, "a", 0, 0)
	b := addText(t, d, nil, "b", 0, 10)
	inst, _ := d.AddContainer(nil, scene.TypeInstance, "Card", 0, 0, 100, 100)
	locked := addText(t, d, inst, "c", 0, 20)

	tests := []struct {
		name string
		sel  []scene.Node
		want error
	}{
		{"nothing", nil, ErrInsufficientInput},
		{"one", []scene.Node{a}, ErrInsufficientInput},
		{"non text", []scene.Node{a, frame}, ErrPreconditionFailed},
		{"instance", []scene.Node{a, locked}, ErrInstanceRestricted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(d).Join(context.Background(), tt.sel, join.Newline)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if a.Characters() != "a" || b.Removed() {
		t.Error("expected untouched layers")
	}
}

func TestJoinRemovedMember(t *testing.T) {
	d := newDoc(t)
	a := addText(t, d, nil, "a", 0, 0)
	b := addText(t, d, nil, "b", 0, 10)
	c := addText(t, d, nil, "c", 0, 20)
	if err := d.Remove(c); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	_, err := New(d).Join(context.Background(), []scene.Node{a, b, c}, join.Space)
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
	if a.Characters() != "a" || b.Removed() {
		t.Error("expected untouched layers")
	}
	if d.Writes() != 0 {
		t.Errorf("expected no writes, got %d", d.Writes())
	}
}

func TestJoinMissingFont(t *testing.T) {
	d := newDoc(t)
	a := addText(t, d, nil, "a", 0, 0)
	b := addText(t, d, nil, "b", 0, 10)
	ghost := richtext.DefaultAttributes()
	ghost.FontName = richtext.FontName{Family: "Ghost", Style: "Regular"}
	if err := d.Restyle(b, 0, 1, ghost); err != nil {
		t.Fatalf("restyle failed: %v", err)
	}

	_, err := New(d).Join(context.Background(), []scene.Node{a, b}, join.Space)
	if !errors.Is(err, ErrFontUnavailable) {
		t.Fatalf("expected ErrFontUnavailable, got %v", err)
	}
	if Message(err) != "Whoops, you need to have the font for this layer installed." {
		t.Errorf("unexpected message %q", Message(err))
	}
	if d.Writes() != 0 || a.Characters() != "a" || b.Removed() {
		t.Error("expected untouched document")
	}
}

func TestJoinLoadFailureWritesNothing(t *testing.T) {
	d := newDoc(t)
	empty := addText(t, d, nil, "", 0, 0)
	b := addText(t, d, nil, "b", 0, 10)

	e := New(d, WithDefaultFont(fonts.Key{Family: "Ghost", Style: "Regular"}))
	_, err := e.Join(context.Background(), []scene.Node{empty, b}, join.Space)
	if !errors.Is(err, ErrFontUnavailable) {
		t.Fatalf("expected ErrFontUnavailable, got %v", err)
	}
	var ue *fonts.UnavailableError
	if !errors.As(err, &ue) || ue.Key.Family != "Ghost" {
		t.Errorf("expected unavailable Ghost font, got %v", err)
	}
	if d.Writes() != 0 {
		t.Errorf("expected no writes, got %d", d.Writes())
	}
	if empty.Characters() != "" || b.Removed() {
		t.Error("expected untouched layers")
	}
}

func TestStripBullets(t *testing.T) {
	d := newDoc(t)
	list := addText(t, d, nil, "• Alpha\n• Beta", 0, 0)
	if err := d.Restyle(list, 10, 14, interAttrs()); err != nil {
		t.Fatalf("restyle failed: %v", err)
	}
	plain := addText(t, d, nil, "No markers", 0, 50)

	res, err := New(d).StripBullets(context.Background(), []scene.Node{list, plain})
	if err != nil {
		t.Fatalf("strip failed: %v", err)
	}
	if res.Status != "Removed bullets from 1 layers." {
		t.Errorf("unexpected status %q", res.Status)
	}
	if list.Characters() != "Alpha\nBeta" {
		t.Errorf("expected %q, got %q", "Alpha\nBeta", list.Characters())
	}
	a, _ := list.StyleRange(6, 10)
	if a.FontName.Family != "Inter" {
		t.Errorf("expected Beta to keep Inter, got %v", a)
	}
	b, _ := list.StyleRange(0, 5)
	if b.FontName.Family != "Roboto" {
		t.Errorf("expected Alpha to keep Roboto, got %v", b)
	}
	if plain.Characters() != "No markers" {
		t.Errorf("expected plain layer untouched, got %q", plain.Characters())
	}
}

func TestStripBulletsNoOp(t *testing.T) {
	d := newDoc(t)
	plain := addText(t, d, nil, "- dash stays", 0, 0)

	res, err := New(d).StripBullets(context.Background(), []scene.Node{plain})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.NoOp || res.Status != "No bullets found." {
		t.Errorf("expected no-op, got %+v", res)
	}
	if d.Writes() != 0 {
		t.Errorf("expected no writes, got %d", d.Writes())
	}

	_, err = New(d).StripBullets(context.Background(), nil)
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Errorf("expected ErrPreconditionFailed, got %v", err)
	}
}

func TestStripBulletsMissingFont(t *testing.T) {
	d := newDoc(t)
	list := addText(t, d, nil, "• a\n• b", 0, 0)
	ghost := richtext.DefaultAttributes()
	ghost.FontName = richtext.FontName{Family: "Ghost", Style: "Regular"}
	if err := d.Restyle(list, 6, 7, ghost); err != nil {
		t.Fatalf("restyle failed: %v", err)
	}

	_, err := New(d).StripBullets(context.Background(), []scene.Node{list})
	if !errors.Is(err, ErrFontUnavailable) {
		t.Fatalf("expected ErrFontUnavailable, got %v", err)
	}
	if d.Writes() != 0 || list.Removed() {
		t.Error("expected untouched document")
	}
	if list.Characters() != "• a\n• b" {
		t.Errorf("expected %q, got %q", "• a\n• b", list.Characters())
	}
}

func TestMessageFallback(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrInsufficientInput, "Select at least two text layers to join."},
		{ErrInstanceRestricted, "Layers inside an instance cannot be restructured."},
		{errors.New("boom"), "Something went wrong: boom"},
	}

	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v): expected %q, got %q", tt.err, tt.want, got)
		}
	}
}
