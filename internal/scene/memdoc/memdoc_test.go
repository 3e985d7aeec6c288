package memdoc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/richtext"
	"github.com/dshills/textcutter/internal/scene"
)

var (
	roboto = fonts.Key{Family: "Roboto", Style: "Regular"}
	inter  = fonts.Key{Family: "Inter", Style: "Bold"}
)

const sampleFixture = `
fonts:
  - {family: Inter, style: Bold}
pages:
  - id: page-1
    name: Page 1
    children:
      - id: frame
        type: FRAME
        width: 400
        height: 300
        children:
          - id: title
            type: TEXT
            x: 10
            y: 20
            characters: "Hello World"
            style: {fontSize: 16, fill: "#ff0000"}
            runs:
              - {start: 6, end: 11, style: {fontFamily: Inter, fontStyle: Bold, textCase: UPPER}}
selection: [title]
`

func loadSample(t *testing.T) *Document {
	t.Helper()
	d, err := Load(strings.NewReader(sampleFixture))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return d
}

func sampleText(t *testing.T, d *Document) *Text {
	t.Helper()
	n, err := d.Lookup("title")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	return n.(*Text)
}

func TestLoadFixture(t *testing.T) {
	d := loadSample(t)
	txt := sampleText(t, d)

	if txt.Characters() != "Hello World" {
		t.Errorf("expected %q, got %q", "Hello World", txt.Characters())
	}
	if txt.Parent() == nil || txt.Parent().ID() != "frame" {
		t.Errorf("expected parent frame, got %v", txt.Parent())
	}
	a, _ := txt.StyleRange(0, 1)
	if a.FontSize != 16 || a.Fills[0].Color.R != 1 || a.Fills[0].Color.G != 0 {
		t.Errorf("unexpected base style %v %+v", a, a.Fills)
	}
	b, _ := txt.StyleRange(6, 7)
	if b.FontName.Family != "Inter" || b.TextCase != richtext.CaseUpper {
		t.Errorf("unexpected run style %v", b)
	}
	if sel := d.Selection(); len(sel) != 1 || sel[0].ID() != "title" {
		t.Errorf("expected selection [title], got %v", sel)
	}
	if txt.Rendered() != "Hello WORLD" {
		t.Errorf("expected rendered %q, got %q", "Hello WORLD", txt.Rendered())
	}
}

func TestLoadRejectsBadRun(t *testing.T) {
	bad := strings.Replace(sampleFixture, "end: 11", "end: 40", 1)
	if _, err := Load(strings.NewReader(bad)); !errors.Is(err, richtext.ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	d := loadSample(t)
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	d2, err := Load(&buf)
	if err != nil {
		t.Fatalf("reload failed: %v\n%s", err, buf.String())
	}
	a, b := sampleText(t, d).Buffer(), sampleText(t, d2).Buffer()
	if a.Text != b.Text || len(a.Ranges) != len(b.Ranges) {
		t.Fatalf("round trip changed text or runs: %v vs %v", a, b)
	}
	for i := range a.Ranges {
		if !a.Ranges[i].Attributes.Equal(b.Ranges[i].Attributes) {
			t.Errorf("run %d: expected %v, got %v", i, a.Ranges[i], b.Ranges[i])
		}
	}
}

func TestStyleRangeMixed(t *testing.T) {
	txt := sampleText(t, loadSample(t))
	a, err := txt.StyleRange(0, 11)
	if err != nil {
		t.Fatalf("style range failed: %v", err)
	}
	if !a.IsMixed(richtext.FieldFontName) || a.IsMixed(richtext.FieldFontSize) {
		t.Errorf("expected only font name and case mixed, got %s", a.Mixed)
	}
}

func TestWritesRequireLoadedFont(t *testing.T) {
	d := loadSample(t)
	txt := sampleText(t, d)
	a := d.Defaults()
	a.FontName = richtext.FontName{Family: "Inter", Style: "Bold"}

	if err := txt.SetRangeAttributes(0, 2, a); !errors.Is(err, ErrFontNotLoaded) {
		t.Fatalf("expected ErrFontNotLoaded, got %v", err)
	}
	if err := d.LoadFont(context.Background(), inter); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := txt.SetRangeAttributes(0, 2, a); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}
	if d.Writes() != 1 {
		t.Errorf("expected 1 write, got %d", d.Writes())
	}
	if err := txt.SetCharacters("x"); !errors.Is(err, ErrFontNotLoaded) {
		t.Errorf("expected ErrFontNotLoaded for unloaded Roboto, got %v", err)
	}
}

func TestLoadFontNotInstalled(t *testing.T) {
	d := New()
	err := d.LoadFont(context.Background(), fonts.Key{Family: "Nope", Style: "Regular"})
	if !errors.Is(err, ErrFontNotInstalled) {
		t.Errorf("expected ErrFontNotInstalled, got %v", err)
	}
	if err := d.LoadFont(context.Background(), roboto); err != nil {
		t.Errorf("default font should be installed: %v", err)
	}
	if d.LoadCount(roboto) != 1 {
		t.Errorf("expected 1 load, got %d", d.LoadCount(roboto))
	}
}

func TestHasMissingFont(t *testing.T) {
	d := New()
	a := d.Defaults()
	a.FontName = richtext.FontName{Family: "Ghost", Style: "Regular"}
	txt, err := d.AddText(nil, "boo", a, 0, 0)
	if err != nil {
		t.Fatalf("add text failed: %v", err)
	}
	if !txt.HasMissingFont() {
		t.Error("expected missing font")
	}
	d.InstallFont(fonts.Key{Family: "Ghost", Style: "Regular"})
	if txt.HasMissingFont() {
		t.Error("expected no missing font after install")
	}
}

func TestCreateSetCharacters(t *testing.T) {
	d := New()
	ctx := context.Background()
	txt, err := d.CreateText(ctx, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := txt.SetCharacters("abc"); !errors.Is(err, ErrFontNotLoaded) {
		t.Fatalf("expected ErrFontNotLoaded before loading default font, got %v", err)
	}
	if err := d.LoadFont(ctx, roboto); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := txt.SetCharacters("abc"); err != nil {
		t.Fatalf("set characters failed: %v", err)
	}
	if txt.Parent().ID() != d.CurrentPage().ID() {
		t.Errorf("expected text on current page")
	}
	if txt.Width() <= 0 || txt.Height() <= 0 {
		t.Errorf("expected positive size, got %vx%v", txt.Width(), txt.Height())
	}
}

func TestMeasure(t *testing.T) {
	d := New()
	a := d.Defaults()
	a.FontSize = 10
	txt, _ := d.AddText(nil, "ab\nabcd", a, 0, 0)
	// widest line has 4 cells of 0.6em at 10px
	if got := txt.Width(); got != 24 {
		t.Errorf("expected width 24, got %v", got)
	}
	if got := txt.Height(); got != 24 {
		t.Errorf("expected height 24, got %v", got)
	}
	wide, _ := d.AddText(nil, "日本", a, 0, 0)
	if got := wide.Width(); got != 24 {
		t.Errorf("expected wide glyph width 24, got %v", got)
	}
}

func TestCloneGroupRemove(t *testing.T) {
	d := loadSample(t)
	ctx := context.Background()
	txt := sampleText(t, d)
	frame, _ := d.Lookup("frame")

	c, err := d.Clone(ctx, txt)
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}
	if c.Characters() != txt.Characters() || c.Parent().ID() != "frame" {
		t.Errorf("clone mismatch: %q under %v", c.Characters(), c.Parent())
	}
	kids := frame.(*Node).Children()
	if len(kids) != 2 || kids[1].ID() != c.ID() {
		t.Errorf("expected clone right after original, got %v", kids)
	}

	g, err := d.Group([]scene.Node{txt, c}, frame)
	if err != nil {
		t.Fatalf("group failed: %v", err)
	}
	if txt.Parent().ID() != g.ID() || g.Parent().ID() != "frame" {
		t.Errorf("expected text inside group inside frame")
	}
	if g.X() != 10 || g.Y() != 20 {
		t.Errorf("expected group at 10,20 got %v,%v", g.X(), g.Y())
	}

	if err := d.Remove(txt); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if txt.Parent() != nil || !txt.Removed() {
		t.Error("expected removed node to be detached")
	}
	if len(d.Selection()) != 0 {
		t.Errorf("expected removed node dropped from selection, got %v", d.Selection())
	}
	if err := d.Remove(txt); !errors.Is(err, ErrNodeRemoved) {
		t.Errorf("expected ErrNodeRemoved, got %v", err)
	}
	if err := txt.SetCharacters("x"); !errors.Is(err, ErrNodeRemoved) {
		t.Errorf("expected ErrNodeRemoved on write, got %v", err)
	}
}

func TestAppendChildRejectsCycles(t *testing.T) {
	d := New()
	outer, _ := d.AddContainer(nil, scene.TypeFrame, "outer", 0, 0, 10, 10)
	inner, _ := d.AddContainer(outer, scene.TypeFrame, "inner", 0, 0, 10, 10)
	if err := d.AppendChild(inner, outer); err == nil {
		t.Error("expected error moving a node under its descendant")
	}
	txt, _ := d.AddText(nil, "t", d.Defaults(), 0, 0)
	if _, err := d.AddText(txt, "x", d.Defaults(), 0, 0); !errors.Is(err, ErrNotContainer) {
		t.Errorf("expected ErrNotContainer, got %v", err)
	}
}

func TestInstanceGuardOnDocument(t *testing.T) {
	d := New()
	inst, _ := d.AddContainer(nil, scene.TypeInstance, "Button", 0, 0, 100, 40)
	label, _ := d.AddText(inst, "OK", d.Defaults(), 0, 0)
	free, _ := d.AddText(nil, "free", d.Defaults(), 0, 0)
	if !scene.InsideInstance(label) {
		t.Error("expected label inside instance")
	}
	if scene.InsideInstance(free) {
		t.Error("expected free text outside instance")
	}
}

func TestWalk(t *testing.T) {
	d := loadSample(t)
	extra, err := d.AddText(nil, "Footer", richtext.DefaultAttributes(), 0, 400)
	if err != nil {
		t.Fatalf("add text failed: %v", err)
	}

	var got []string
	for _, n := range d.Walk() {
		got = append(got, n.ID())
	}
	want := "frame,title," + extra.ID()
	if strings.Join(got, ",") != want {
		t.Errorf("expected %q, got %q", want, strings.Join(got, ","))
	}

	if err := d.Remove(extra); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if n := len(d.Walk()); n != 2 {
		t.Errorf("expected removed node to be skipped, got %d nodes", n)
	}
}
