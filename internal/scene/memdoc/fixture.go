package memdoc

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/richtext"
	"github.com/dshills/textcutter/internal/scene"
)

// fixture is the YAML form of a document.
type fixture struct {
	Fonts     []fixtureFont `yaml:"fonts,omitempty"`
	Pages     []fixtureNode `yaml:"pages"`
	Selection []string      `yaml:"selection,omitempty"`
}

type fixtureFont struct {
	Family string `yaml:"family"`
	Style  string `yaml:"style"`
}

type fixtureNode struct {
	ID         string        `yaml:"id,omitempty"`
	Name       string        `yaml:"name,omitempty"`
	Type       string        `yaml:"type,omitempty"`
	X          float64       `yaml:"x,omitempty"`
	Y          float64       `yaml:"y,omitempty"`
	Width      float64       `yaml:"width,omitempty"`
	Height     float64       `yaml:"height,omitempty"`
	Characters string        `yaml:"characters,omitempty"`
	Rendered   string        `yaml:"rendered,omitempty"`
	Style      *fixtureStyle `yaml:"style,omitempty"`
	Runs       []fixtureRun  `yaml:"runs,omitempty"`
	Children   []fixtureNode `yaml:"children,omitempty"`
}

type fixtureRun struct {
	Start int          `yaml:"start"`
	End   int          `yaml:"end"`
	Style fixtureStyle `yaml:"style"`
}

type fixtureUnit struct {
	Value float64 `yaml:"value,omitempty"`
	Unit  string  `yaml:"unit"`
}

// fixtureStyle lists formatting overrides. Zero fields keep the inherited
// value.
type fixtureStyle struct {
	FontFamily     string       `yaml:"fontFamily,omitempty"`
	FontStyle      string       `yaml:"fontStyle,omitempty"`
	FontSize       float64      `yaml:"fontSize,omitempty"`
	TextCase       string       `yaml:"textCase,omitempty"`
	TextDecoration string       `yaml:"textDecoration,omitempty"`
	LetterSpacing  *fixtureUnit `yaml:"letterSpacing,omitempty"`
	LineHeight     *fixtureUnit `yaml:"lineHeight,omitempty"`
	Fill           string       `yaml:"fill,omitempty"`
	FillOpacity    *float64     `yaml:"fillOpacity,omitempty"`
	TextStyleID    string       `yaml:"textStyleId,omitempty"`
	FillStyleID    string       `yaml:"fillStyleId,omitempty"`
}

// apply returns base with the overrides in s.
func (s *fixtureStyle) apply(base richtext.Attributes) (richtext.Attributes, error) {
	a := base.Clone()
	if s == nil {
		return a, nil
	}
	if s.FontFamily != "" {
		a.FontName.Family = s.FontFamily
	}
	if s.FontStyle != "" {
		a.FontName.Style = s.FontStyle
	}
	if s.FontSize > 0 {
		a.FontSize = s.FontSize
	}
	if s.TextCase != "" {
		a.TextCase = richtext.TextCase(s.TextCase)
	}
	if s.TextDecoration != "" {
		a.TextDecoration = richtext.TextDecoration(s.TextDecoration)
	}
	if s.LetterSpacing != nil {
		a.LetterSpacing = richtext.LetterSpacing{Value: s.LetterSpacing.Value, Unit: richtext.Unit(s.LetterSpacing.Unit)}
	}
	if s.LineHeight != nil {
		a.LineHeight = richtext.LineHeight{Value: s.LineHeight.Value, Unit: richtext.Unit(s.LineHeight.Unit)}
	}
	if s.Fill != "" {
		c, err := colorful.Hex(s.Fill)
		if err != nil {
			return a, fmt.Errorf("fill %q: %w", s.Fill, err)
		}
		opacity := 1.0
		if s.FillOpacity != nil {
			opacity = *s.FillOpacity
		}
		a.Fills = []richtext.Paint{{
			Type:    "SOLID",
			Color:   richtext.Color{R: c.R, G: c.G, B: c.B, A: 1},
			Opacity: opacity,
			Visible: true,
		}}
	}
	if s.TextStyleID != "" {
		a.TextStyleID = s.TextStyleID
	}
	if s.FillStyleID != "" {
		a.FillStyleID = s.FillStyleID
	}
	return a, nil
}

// styleOf returns the full fixture form of a.
func styleOf(a richtext.Attributes) fixtureStyle {
	s := fixtureStyle{
		FontFamily:     a.FontName.Family,
		FontStyle:      a.FontName.Style,
		FontSize:       a.FontSize,
		TextCase:       string(a.TextCase),
		TextDecoration: string(a.TextDecoration),
		LetterSpacing:  &fixtureUnit{Value: a.LetterSpacing.Value, Unit: string(a.LetterSpacing.Unit)},
		LineHeight:     &fixtureUnit{Value: a.LineHeight.Value, Unit: string(a.LineHeight.Unit)},
		TextStyleID:    a.TextStyleID,
		FillStyleID:    a.FillStyleID,
	}
	if len(a.Fills) > 0 {
		p := a.Fills[0]
		s.Fill = colorful.Color{R: p.Color.R, G: p.Color.G, B: p.Color.B}.Hex()
		if p.Opacity != 1 {
			op := p.Opacity
			s.FillOpacity = &op
		}
	}
	return s
}

// Load reads a YAML document.
func Load(r io.Reader, opts ...Option) (*Document, error) {
	var f fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	keys := make([]fonts.Key, 0, len(f.Fonts))
	for _, ff := range f.Fonts {
		keys = append(keys, fonts.Key{Family: ff.Family, Style: ff.Style})
	}
	d := New(append(opts, WithFonts(keys...))...)

	// New made an empty first page; fixtures supply their own.
	if len(f.Pages) > 0 {
		d.root.children = nil
		delete(d.nodes, d.current.id)
		d.current = nil
	}
	for _, fp := range f.Pages {
		p := d.newNode(fp.ID, fp.Name, scene.TypePage)
		p.attach(d.root, -1)
		if d.current == nil {
			d.current = p
		}
		for _, c := range fp.Children {
			if err := d.loadNode(p, c); err != nil {
				return nil, err
			}
		}
	}

	sel, err := d.LookupAll(f.Selection...)
	if err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	d.SetSelection(sel)
	return d, nil
}

// LoadFile reads a YAML document from path.
func LoadFile(path string, opts ...Option) (*Document, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document %s: %w", path, err)
	}
	defer fh.Close()
	return Load(fh, opts...)
}

func (d *Document) loadNode(parent *Node, fn fixtureNode) error {
	if _, dup := d.nodes[fn.ID]; dup && fn.ID != "" {
		return fmt.Errorf("duplicate node id %q", fn.ID)
	}
	typ := scene.NodeType(fn.Type)
	if typ == "" {
		typ = scene.TypeFrame
		if fn.Characters != "" {
			typ = scene.TypeText
		}
	}

	if typ != scene.TypeText {
		n := d.newNode(fn.ID, fn.Name, typ)
		n.x, n.y, n.width, n.height = fn.X, fn.Y, fn.Width, fn.Height
		n.attach(parent, -1)
		for _, c := range fn.Children {
			if err := d.loadNode(n, c); err != nil {
				return err
			}
		}
		return nil
	}

	base, err := fn.Style.apply(d.defaults)
	if err != nil {
		return fmt.Errorf("node %s: %w", fn.ID, err)
	}
	t := d.newText(fn.ID, fn.Name)
	t.x, t.y = fn.X, fn.Y
	t.chars = []rune(fn.Characters)
	t.styles = make([]richtext.Attributes, len(t.chars))
	for i := range t.styles {
		t.styles[i] = base.Clone()
	}
	for _, r := range fn.Runs {
		if r.Start < 0 || r.End > len(t.chars) || r.Start >= r.End {
			return fmt.Errorf("node %s run [%d:%d): %w", t.id, r.Start, r.End, richtext.ErrRangeInvalid)
		}
		for i := r.Start; i < r.End; i++ {
			a, err := r.Style.apply(t.styles[i])
			if err != nil {
				return fmt.Errorf("node %s: %w", t.id, err)
			}
			t.styles[i] = a
		}
	}
	if t.name == "" {
		t.name = defaultName(fn.Characters)
	}
	t.attach(parent, -1)
	return nil
}

// Save writes the document as YAML. Text formatting is written as
// coalesced runs with full styles.
func (d *Document) Save(w io.Writer) error {
	var f fixture
	d.mu.Lock()
	for k := range d.installed {
		f.Fonts = append(f.Fonts, fixtureFont{Family: k.Family, Style: k.Style})
	}
	d.mu.Unlock()
	sortFonts(f.Fonts)

	for _, p := range d.Pages() {
		fp := fixtureNode{ID: p.id, Name: p.name}
		for _, c := range p.children {
			fp.Children = append(fp.Children, d.saveNode(c))
		}
		f.Pages = append(f.Pages, fp)
	}
	for _, s := range d.selection {
		f.Selection = append(f.Selection, s.ID())
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the document to path.
func (d *Document) SaveFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := d.Save(fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

func (d *Document) saveNode(n scene.Node) fixtureNode {
	fn := fixtureNode{
		ID:     n.ID(),
		Name:   n.Name(),
		Type:   string(n.Type()),
		X:      n.X(),
		Y:      n.Y(),
		Width:  n.Width(),
		Height: n.Height(),
	}
	switch v := n.(type) {
	case *Text:
		fn.Characters = v.Characters()
		if r := v.Rendered(); r != fn.Characters {
			fn.Rendered = r
		}
		for _, r := range v.Buffer().Ranges {
			fn.Runs = append(fn.Runs, fixtureRun{Start: r.Start, End: r.End, Style: styleOf(r.Attributes)})
		}
	case *Node:
		for _, c := range v.children {
			fn.Children = append(fn.Children, d.saveNode(c))
		}
	}
	return fn
}

func sortFonts(fs []fixtureFont) {
	slices.SortFunc(fs, func(a, b fixtureFont) int {
		if c := strings.Compare(a.Family, b.Family); c != 0 {
			return c
		}
		return strings.Compare(a.Style, b.Style)
	})
}
