package memdoc

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/richtext"
	"github.com/dshills/textcutter/internal/scene"
)

// Document is an in-memory scene.Document.
//
// Font state is guarded by a mutex because fonts load concurrently. Node
// tree operations are not synchronized; a document serves one request at a
// time.
type Document struct {
	root    *Node
	current *Node
	nodes   map[string]scene.Node

	defaults richtext.Attributes

	mu        sync.Mutex
	installed map[fonts.Key]bool
	loaded    map[fonts.Key]bool
	loads     map[fonts.Key]int
	writes    int

	selection []scene.Node
	viewport  []scene.Node
}

// Option configures a Document.
type Option func(*Document)

// WithFonts installs fonts in the document.
func WithFonts(keys ...fonts.Key) Option {
	return func(d *Document) {
		for _, k := range keys {
			d.installed[k] = true
		}
	}
}

// WithDefaultAttributes sets the formatting of newly created text.
func WithDefaultAttributes(a richtext.Attributes) Option {
	return func(d *Document) {
		d.defaults = a.Clone()
	}
}

// New creates a document with a single empty page. The default font is
// installed.
func New(opts ...Option) *Document {
	d := &Document{
		nodes:     make(map[string]scene.Node),
		defaults:  richtext.DefaultAttributes(),
		installed: make(map[fonts.Key]bool),
		loaded:    make(map[fonts.Key]bool),
		loads:     make(map[fonts.Key]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.installed[fonts.KeyOf(d.defaults.FontName)] = true

	d.root = d.newNode("", "Document", scene.TypeDocument)
	d.current = d.AddPage("Page 1")
	return d
}

// Defaults returns the formatting of newly created text.
func (d *Document) Defaults() richtext.Attributes {
	return d.defaults.Clone()
}

// AddPage appends a page to the document.
func (d *Document) AddPage(name string) *Node {
	p := d.newNode("", name, scene.TypePage)
	p.attach(d.root, -1)
	return p
}

// CurrentPage returns the page new nodes are created on by default.
func (d *Document) CurrentPage() *Node {
	return d.current
}

// Pages returns every page.
func (d *Document) Pages() []*Node {
	var out []*Node
	for _, c := range d.root.children {
		if p, ok := c.(*Node); ok {
			out = append(out, p)
		}
	}
	return out
}

// AddContainer creates a frame, group, component or instance under parent.
// A nil parent means the current page.
func (d *Document) AddContainer(parent scene.Node, typ scene.NodeType, name string, x, y, w, h float64) (*Node, error) {
	p, err := d.container(parent)
	if err != nil {
		return nil, err
	}
	n := d.newNode("", name, typ)
	n.x, n.y, n.width, n.height = x, y, w, h
	n.attach(p, -1)
	return n, nil
}

// AddText creates a text node under parent with every character formatted
// as attrs. It bypasses font loading and is meant for building documents.
func (d *Document) AddText(parent scene.Node, text string, attrs richtext.Attributes, x, y float64) (*Text, error) {
	p, err := d.container(parent)
	if err != nil {
		return nil, err
	}
	t := d.newText("", "")
	t.x, t.y = x, y
	t.chars = []rune(text)
	t.styles = make([]richtext.Attributes, len(t.chars))
	for i := range t.styles {
		t.styles[i] = attrs.Clone()
	}
	if t.name == "" {
		t.name = defaultName(text)
	}
	t.attach(p, -1)
	return t, nil
}

// Restyle overwrites the formatting of [start, end) in t without font
// checks. It is meant for building documents.
func (d *Document) Restyle(t *Text, start, end int, attrs richtext.Attributes) error {
	if start < 0 || start > end || end > len(t.chars) {
		return fmt.Errorf("restyle [%d:%d): %w", start, end, richtext.ErrRangeInvalid)
	}
	for i := start; i < end; i++ {
		t.styles[i] = attrs.Clone()
	}
	return nil
}

// Lookup returns the node with id.
func (d *Document) Lookup(id string) (scene.Node, error) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNodeNotFound)
	}
	return n, nil
}

// LookupAll resolves ids in order.
func (d *Document) LookupAll(ids ...string) ([]scene.Node, error) {
	out := make([]scene.Node, 0, len(ids))
	for _, id := range ids {
		n, err := d.Lookup(id)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Walk returns every live node of the current page in tree order, the page
// excluded.
func (d *Document) Walk() []scene.Node {
	var out []scene.Node
	var visit func(n *Node)
	visit = func(n *Node) {
		for _, c := range n.children {
			out = append(out, c)
			if b, err := d.base(c); err == nil {
				visit(b)
			}
		}
	}
	visit(d.current)
	return out
}

// Selection returns the current selection.
func (d *Document) Selection() []scene.Node {
	return slices.Clone(d.selection)
}

// Viewport returns the nodes last scrolled into view.
func (d *Document) Viewport() []scene.Node {
	return slices.Clone(d.viewport)
}

// InstallFont makes key loadable.
func (d *Document) InstallFont(key fonts.Key) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.installed[key] = true
}

// IsInstalled reports whether key can be loaded.
func (d *Document) IsInstalled(key fonts.Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.installed[key]
}

// IsLoaded reports whether key has been loaded.
func (d *Document) IsLoaded(key fonts.Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded[key]
}

// LoadCount returns how many times key was requested.
func (d *Document) LoadCount(key fonts.Key) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loads[key]
}

// Writes returns the number of styled writes performed on text nodes.
func (d *Document) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// LoadFont implements fonts.Loader.
func (d *Document) LoadFont(ctx context.Context, key fonts.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loads[key]++
	if !d.installed[key] {
		return fmt.Errorf("%s: %w", key, ErrFontNotInstalled)
	}
	d.loaded[key] = true
	return nil
}

// CreateText implements scene.Document.
func (d *Document) CreateText(ctx context.Context, parent scene.Node) (scene.TextNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := d.container(parent)
	if err != nil {
		return nil, err
	}
	t := d.newText("", "Text")
	t.autoName = true
	t.attach(p, -1)
	return t, nil
}

// Clone implements scene.Document. The copy is placed right after the
// original.
func (d *Document) Clone(ctx context.Context, n scene.TextNode) (scene.TextNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, ok := n.(*Text)
	if !ok || src.doc != d {
		return nil, ErrForeignNode
	}
	if src.removed {
		return nil, ErrNodeRemoved
	}
	t := d.newText("", src.name)
	t.x, t.y = src.x, src.y
	t.chars = slices.Clone(src.chars)
	t.styles = make([]richtext.Attributes, len(src.styles))
	for i, a := range src.styles {
		t.styles[i] = a.Clone()
	}
	at := -1
	if src.parent != nil {
		at = src.parent.indexOf(src) + 1
		t.attach(src.parent, at)
	}
	return t, nil
}

// AppendChild implements scene.Document.
func (d *Document) AppendChild(parent, child scene.Node) error {
	p, err := d.container(parent)
	if err != nil {
		return err
	}
	c, err := d.base(child)
	if err != nil {
		return err
	}
	for a := p; a != nil; a = a.parent {
		if a == c {
			return fmt.Errorf("append %s under its own descendant: %w", c.id, ErrNotContainer)
		}
	}
	c.attach(p, -1)
	return nil
}

// Remove implements scene.Document.
func (d *Document) Remove(n scene.Node) error {
	b, err := d.base(n)
	if err != nil {
		return err
	}
	b.detach()
	d.markRemoved(b)
	d.selection = slices.DeleteFunc(d.selection, func(s scene.Node) bool { return s.ID() == b.id })
	return nil
}

// Group implements scene.Document. The group is inserted where the first
// node was and spans the nodes' bounding box.
func (d *Document) Group(nodes []scene.Node, parent scene.Node) (scene.Node, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("group of no nodes: %w", richtext.ErrRangeInvalid)
	}
	p, err := d.container(parent)
	if err != nil {
		return nil, err
	}
	members := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		b, err := d.base(n)
		if err != nil {
			return nil, err
		}
		members = append(members, b)
	}

	g := d.newNode("", "Group", scene.TypeGroup)
	at := -1
	if members[0].parent == p {
		at = p.indexOf(members[0].self)
	}
	g.attach(p, at)

	minX, minY := nodes[0].X(), nodes[0].Y()
	maxX, maxY := minX+nodes[0].Width(), minY+nodes[0].Height()
	for i, m := range members {
		n := nodes[i]
		minX, minY = min(minX, n.X()), min(minY, n.Y())
		maxX, maxY = max(maxX, n.X()+n.Width()), max(maxY, n.Y()+n.Height())
		m.attach(g, -1)
	}
	g.x, g.y, g.width, g.height = minX, minY, maxX-minX, maxY-minY
	return g, nil
}

// SetSelection implements scene.Document.
func (d *Document) SetSelection(nodes []scene.Node) {
	d.selection = slices.Clone(nodes)
}

// ScrollIntoView implements scene.Document.
func (d *Document) ScrollIntoView(nodes []scene.Node) {
	d.viewport = slices.Clone(nodes)
}

func (d *Document) newNode(id, name string, typ scene.NodeType) *Node {
	if id == "" {
		id = uuid.NewString()
	}
	n := &Node{doc: d, id: id, name: name, typ: typ}
	n.self = n
	d.nodes[id] = n
	return n
}

func (d *Document) newText(id, name string) *Text {
	if id == "" {
		id = uuid.NewString()
	}
	t := &Text{Node: Node{doc: d, id: id, name: name, typ: scene.TypeText}}
	t.self = t
	d.nodes[id] = t
	return t
}

// base returns the tree node behind n.
func (d *Document) base(n scene.Node) (*Node, error) {
	var b *Node
	switch v := n.(type) {
	case *Node:
		b = v
	case *Text:
		b = &v.Node
	default:
		return nil, ErrForeignNode
	}
	if b == nil || b.doc != d {
		return nil, ErrForeignNode
	}
	if b.removed {
		return nil, fmt.Errorf("%s: %w", b.id, ErrNodeRemoved)
	}
	return b, nil
}

// container resolves parent to a node that can hold children. A nil parent
// means the current page.
func (d *Document) container(parent scene.Node) (*Node, error) {
	if parent == nil {
		return d.current, nil
	}
	p, err := d.base(parent)
	if err != nil {
		return nil, err
	}
	if !p.isContainer() {
		return nil, fmt.Errorf("%s (%s): %w", p.id, p.typ, ErrNotContainer)
	}
	return p, nil
}

func (d *Document) markRemoved(n *Node) {
	n.removed = true
	for _, c := range n.children {
		if b, err := d.base(c); err == nil {
			d.markRemoved(b)
		}
	}
}

func (d *Document) countWrite() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes++
}

func defaultName(text string) string {
	r := []rune(text)
	if len(r) > 32 {
		r = r[:32]
	}
	return string(r)
}
