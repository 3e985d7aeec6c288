package memdoc

import (
	"slices"

	"github.com/dshills/textcutter/internal/scene"
)

// Node is a non-text node: page, frame, group, component or instance.
type Node struct {
	doc      *Document
	id       string
	name     string
	typ      scene.NodeType
	parent   *Node
	self     scene.Node // the outermost value wrapping this node
	children []scene.Node
	removed  bool

	x, y          float64
	width, height float64
}

// ID implements scene.Node.
func (n *Node) ID() string { return n.id }

// Name implements scene.Node.
func (n *Node) Name() string { return n.name }

// Type implements scene.Node.
func (n *Node) Type() scene.NodeType { return n.typ }

// Parent implements scene.Node.
func (n *Node) Parent() scene.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.self
}

// X implements scene.Node.
func (n *Node) X() float64 { return n.x }

// Y implements scene.Node.
func (n *Node) Y() float64 { return n.y }

// Width implements scene.Node.
func (n *Node) Width() float64 { return n.width }

// Height implements scene.Node.
func (n *Node) Height() float64 { return n.height }

// SetPosition implements scene.Node.
func (n *Node) SetPosition(x, y float64) {
	n.x, n.y = x, y
}

// SetName renames the node.
func (n *Node) SetName(name string) {
	n.name = name
}

// Children returns the node's children in order.
func (n *Node) Children() []scene.Node {
	return slices.Clone(n.children)
}

// Removed reports whether the node has been removed from the document.
func (n *Node) Removed() bool {
	return n.removed
}

func (n *Node) isContainer() bool {
	return n.typ != scene.TypeText
}

func (n *Node) indexOf(child scene.Node) int {
	return slices.IndexFunc(n.children, func(c scene.Node) bool { return c.ID() == child.ID() })
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n.self); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

func (n *Node) attach(parent *Node, at int) {
	n.detach()
	n.parent = parent
	if at < 0 || at > len(parent.children) {
		parent.children = append(parent.children, n.self)
		return
	}
	parent.children = slices.Insert(parent.children, at, n.self)
}
