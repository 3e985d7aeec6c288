package scene

import (
	"context"

	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/richtext"
)

// NodeType is the kind of a host node.
type NodeType string

// Node types the engine distinguishes.
const (
	TypeDocument  NodeType = "DOCUMENT"
	TypePage      NodeType = "PAGE"
	TypeFrame     NodeType = "FRAME"
	TypeGroup     NodeType = "GROUP"
	TypeComponent NodeType = "COMPONENT"
	TypeInstance  NodeType = "INSTANCE"
	TypeText      NodeType = "TEXT"
)

// Node is any object in the host document.
type Node interface {
	ID() string
	Name() string
	Type() NodeType

	// Parent returns the containing node, or nil for a root or a node that
	// has been removed.
	Parent() Node

	X() float64
	Y() float64
	Width() float64
	Height() float64
	SetPosition(x, y float64)
}

// TextNode is a node holding styled characters.
type TextNode interface {
	Node
	richtext.StyleReader
	richtext.StyleWriter

	// SetCharacters replaces the text. New characters take the formatting
	// of the first existing character.
	SetCharacters(text string) error

	// HasMissingFont reports whether any character uses a font the host
	// does not have.
	HasMissingFont() bool
}

// Document is the mutable host document.
type Document interface {
	fonts.Loader

	// CreateText creates an empty text node appended to parent. The node
	// uses the host's default font, which must be loaded before characters
	// are set.
	CreateText(ctx context.Context, parent Node) (TextNode, error)

	// Clone duplicates a text node next to the original.
	Clone(ctx context.Context, n TextNode) (TextNode, error)

	// AppendChild moves child under parent.
	AppendChild(parent, child Node) error

	// Remove detaches n from the document.
	Remove(n Node) error

	// Group wraps nodes in a new group under parent.
	Group(nodes []Node, parent Node) (Node, error)

	// SetSelection replaces the current selection.
	SetSelection(nodes []Node)

	// ScrollIntoView brings nodes into the viewport.
	ScrollIntoView(nodes []Node)
}

// AsText returns n as a TextNode if it is a text node.
func AsText(n Node) (TextNode, bool) {
	if n == nil || n.Type() != TypeText {
		return nil, false
	}
	t, ok := n.(TextNode)
	return t, ok
}

// Nodes converts a slice of any node type to []Node.
func Nodes[N Node](in []N) []Node {
	out := make([]Node, len(in))
	for i, n := range in {
		out[i] = n
	}
	return out
}
