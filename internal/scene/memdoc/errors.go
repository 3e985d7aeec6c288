package memdoc

import "errors"

// Errors returned by document operations.
var (
	// ErrFontNotInstalled indicates a font load for a font the document lacks.
	ErrFontNotInstalled = errors.New("font not installed")

	// ErrFontNotLoaded indicates a styled write with a font that was not loaded.
	ErrFontNotLoaded = errors.New("font not loaded")

	// ErrNodeRemoved indicates an operation on a removed node.
	ErrNodeRemoved = errors.New("node has been removed")

	// ErrForeignNode indicates a node that does not belong to this document.
	ErrForeignNode = errors.New("node belongs to another document")

	// ErrNotContainer indicates a parent that cannot hold children.
	ErrNotContainer = errors.New("node cannot have children")

	// ErrNodeNotFound indicates an unknown node id.
	ErrNodeNotFound = errors.New("node not found")
)
