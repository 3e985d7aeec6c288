// Package cutter runs textcutter requests against a host document.
//
// An Engine performs one request at a time: split a text layer into one
// layer per line or per word, join several text layers into one, or strip
// bullet glyphs from text layers. Every request receives its selection
// explicitly and returns a Result carrying a single status string.
//
// # Request Phases
//
// Each operation runs in three phases:
//
//  1. Guards: selection cardinality and type, missing fonts, and the
//     instance guard for operations that create or remove layers. A failing
//     guard returns an error before anything is touched.
//  2. Preparation: the source text is read and segmented or composed, and
//     the union of every font the request will write is loaded at once.
//  3. Mutation: new layers are created and populated, or the destination is
//     rewritten. Source layers are removed only after every constructive step
//     has succeeded.
//
// Inputs that need no change (a single line, a single word, no bullets) are
// reported as a no-op Result, not an error.
//
// # Error Handling
//
// Errors wrap one of the package sentinels in an *OperationError:
//
//   - ErrPreconditionFailed: wrong selection size or node type
//   - ErrFontUnavailable: a font could not be loaded
//   - ErrInstanceRestricted: a layer is nested in an instance
//   - ErrInsufficientInput: a join with fewer than two layers
//
// Message returns the user-facing status string for any error.
package cutter
