// Package segment carves text into line and word fragments.
//
// Lines and Words return the surviving fragment texts; LineSpans and
// WordSpans also recover each fragment's [Start, End) rune offsets in the
// source so formatting can be extracted for it. Offsets are found by
// searching for the fragment text left to right from a cursor that moves
// past every consumed match, so repeated identical fragments resolve to
// successive occurrences.
//
// A result with a single fragment means there is nothing to split. Callers
// report that as a no-op and leave the source untouched.
package segment
