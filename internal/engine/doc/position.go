// Package doc provides the lightweight document position model the
// reconciliation core maps against: byte positions, ranges, edits, and
// a content differ for turning raw text changes into edits.
//
// The package stores no document content. What a document keeps as state
// is the embedding editor's concern; this model only describes where
// edits happened so derived positions can be kept valid.
package doc

import "fmt"

// Position is a byte position in the document.
type Position = int64

// Range is a byte range in the document.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a Range from start and end positions.
func NewRange(start, end Position) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() Position {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is ordered and non-negative.
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Contains returns true if the given position is within the range.
func (r Range) Contains(pos Position) bool {
	return pos >= r.Start && pos < r.End
}

// Shift returns the range moved by delta.
func (r Range) Shift(delta Position) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}
