package doc

import "fmt"

// Edit is a single text edit: a range to replace and the replacement.
// Insertions have an empty range; deletions an empty replacement.
type Edit struct {
	Range   Range
	NewText string
}

// NewEdit creates an Edit.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit inserting text at a position.
func NewInsert(pos Position, text string) Edit {
	return Edit{Range: Range{Start: pos, End: pos}, NewText: text}
}

// NewDelete creates an Edit deleting a range.
func NewDelete(start, end Position) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	switch {
	case e.IsInsert():
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	case e.IsDelete():
		return fmt.Sprintf("Delete%s", e.Range)
	default:
		return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
	}
}

// IsInsert returns true if this is a pure insertion.
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsDelete returns true if this is a pure deletion.
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.NewText == ""
}

// IsNoOp returns true if the edit changes nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in document length caused by this edit.
func (e Edit) Delta() Position {
	return Position(len(e.NewText)) - e.Range.Len()
}
