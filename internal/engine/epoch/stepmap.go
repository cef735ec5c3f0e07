package epoch

import (
	"fmt"

	"github.com/quilldoc/reflow/internal/engine/doc"
)

// Assoc selects which side of an insertion boundary a position binds to.
type Assoc int

const (
	// AssocBefore binds the position to the content on its left: text
	// inserted exactly at the position lands after it.
	AssocBefore Assoc = -1

	// AssocAfter binds the position to the content on its right: text
	// inserted exactly at the position pushes it along.
	AssocAfter Assoc = 1
)

// Step describes one replacement in pre-edit coordinates: the bytes in
// [From, To) were replaced by NewLen bytes.
type Step struct {
	From   doc.Position
	To     doc.Position
	NewLen int64
}

// StepOf converts an edit into its positional step.
func StepOf(e doc.Edit) Step {
	return Step{
		From:   e.Range.Start,
		To:     e.Range.End,
		NewLen: int64(len(e.NewText)),
	}
}

// String returns a human-readable representation of the step.
func (s Step) String() string {
	return fmt.Sprintf("[%d:%d)->%d", s.From, s.To, s.NewLen)
}

// Delta returns the length change the step causes.
func (s Step) Delta() int64 {
	return s.NewLen - (s.To - s.From)
}

// Changed returns true if the step alters content.
func (s Step) Changed() bool {
	return s.From != s.To || s.NewLen != 0
}

// Map carries pos across the step. The second return is true when the
// position referred to content the step removed.
//
// Positions strictly inside the replaced range are deleted. Positions at
// the range edges survive: the left edge stays put, the right edge lands
// after the replacement. assoc only decides pure insertions, where both
// edges coincide.
func (s Step) Map(pos doc.Position, assoc Assoc) (doc.Position, bool) {
	switch {
	case pos < s.From:
		return pos, false
	case pos > s.To:
		return pos + s.Delta(), false
	case s.From == s.To:
		if assoc >= 0 {
			return s.From + s.NewLen, false
		}
		return s.From, false
	case pos == s.From:
		return s.From, false
	case pos == s.To:
		return s.From + s.NewLen, false
	default:
		return pos, true
	}
}

// StepMap is the ordered positional transform of one transaction: every
// step of the edit, in application order, each in the coordinates left
// by the previous step.
type StepMap []Step

// TransformOf builds the StepMap for a transaction's edits.
func TransformOf(edits ...doc.Edit) StepMap {
	steps := make(StepMap, 0, len(edits))
	for _, e := range edits {
		steps = append(steps, StepOf(e))
	}
	return steps
}

// Map carries pos across every step in order. The second return is true
// when any step deleted the position.
func (m StepMap) Map(pos doc.Position, assoc Assoc) (doc.Position, bool) {
	for _, s := range m {
		var deleted bool
		pos, deleted = s.Map(pos, assoc)
		if deleted {
			return pos, true
		}
	}
	return pos, false
}

// Changed returns true if any step alters content.
func (m StepMap) Changed() bool {
	for _, s := range m {
		if s.Changed() {
			return true
		}
	}
	return false
}
