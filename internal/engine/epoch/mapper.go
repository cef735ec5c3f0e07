package epoch

import "github.com/quilldoc/reflow/internal/engine/doc"

// FailureReason classifies why a mapping could not produce a position.
type FailureReason uint8

const (
	// FailNone means the mapping succeeded.
	FailNone FailureReason = iota

	// FailInvalidPos means the input position was malformed (negative).
	// A programming error upstream; surfaced for logging, never coerced.
	FailInvalidPos

	// FailInvalidEpoch means the source epoch was negative or ahead of
	// the document. Also a programming error upstream.
	FailInvalidEpoch

	// FailEpochTooOld means the source epoch fell out of the retention
	// window. Expected under heavy edit load with a long-stalled
	// layout; the caller should fall back to coarse repositioning.
	FailEpochTooOld

	// FailMissingStepMap means a transform inside the window was not
	// found. This indicates a retention bookkeeping defect, not a
	// normal outcome; it is surfaced distinctly so it is never
	// conflated with ordinary staleness.
	FailMissingStepMap

	// FailDeleted means the referenced content no longer exists.
	// Expected and common; the caller should drop the dependent UI
	// element.
	FailDeleted
)

// String returns the wire name of the failure reason.
func (r FailureReason) String() string {
	switch r {
	case FailNone:
		return "none"
	case FailInvalidPos:
		return "invalid_pos"
	case FailInvalidEpoch:
		return "invalid_epoch"
	case FailEpochTooOld:
		return "epoch_too_old"
	case FailMissingStepMap:
		return "missing_stepmap"
	case FailDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// MapResult is the tagged outcome of a detailed mapping. On success OK
// is true and Pos holds the mapped position; otherwise Reason explains
// the failure. FromEpoch and ToEpoch are always populated.
type MapResult struct {
	OK        bool
	Pos       doc.Position
	Reason    FailureReason
	FromEpoch int64
	ToEpoch   int64
}

// DefaultMaxEpochs is the default retention window for recorded
// transforms.
const DefaultMaxEpochs = 100

// Option configures a Mapper.
type Option func(*Mapper)

// WithMaxEpochs sets the retention window. Values below 1 are clamped
// to 1.
func WithMaxEpochs(n int) Option {
	return func(m *Mapper) {
		if n < 1 {
			n = 1
		}
		m.maxEpochs = n
	}
}

// Mapper translates positions captured at a past epoch into the current
// epoch by replaying recorded transforms.
//
// Not safe for concurrent use; the single writer that applies edits
// must serialize calls.
type Mapper struct {
	maxEpochs int
	current   int64

	// transforms holds one StepMap per content-changing edit, keyed by
	// the epoch the edit was applied at.
	transforms map[int64]StepMap

	missingObserved uint64
}

// NewMapper creates a mapper with the default retention window.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{
		maxEpochs:  DefaultMaxEpochs,
		transforms: make(map[int64]StepMap),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CurrentEpoch returns the document's current epoch. It is
// non-decreasing for the lifetime of the mapper.
func (m *Mapper) CurrentEpoch() int64 {
	return m.current
}

// RecordTransaction records one edit's positional transform and
// advances the epoch. Transactions that change nothing are ignored and
// do not advance the epoch.
func (m *Mapper) RecordTransaction(tr StepMap) {
	if !tr.Changed() {
		return
	}
	m.transforms[m.current] = tr
	m.current++
	m.prune()
}

// OnLayoutComplete drops every transform older than the completed
// layout's epoch: positions from a painted layout never need mapping
// from an older one. Idempotent; calling with a non-increasing epoch
// re-runs the same deletions harmlessly.
func (m *Mapper) OnLayoutComplete(layoutEpoch int64) {
	for e := range m.transforms {
		if e < layoutEpoch {
			delete(m.transforms, e)
		}
	}
	m.prune()
}

// prune enforces the retention window.
func (m *Mapper) prune() {
	floor := m.current - int64(m.maxEpochs)
	for e := range m.transforms {
		if e < floor {
			delete(m.transforms, e)
		}
	}
}

// MapToCurrentDetailed maps pos from fromEpoch to the current epoch,
// reporting the full tagged result.
func (m *Mapper) MapToCurrentDetailed(pos doc.Position, fromEpoch int64, assoc Assoc) MapResult {
	res := MapResult{FromEpoch: fromEpoch, ToEpoch: m.current}

	if pos < 0 {
		res.Reason = FailInvalidPos
		return res
	}
	if fromEpoch < 0 || fromEpoch > m.current {
		res.Reason = FailInvalidEpoch
		return res
	}
	if fromEpoch == m.current {
		res.OK = true
		res.Pos = pos
		return res
	}
	if fromEpoch < m.current-int64(m.maxEpochs) {
		res.Reason = FailEpochTooOld
		return res
	}

	p := pos
	for e := fromEpoch; e < m.current; e++ {
		tr, ok := m.transforms[e]
		if !ok {
			// Within the retention window every epoch must have a
			// transform; a miss is a bookkeeping defect.
			m.missingObserved++
			res.Reason = FailMissingStepMap
			return res
		}
		var deleted bool
		p, deleted = tr.Map(p, assoc)
		if deleted {
			res.Reason = FailDeleted
			return res
		}
	}

	res.OK = true
	res.Pos = p
	return res
}

// MapToCurrent is the convenience form of MapToCurrentDetailed: it
// returns the mapped position and whether mapping succeeded, discarding
// the failure reason.
func (m *Mapper) MapToCurrent(pos doc.Position, fromEpoch int64, assoc Assoc) (doc.Position, bool) {
	res := m.MapToCurrentDetailed(pos, fromEpoch, assoc)
	return res.Pos, res.OK
}

// Stats describes the mapper's bookkeeping state.
type Stats struct {
	// CurrentEpoch is the document's current epoch.
	CurrentEpoch int64

	// Retained is the number of transforms currently stored.
	Retained int

	// MissingStepMaps counts missing_stepmap failures observed over
	// the mapper's lifetime. Nonzero values indicate a defect.
	MissingStepMaps uint64
}

// Stats returns the mapper's bookkeeping state.
func (m *Mapper) Stats() Stats {
	return Stats{
		CurrentEpoch:    m.current,
		Retained:        len(m.transforms),
		MissingStepMaps: m.missingObserved,
	}
}
