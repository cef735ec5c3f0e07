package epoch

import (
	"testing"

	"github.com/quilldoc/reflow/internal/engine/doc"
)

func insertAt(pos doc.Position, text string) StepMap {
	return TransformOf(doc.NewInsert(pos, text))
}

func TestMapperEpochs(t *testing.T) {
	t.Run("epoch advances once per content change", func(t *testing.T) {
		m := NewMapper()

		if m.CurrentEpoch() != 0 {
			t.Fatalf("expected epoch 0, got %d", m.CurrentEpoch())
		}

		m.RecordTransaction(insertAt(0, "a"))
		m.RecordTransaction(insertAt(1, "b"))
		if m.CurrentEpoch() != 2 {
			t.Errorf("expected epoch 2, got %d", m.CurrentEpoch())
		}
	})

	t.Run("no-op transactions do not advance the epoch", func(t *testing.T) {
		m := NewMapper()

		m.RecordTransaction(StepMap{})
		m.RecordTransaction(TransformOf(doc.NewEdit(doc.NewRange(3, 3), "")))
		if m.CurrentEpoch() != 0 {
			t.Errorf("expected epoch 0, got %d", m.CurrentEpoch())
		}
	})
}

func TestMapperTrivialCase(t *testing.T) {
	// Mapping from the current epoch returns the position unchanged,
	// regardless of history.
	m := NewMapper()
	for i := 0; i < 7; i++ {
		m.RecordTransaction(insertAt(doc.Position(i), "x"))
	}

	for _, pos := range []doc.Position{0, 3, 999} {
		res := m.MapToCurrentDetailed(pos, m.CurrentEpoch(), AssocAfter)
		if !res.OK || res.Pos != pos {
			t.Errorf("expected %d unchanged, got %+v", pos, res)
		}
	}
}

func TestMapperReplay(t *testing.T) {
	m := NewMapper()

	// Epoch 0 -> 1: insert 5 bytes at 0.
	m.RecordTransaction(insertAt(0, "hello"))
	// Epoch 1 -> 2: delete [2, 4).
	m.RecordTransaction(TransformOf(doc.NewDelete(2, 4)))

	t.Run("positions replay across all recorded edits", func(t *testing.T) {
		// Position 3 at epoch 0: shifted to 8 by the insert, then -2.
		res := m.MapToCurrentDetailed(3, 0, AssocAfter)
		if !res.OK || res.Pos != 6 {
			t.Errorf("expected 6, got %+v", res)
		}
		if res.FromEpoch != 0 || res.ToEpoch != 2 {
			t.Errorf("expected epochs 0->2, got %d->%d", res.FromEpoch, res.ToEpoch)
		}
	})

	t.Run("deleted content fails with deleted", func(t *testing.T) {
		// Position 3 at epoch 1 is inside the [2, 4) deletion.
		res := m.MapToCurrentDetailed(3, 1, AssocAfter)
		if res.OK || res.Reason != FailDeleted {
			t.Errorf("expected deleted, got %+v", res)
		}
	})

	t.Run("convenience form discards the reason", func(t *testing.T) {
		if pos, ok := m.MapToCurrent(3, 0, AssocAfter); !ok || pos != 6 {
			t.Errorf("expected (6, true), got (%d, %v)", pos, ok)
		}
		if _, ok := m.MapToCurrent(3, 1, AssocAfter); ok {
			t.Error("expected failure for deleted position")
		}
	})
}

func TestMapperValidation(t *testing.T) {
	m := NewMapper()
	m.RecordTransaction(insertAt(0, "a"))

	cases := []struct {
		name   string
		pos    doc.Position
		from   int64
		reason FailureReason
	}{
		{"negative position", -1, 0, FailInvalidPos},
		{"negative epoch", 0, -1, FailInvalidEpoch},
		{"future epoch", 0, 2, FailInvalidEpoch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := m.MapToCurrentDetailed(tc.pos, tc.from, AssocAfter)
			if res.OK || res.Reason != tc.reason {
				t.Errorf("expected %v, got %+v", tc.reason, res)
			}
		})
	}
}

func TestMapperRetention(t *testing.T) {
	t.Run("window below one clamps to one", func(t *testing.T) {
		m := NewMapper(WithMaxEpochs(0))
		m.RecordTransaction(insertAt(0, "a"))
		m.RecordTransaction(insertAt(0, "b"))

		if res := m.MapToCurrentDetailed(0, 0, AssocBefore); res.Reason != FailEpochTooOld {
			t.Errorf("expected epoch_too_old, got %+v", res)
		}
	})

	t.Run("old epochs age out of the window", func(t *testing.T) {
		m := NewMapper(WithMaxEpochs(2))
		for i := 0; i < 5; i++ {
			m.RecordTransaction(insertAt(0, "x"))
		}

		res := m.MapToCurrentDetailed(0, 0, AssocBefore)
		if res.OK || res.Reason != FailEpochTooOld {
			t.Errorf("expected epoch_too_old, got %+v", res)
		}

		res = m.MapToCurrentDetailed(0, m.CurrentEpoch()-1, AssocBefore)
		if !res.OK {
			t.Errorf("expected success just inside the window, got %+v", res)
		}
	})

	t.Run("layout completion prunes history", func(t *testing.T) {
		m := NewMapper()
		for i := 0; i < 4; i++ {
			m.RecordTransaction(insertAt(0, "x"))
		}

		m.OnLayoutComplete(3)
		if got := m.Stats().Retained; got != 1 {
			t.Errorf("expected 1 retained transform, got %d", got)
		}

		// Mapping from the layout's epoch still works.
		if res := m.MapToCurrentDetailed(0, 3, AssocBefore); !res.OK {
			t.Errorf("expected success from epoch 3, got %+v", res)
		}

		// Re-running with a non-increasing epoch is harmless.
		m.OnLayoutComplete(2)
		m.OnLayoutComplete(3)
		if res := m.MapToCurrentDetailed(0, 3, AssocBefore); !res.OK {
			t.Errorf("expected success after repeat completions, got %+v", res)
		}
	})

	t.Run("pruned-away interior epoch is a defect signal", func(t *testing.T) {
		m := NewMapper()
		for i := 0; i < 3; i++ {
			m.RecordTransaction(insertAt(0, "x"))
		}

		// A layout newer than the document should not happen; it
		// leaves the window without its transforms.
		m.OnLayoutComplete(99)

		res := m.MapToCurrentDetailed(0, 1, AssocBefore)
		if res.OK || res.Reason != FailMissingStepMap {
			t.Errorf("expected missing_stepmap, got %+v", res)
		}
		if m.Stats().MissingStepMaps != 1 {
			t.Errorf("expected defect counter at 1, got %d", m.Stats().MissingStepMaps)
		}
	})
}
