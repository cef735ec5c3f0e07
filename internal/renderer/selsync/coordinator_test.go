package selsync

import "testing"

// harness pairs a coordinator with its drainable queue.
type harness struct {
	c     *Coordinator
	q     *QueueScheduler
	count int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{q: NewQueueScheduler()}
	h.c = NewCoordinator(WithScheduler(h.q))
	h.c.Subscribe(func() { h.count++ })
	return h
}

func TestCoordinatorGating(t *testing.T) {
	t.Run("no emission while layout is behind", func(t *testing.T) {
		h := newHarness(t)

		h.c.SetDocEpoch(1)
		h.c.RequestRender()
		h.q.RunPending()

		if h.count != 0 {
			t.Fatalf("expected no emission, got %d", h.count)
		}

		h.c.OnLayoutComplete(1)
		h.q.RunPending()

		if h.count != 1 {
			t.Errorf("expected exactly one emission, got %d", h.count)
		}
	})

	t.Run("no emission while layout is updating", func(t *testing.T) {
		h := newHarness(t)

		h.c.OnLayoutStart()
		h.c.RequestRender()
		h.q.RunPending()
		if h.count != 0 {
			t.Fatalf("expected no emission during layout, got %d", h.count)
		}

		h.c.OnLayoutComplete(0)
		h.q.RunPending()
		if h.count != 1 {
			t.Errorf("expected one emission after completion, got %d", h.count)
		}
	})

	t.Run("abort re-enables rendering without moving the epoch", func(t *testing.T) {
		h := newHarness(t)

		h.c.OnLayoutStart()
		h.c.RequestRender()
		h.c.OnLayoutAbort()
		h.q.RunPending()

		if h.count != 1 {
			t.Errorf("expected one emission after abort, got %d", h.count)
		}
		if h.c.State().LayoutEpoch != 0 {
			t.Errorf("abort must not change the layout epoch, got %d", h.c.State().LayoutEpoch)
		}
	})

	t.Run("doc epoch bump cancels a scheduled render", func(t *testing.T) {
		h := newHarness(t)

		h.c.RequestRender()
		if !h.c.State().Scheduled {
			t.Fatal("expected a scheduled callback")
		}

		// The document moves ahead before the callback fires.
		h.c.SetDocEpoch(1)
		h.q.RunPending()

		if h.count != 0 {
			t.Errorf("expected no emission against a stale layout, got %d", h.count)
		}

		h.c.OnLayoutComplete(1)
		h.q.RunPending()
		if h.count != 1 {
			t.Errorf("expected one emission once caught up, got %d", h.count)
		}
	})

	t.Run("invalid and unchanged doc epochs are ignored", func(t *testing.T) {
		h := newHarness(t)

		h.c.SetDocEpoch(-5)
		if h.c.State().DocEpoch != 0 {
			t.Errorf("negative epoch accepted: %d", h.c.State().DocEpoch)
		}

		h.c.SetDocEpoch(2)
		h.c.RequestRender()
		h.c.SetDocEpoch(2) // unchanged: must not cancel or reschedule
		h.c.OnLayoutComplete(2)
		h.q.RunPending()
		if h.count != 1 {
			t.Errorf("expected one emission, got %d", h.count)
		}
	})
}

func TestCoordinatorCoalescing(t *testing.T) {
	t.Run("rapid requests collapse into one emission", func(t *testing.T) {
		h := newHarness(t)

		h.c.RequestRender()
		h.c.RequestRender()
		h.c.RequestRender()

		if h.q.Len() != 1 {
			t.Errorf("expected one outstanding callback, got %d", h.q.Len())
		}

		h.q.RunPending()
		if h.count != 1 {
			t.Errorf("expected one emission, got %d", h.count)
		}
	})

	t.Run("a new request after emission schedules again", func(t *testing.T) {
		h := newHarness(t)

		h.c.RequestRender()
		h.q.RunPending()
		h.c.RequestRender()
		h.q.RunPending()

		if h.count != 2 {
			t.Errorf("expected two emissions, got %d", h.count)
		}
	})
}

func TestCoordinatorFlush(t *testing.T) {
	t.Run("flush emits synchronously and consumes the request", func(t *testing.T) {
		h := newHarness(t)

		h.c.RequestRender()
		h.c.FlushNow()
		if h.count != 1 {
			t.Fatalf("expected synchronous emission, got %d", h.count)
		}

		// The scheduled callback was cancelled with the flush.
		h.q.RunPending()
		if h.count != 1 {
			t.Errorf("expected no second emission, got %d", h.count)
		}
	})

	t.Run("flush without a pending request does nothing", func(t *testing.T) {
		h := newHarness(t)

		h.c.FlushNow()
		if h.count != 0 {
			t.Errorf("expected no emission, got %d", h.count)
		}
	})

	t.Run("immediate request falls back to scheduling when unsafe", func(t *testing.T) {
		h := newHarness(t)

		h.c.SetDocEpoch(1)
		h.c.RequestRenderNow()
		if h.count != 0 {
			t.Fatalf("expected no emission while unsafe, got %d", h.count)
		}

		h.c.OnLayoutComplete(1)
		h.q.RunPending()
		if h.count != 1 {
			t.Errorf("expected one deferred emission, got %d", h.count)
		}
	})

	t.Run("immediate request emits at once when safe", func(t *testing.T) {
		h := newHarness(t)

		h.c.RequestRenderNow()
		if h.count != 1 {
			t.Errorf("expected immediate emission, got %d", h.count)
		}
		h.q.RunPending()
		if h.count != 1 {
			t.Errorf("expected no trailing emission, got %d", h.count)
		}
	})
}

func TestCoordinatorObservers(t *testing.T) {
	t.Run("unsubscribed observers stop receiving", func(t *testing.T) {
		q := NewQueueScheduler()
		c := NewCoordinator(WithScheduler(q))

		var a, b int
		idA := c.Subscribe(func() { a++ })
		c.Subscribe(func() { b++ })

		c.RequestRender()
		q.RunPending()
		c.Unsubscribe(idA)
		c.RequestRender()
		q.RunPending()

		if a != 1 || b != 2 {
			t.Errorf("expected a=1 b=2, got a=%d b=%d", a, b)
		}
	})
}

func TestCoordinatorDestroy(t *testing.T) {
	h := newHarness(t)

	h.c.RequestRender()
	h.c.Destroy()
	h.q.RunPending()

	if h.count != 0 {
		t.Errorf("expected no emission after destroy, got %d", h.count)
	}

	// All operations are inert after destroy; a second destroy is safe.
	h.c.Destroy()
	h.c.RequestRender()
	h.c.SetDocEpoch(5)
	h.c.OnLayoutComplete(5)
	h.q.RunPending()
	if h.count != 0 {
		t.Errorf("expected destroyed coordinator to stay silent, got %d", h.count)
	}
}

func TestQueueScheduler(t *testing.T) {
	t.Run("cancelled callbacks never run", func(t *testing.T) {
		q := NewQueueScheduler()

		ran := false
		h := q.Schedule(func() { ran = true })
		q.Cancel(h)

		if n := q.RunPending(); n != 0 {
			t.Errorf("expected 0 callbacks run, got %d", n)
		}
		if ran {
			t.Error("cancelled callback ran")
		}
	})

	t.Run("callbacks scheduled while draining wait", func(t *testing.T) {
		q := NewQueueScheduler()

		var order []int
		q.Schedule(func() {
			order = append(order, 1)
			q.Schedule(func() { order = append(order, 2) })
		})

		if n := q.RunPending(); n != 1 {
			t.Errorf("first drain: expected 1, got %d", n)
		}
		if n := q.RunPending(); n != 1 {
			t.Errorf("second drain: expected 1, got %d", n)
		}
		if len(order) != 2 || order[0] != 1 || order[1] != 2 {
			t.Errorf("unexpected order: %v", order)
		}
	})
}
