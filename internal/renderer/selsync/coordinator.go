package selsync

import "github.com/google/uuid"

// RenderFunc receives the render signal.
type RenderFunc func()

// State is a snapshot of the coordinator's gating state.
type State struct {
	DocEpoch       int64
	LayoutEpoch    int64
	LayoutUpdating bool
	Pending        bool
	Scheduled      bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithScheduler sets the scheduling boundary. The default is a
// QueueScheduler the owner drains.
func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) {
		c.scheduler = s
	}
}

// Coordinator decides when it is safe to render position-dependent UI.
// One instance serves one editing session; callers must serialize
// access.
type Coordinator struct {
	scheduler Scheduler

	docEpoch       int64
	layoutEpoch    int64
	layoutUpdating bool
	pending        bool
	scheduled      bool
	destroyed      bool

	// handle names the outstanding callback; gen invalidates fired
	// callbacks from superseded scheduling attempts, so cancellation
	// is total even if a Scheduler runs a cancelled callback anyway.
	handle Handle
	gen    uint64

	order     []uuid.UUID
	observers map[uuid.UUID]RenderFunc

	emitted uint64
}

// NewCoordinator creates a coordinator with both epochs at zero.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		observers: make(map[uuid.UUID]RenderFunc),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.scheduler == nil {
		c.scheduler = NewQueueScheduler()
	}
	return c
}

// Scheduler returns the coordinator's scheduling boundary, so an owner
// using the default queue can drain it.
func (c *Coordinator) Scheduler() Scheduler {
	return c.scheduler
}

// Subscribe registers a render-signal observer and returns its ID.
func (c *Coordinator) Subscribe(fn RenderFunc) uuid.UUID {
	id := uuid.New()
	if c.destroyed || fn == nil {
		return id
	}
	c.observers[id] = fn
	c.order = append(c.order, id)
	return id
}

// Unsubscribe removes an observer. Unknown IDs are ignored.
func (c *Coordinator) Unsubscribe(id uuid.UUID) {
	delete(c.observers, id)
}

// IsSafeToRender reports whether the layout is current enough for
// position-dependent rendering.
func (c *Coordinator) IsSafeToRender() bool {
	return !c.layoutUpdating && c.layoutEpoch >= c.docEpoch
}

// SetDocEpoch records a new document epoch. Invalid or unchanged epochs
// are ignored. A scheduled render is cancelled (the layout is now
// behind) and scheduling is re-attempted for the case where the layout
// already covers the new epoch.
func (c *Coordinator) SetDocEpoch(epoch int64) {
	if c.destroyed || epoch < 0 || epoch == c.docEpoch {
		return
	}
	c.docEpoch = epoch
	c.cancelScheduled()
	c.trySchedule()
}

// OnLayoutStart marks the layout as being recomputed. Idempotent.
func (c *Coordinator) OnLayoutStart() {
	if c.destroyed {
		return
	}
	c.layoutUpdating = true
	c.cancelScheduled()
}

// OnLayoutComplete records the epoch the finished layout was computed
// against and re-attempts scheduling.
func (c *Coordinator) OnLayoutComplete(layoutEpoch int64) {
	if c.destroyed {
		return
	}
	c.layoutUpdating = false
	if layoutEpoch >= 0 {
		c.layoutEpoch = layoutEpoch
	}
	c.trySchedule()
}

// OnLayoutAbort clears the updating flag without touching the layout
// epoch and re-attempts scheduling.
func (c *Coordinator) OnLayoutAbort() {
	if c.destroyed {
		return
	}
	c.layoutUpdating = false
	c.trySchedule()
}

// RequestRender asks for one render signal at the next safe
// opportunity. Requests coalesce: many requests before the callback
// fires produce one emission.
func (c *Coordinator) RequestRender() {
	if c.destroyed {
		return
	}
	c.pending = true
	c.trySchedule()
}

// RequestRenderNow asks for a render signal and flushes synchronously
// if it is already safe; otherwise it behaves like RequestRender.
func (c *Coordinator) RequestRenderNow() {
	if c.destroyed {
		return
	}
	c.pending = true
	c.FlushNow()
	c.trySchedule()
}

// FlushNow emits the render signal synchronously if one is pending and
// it is safe; otherwise it does nothing.
func (c *Coordinator) FlushNow() {
	if c.destroyed || !c.pending || !c.IsSafeToRender() {
		return
	}
	c.cancelScheduled()
	c.pending = false
	c.emit()
}

// Destroy cancels any scheduled callback and detaches all observers.
// Safe to call multiple times.
func (c *Coordinator) Destroy() {
	if c.destroyed {
		return
	}
	c.cancelScheduled()
	c.destroyed = true
	c.pending = false
	c.observers = nil
	c.order = nil
}

// State returns a snapshot of the gating state.
func (c *Coordinator) State() State {
	return State{
		DocEpoch:       c.docEpoch,
		LayoutEpoch:    c.layoutEpoch,
		LayoutUpdating: c.layoutUpdating,
		Pending:        c.pending,
		Scheduled:      c.scheduled,
	}
}

// Emitted returns how many render signals have been emitted.
func (c *Coordinator) Emitted() uint64 {
	return c.emitted
}

// trySchedule queues the single outstanding callback when a render is
// wanted and safe.
func (c *Coordinator) trySchedule() {
	if c.destroyed || c.scheduled || !c.pending || !c.IsSafeToRender() {
		return
	}
	c.scheduled = true
	c.gen++
	g := c.gen
	c.handle = c.scheduler.Schedule(func() { c.fire(g) })
}

// fire runs a scheduled callback. State may have changed while queued,
// so both the generation and the safety predicate are re-checked.
func (c *Coordinator) fire(g uint64) {
	if c.destroyed || !c.scheduled || g != c.gen {
		return
	}
	c.scheduled = false
	if !c.pending || !c.IsSafeToRender() {
		return
	}
	c.pending = false
	c.emit()
}

// cancelScheduled withdraws the outstanding callback, if any.
func (c *Coordinator) cancelScheduled() {
	if !c.scheduled {
		return
	}
	c.scheduler.Cancel(c.handle)
	c.scheduled = false
	c.gen++
}

// emit delivers the render signal to every observer in subscription
// order.
func (c *Coordinator) emit() {
	c.emitted++
	for _, id := range c.order {
		if fn, ok := c.observers[id]; ok {
			fn()
		}
	}
}
