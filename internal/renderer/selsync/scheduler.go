package selsync

// Handle identifies one scheduled callback.
type Handle uint64

// Scheduler queues callbacks for a later opportunity to run. Cancel
// must guarantee that the cancelled callback never fires; the
// coordinator additionally guards against schedulers that cannot.
type Scheduler interface {
	// Schedule queues fn and returns a handle for cancellation.
	Schedule(fn func()) Handle

	// Cancel discards a queued callback. Unknown or already-run
	// handles are ignored.
	Cancel(h Handle)
}

// QueueScheduler is a FIFO scheduler drained by its owner, typically
// once per event-loop turn. It is the default scheduler and defines
// "the next opportunity to render" as the next drain.
type QueueScheduler struct {
	next  Handle
	order []Handle
	tasks map[Handle]func()
}

// NewQueueScheduler creates an empty queue scheduler.
func NewQueueScheduler() *QueueScheduler {
	return &QueueScheduler{tasks: make(map[Handle]func())}
}

// Schedule queues fn for the next drain.
func (s *QueueScheduler) Schedule(fn func()) Handle {
	s.next++
	h := s.next
	s.tasks[h] = fn
	s.order = append(s.order, h)
	return h
}

// Cancel discards a queued callback.
func (s *QueueScheduler) Cancel(h Handle) {
	delete(s.tasks, h)
}

// RunPending runs every callback queued before the call, in order, and
// returns how many ran. Callbacks scheduled while draining wait for the
// next drain.
func (s *QueueScheduler) RunPending() int {
	pending := s.order
	s.order = nil

	ran := 0
	for _, h := range pending {
		fn, ok := s.tasks[h]
		if !ok {
			continue
		}
		delete(s.tasks, h)
		fn()
		ran++
	}
	return ran
}

// Len returns the number of queued callbacks.
func (s *QueueScheduler) Len() int {
	return len(s.tasks)
}
