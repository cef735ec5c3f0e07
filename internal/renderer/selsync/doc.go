// Package selsync gates position-dependent rendering (selection,
// carets) on the asynchronous layout having caught up to the document.
//
// An editing surface bumps the document epoch on every edit; a layout
// pass reports the epoch it was computed against. The [Coordinator]
// emits a single render signal per need, and only while the layout is
// not being recomputed and is not older than the document:
//
//	safe = !layoutUpdating && layoutEpoch >= docEpoch
//
// Scheduling is cancellable and coalescing: repeated render requests
// before the scheduled callback fires collapse into one emission, and at
// most one callback is outstanding per coordinator. The scheduling
// boundary is an injectable [Scheduler]; the default [QueueScheduler] is
// a FIFO the owning event loop drains, matching the single-threaded
// cooperative model the coordinator assumes. A Coordinator is not safe
// for concurrent use.
package selsync
