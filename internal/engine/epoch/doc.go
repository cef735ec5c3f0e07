// Package epoch maps document positions captured against a past document
// version forward to the current version.
//
// A document's epoch is a non-negative counter incremented exactly once
// per content-changing edit. An asynchronous layout is always computed
// against some epoch and may lag behind the document; a position taken
// from that layout is only meaningful at the layout's epoch. The
// [Mapper] records one positional transform ([StepMap]) per edit and
// replays them to carry such positions forward.
//
// Mapping failures are explicit result values, never errors or panics:
// callers such as selection handlers must degrade gracefully on stale or
// malformed input. See [MapResult] and [FailureReason].
//
// A Mapper owns its state exclusively and performs no locking; there is
// one logical writer per editing session, and multiple documents each
// get their own instance. Callers must serialize access.
package epoch
