// Package dispatch provides a single-goroutine serialized execution loop.
// All tracking operations, policy callbacks and deferred close retries run on
// one loop, which is what gives the monitor its ordering guarantees without
// internal locking. The loop doubles as the core.Scheduler collaborator:
// timers fire back onto the same goroutine that processes every other
// operation.
package dispatch
