package core

import "time"

// Scheduler defers a callback onto the execution context that owns all
// tracking operations. It is supplied by the hosting service; the core only
// requires "run this after the delay, serialized with everything else".
type Scheduler interface {
	ScheduleAfterDelay(delay time.Duration, fn func())
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(delay time.Duration, fn func())

// ScheduleAfterDelay implements Scheduler.
func (f SchedulerFunc) ScheduleAfterDelay(delay time.Duration, fn func()) { f(delay, fn) }
