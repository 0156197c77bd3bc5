package core

import "fmt"

var (
	// ErrIdentityResolution is returned when the foreground consumer of an
	// "opened" signal cannot be resolved. The open event is dropped and no
	// registry entry is created.
	ErrIdentityResolution = fmt.Errorf("camera owner identity could not be resolved")

	// ErrLoopStopped is returned when an operation is posted to a dispatch
	// loop that is not running.
	ErrLoopStopped = fmt.Errorf("dispatch loop is not running")

	// ErrAlreadyRunning is returned when a dispatch loop is started twice.
	ErrAlreadyRunning = fmt.Errorf("dispatch loop is already running")
)
