// Package camstate provides a high-level façade over the camera session
// tracking core (registry, policy aggregation, monitor & logging) enabling
// window-management services to coordinate camera open/close lifecycles.
// Most applications interact with this package by:
//  1. Creating a CamState via New() with an identity resolver
//  2. Registering one or more camera state policies
//  3. Feeding hardware open/close signals (TrackOnCameraOpened/Closed)
//  4. Querying running state (IsCameraRunningForActivity)
//
// The façade owns a dispatch.Loop and serializes every operation onto it,
// which is what guarantees strict per-camera ordering and makes the core
// safe without internal locking. Policy callbacks run on the loop and may
// query the Monitor directly; they must not call back into the façade's
// blocking methods from inside a callback.
package camstate

import (
	"time"

	"github.com/hupe1980/camstate/core"
	"github.com/hupe1980/camstate/dispatch"
	"github.com/hupe1980/camstate/logging"
	"github.com/hupe1980/camstate/monitor"
)

// Options configures the CamState instance.
type Options struct {
	// IdentityResolver resolves the foreground consumer of an open signal.
	// Open events cannot be tracked without one.
	IdentityResolver core.IdentityResolver

	// RetryDelay is the pause before a vetoed close is re-attempted
	// (defaults to monitor.DefaultRetryDelay).
	RetryDelay time.Duration

	// Scheduler overrides the retry scheduler. When nil the owned dispatch
	// loop is used, keeping retries on the same execution context as every
	// other operation. An override must provide the same serialization.
	Scheduler core.Scheduler

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// CamState is the high-level façade aggregating the monitor and its
// serialized execution loop.
type CamState struct {
	opts    Options
	loop    *dispatch.Loop
	monitor *monitor.Monitor
}

// New creates a new CamState instance with optional overrides. Call Start
// before feeding signals.
func New(optFns ...func(o *Options)) *CamState {
	opts := Options{
		RetryDelay: monitor.DefaultRetryDelay,
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	loop := dispatch.NewLoop()

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = loop
	}

	m := monitor.New(func(o *monitor.Options) {
		o.Resolver = opts.IdentityResolver
		o.Scheduler = scheduler
		o.RetryDelay = opts.RetryDelay
		o.Logger = opts.Logger
	})

	return &CamState{opts: opts, loop: loop, monitor: m}
}

// Start begins the owned execution loop.
func (c *CamState) Start() error {
	return c.loop.Start()
}

// Stop halts the execution loop. Deferred close retries scheduled on the
// owned loop are dropped.
func (c *CamState) Stop() {
	c.loop.Stop()
}

// Monitor exposes the underlying monitor for policy implementations that
// query tracking state from within their callbacks. Direct use outside the
// loop bypasses serialization.
func (c *CamState) Monitor() *monitor.Monitor {
	return c.monitor
}

// TrackOnCameraOpened feeds an "opened" hardware signal and returns the
// registered session record.
func (c *CamState) TrackOnCameraOpened(cameraID, packageName string) (core.CameraAppInfo, error) {
	var (
		info core.CameraAppInfo
		err  error
	)
	if callErr := c.loop.Call(func() {
		info, err = c.monitor.TrackOnCameraOpened(cameraID, packageName)
	}); callErr != nil {
		return core.CameraAppInfo{}, callErr
	}
	return info, err
}

// TrackOnCameraClosed feeds a "closed" hardware signal. The bool reports
// whether the camera was tracked; a vetoed close leaves the session
// registered and retries asynchronously.
func (c *CamState) TrackOnCameraClosed(cameraID string) (core.CameraAppInfo, bool) {
	var (
		info core.CameraAppInfo
		ok   bool
	)
	if err := c.loop.Call(func() {
		info, ok = c.monitor.TrackOnCameraClosed(cameraID)
	}); err != nil {
		return core.CameraAppInfo{}, false
	}
	return info, ok
}

// IsCameraRunningForActivity reports whether any camera is tracked for the
// activity's owning task, pending closes included.
func (c *CamState) IsCameraRunningForActivity(activity core.ActivityHandle) bool {
	var running bool
	if err := c.loop.Call(func() {
		running = c.monitor.IsCameraRunningForActivity(activity)
	}); err != nil {
		return false
	}
	return running
}

// IsCameraRunningForTask reports whether any camera is tracked for the task.
func (c *CamState) IsCameraRunningForTask(taskID int) bool {
	var running bool
	if err := c.loop.Call(func() {
		running = c.monitor.IsCameraRunningForTask(taskID)
	}); err != nil {
		return false
	}
	return running
}

// IsCameraWithIDRunningForTask reports whether the specific camera is
// tracked for the task.
func (c *CamState) IsCameraWithIDRunningForTask(cameraID string, taskID int) bool {
	var running bool
	if err := c.loop.Call(func() {
		running = c.monitor.IsCameraWithIDRunningForTask(cameraID, taskID)
	}); err != nil {
		return false
	}
	return running
}

// AddCameraStatePolicy registers a policy observer.
func (c *CamState) AddCameraStatePolicy(p core.CameraStatePolicy) error {
	return c.loop.Call(func() {
		c.monitor.AddCameraStatePolicy(p)
	})
}

// RemoveCameraStatePolicy deregisters a policy observer.
func (c *CamState) RemoveCameraStatePolicy(p core.CameraStatePolicy) error {
	return c.loop.Call(func() {
		c.monitor.RemoveCameraStatePolicy(p)
	})
}

// Events returns a defensive copy of the monitor's audit history.
func (c *CamState) Events() []core.TrackEvent {
	var events []core.TrackEvent
	if err := c.loop.Call(func() {
		events = c.monitor.Events()
	}); err != nil {
		return nil
	}
	return events
}
