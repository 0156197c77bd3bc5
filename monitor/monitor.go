package monitor

import (
	"fmt"
	"time"

	"github.com/hupe1980/camstate/core"
	"github.com/hupe1980/camstate/logging"
	"github.com/hupe1980/camstate/policy"
	"github.com/hupe1980/camstate/registry"
)

// DefaultRetryDelay is the pause before a vetoed close is re-attempted.
const DefaultRetryDelay = 2 * time.Second

// Options configures a Monitor.
type Options struct {
	// Resolver supplies the (pid, taskId, packageName) identity of the
	// foreground consumer when a camera opens. Required for opens to be
	// tracked; without it every open event is dropped.
	Resolver core.IdentityResolver

	// Scheduler defers close retries onto the owning execution context.
	// Without it a vetoed close stays pending until the next close signal.
	Scheduler core.Scheduler

	// RetryDelay overrides DefaultRetryDelay.
	RetryDelay time.Duration

	// Logger receives diagnostics (defaults to NoOpLogger).
	Logger logging.Logger
}

// Monitor tracks which application sessions hold which cameras and gates
// every close behind the consensus of the registered policies.
//
// Monitor methods are not safe for concurrent use; the hosting service runs
// them on one serialized execution context. The camstate façade wires a
// dispatch.Loop for exactly that purpose.
type Monitor struct {
	opts     Options
	registry *registry.Registry
	policies *policy.Aggregator
	logger   logging.Logger

	// pendingClose marks cameras whose close has been vetoed and is
	// awaiting a retry. A retry that fires for an unmarked camera is stale
	// (the camera reopened or closed through another path) and no-ops.
	pendingClose map[string]bool

	events []core.TrackEvent
}

// New constructs a Monitor with optional overrides.
func New(optFns ...func(o *Options)) *Monitor {
	opts := Options{
		RetryDelay: DefaultRetryDelay,
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}

	return &Monitor{
		opts:         opts,
		registry:     registry.New(),
		policies:     policy.NewAggregator(opts.Logger),
		logger:       opts.Logger,
		pendingClose: make(map[string]bool),
	}
}

// AddCameraStatePolicy registers a policy observer for subsequent events.
func (m *Monitor) AddCameraStatePolicy(p core.CameraStatePolicy) {
	m.policies.Add(p)
}

// RemoveCameraStatePolicy deregisters a policy observer. Notifications
// already delivered are not retracted.
func (m *Monitor) RemoveCameraStatePolicy(p core.CameraStatePolicy) bool {
	return m.policies.Remove(p)
}

// TrackOnCameraOpened handles an "opened" hardware signal. It resolves the
// current foreground consumer, registers the session and notifies every
// policy. The registry write happens before the notification, so a policy
// querying the monitor during OnCameraOpened observes the camera as open.
//
// A reopen while a close is pending cancels the pending retry for that
// camera identifier. On identity resolution failure the event is dropped
// and a core.ErrIdentityResolution error returned.
func (m *Monitor) TrackOnCameraOpened(cameraID, packageName string) (core.CameraAppInfo, error) {
	if m.opts.Resolver == nil {
		m.dropOpen(cameraID, packageName, fmt.Errorf("no identity resolver configured"))
		return core.CameraAppInfo{}, fmt.Errorf("camera %s: %w: no identity resolver configured", cameraID, core.ErrIdentityResolution)
	}

	identity, err := m.opts.Resolver.ResolveCameraOwner(cameraID, packageName)
	if err != nil {
		m.dropOpen(cameraID, packageName, err)
		return core.CameraAppInfo{}, fmt.Errorf("camera %s: %w: %v", cameraID, core.ErrIdentityResolution, err)
	}

	info := core.NewCameraAppInfo(cameraID, identity.PID, identity.TaskID, identity.PackageName)

	// A fresh open supersedes any close still waiting on its retry.
	delete(m.pendingClose, cameraID)

	m.registry.Add(info)
	m.record(core.TrackEventOpened, cameraID, info)
	m.logger.Info("camera opened", "camera_id", cameraID, "package", info.PackageName, "pid", info.PID, "task_id", info.TaskID)

	m.policies.OnCameraOpened(info)

	return info, nil
}

func (m *Monitor) dropOpen(cameraID, packageName string, cause error) {
	m.record(core.TrackEventDropped, cameraID, core.CameraAppInfo{CameraID: cameraID, PackageName: packageName})
	m.logger.Warn("camera open dropped, owner identity unresolved",
		"camera_id", cameraID, "package", packageName, "error", cause.Error())
}

// TrackOnCameraClosed handles a "closed" hardware signal. The returned bool
// reports whether the camera was tracked at all; an unknown camera is a
// benign no-op. When a policy vetoes the close the session stays registered
// and the same attempt is re-run after the retry delay.
func (m *Monitor) TrackOnCameraClosed(cameraID string) (core.CameraAppInfo, bool) {
	return m.handleClose(cameraID, core.TrackEventCloseRequested)
}

func (m *Monitor) handleClose(cameraID string, kind core.TrackEventKind) (core.CameraAppInfo, bool) {
	info, ok := m.registry.AnyAppForCamera(cameraID)
	if !ok {
		// Nothing to close. Clear a leftover pending mark so a stale
		// retry cannot resurrect the attempt.
		delete(m.pendingClose, cameraID)
		m.logger.Debug("close signal for untracked camera", "camera_id", cameraID)
		return core.CameraAppInfo{}, false
	}

	m.record(kind, cameraID, info)

	canClose := m.policies.CanCameraBeClosed(cameraID, info)
	m.logger.Debug("policy consensus evaluated",
		"camera_id", cameraID, "policy_count", m.policies.Len(), "can_close", canClose)

	if !canClose {
		m.deferClose(cameraID, info)
		return info, true
	}

	delete(m.pendingClose, cameraID)
	m.registry.Remove(info)
	m.record(core.TrackEventClosed, cameraID, info)
	m.logger.Info("camera closed", "camera_id", cameraID, "package", info.PackageName, "task_id", info.TaskID)

	// Symmetric with open: the registry write precedes the notification,
	// so a policy observing during OnCameraClosed sees the camera closed.
	m.policies.OnCameraClosed(info)

	return info, true
}

func (m *Monitor) deferClose(cameraID string, info core.CameraAppInfo) {
	m.pendingClose[cameraID] = true
	m.record(core.TrackEventCloseDeferred, cameraID, info)
	m.logger.Info("camera close deferred, retry scheduled",
		"camera_id", cameraID, "delay", m.opts.RetryDelay)

	if m.opts.Scheduler == nil {
		m.logger.Warn("no scheduler configured, close stays pending until the next close signal",
			"camera_id", cameraID)
		return
	}
	m.opts.Scheduler.ScheduleAfterDelay(m.opts.RetryDelay, func() {
		m.retryClose(cameraID)
	})
}

// retryClose re-runs the close attempt for a still-pending camera. The
// pending mark is the staleness guard: a reopen or a close completed through
// another path clears it, turning a late-firing retry into a no-op. The
// attempt recomputes everything from current registry state rather than a
// captured CameraAppInfo, so a reconnected session is never closed by a
// leftover timer.
func (m *Monitor) retryClose(cameraID string) {
	if !m.pendingClose[cameraID] {
		m.logger.Debug("stale close retry ignored", "camera_id", cameraID)
		return
	}
	m.handleClose(cameraID, core.TrackEventRetry)
}

// IsCameraRunningForActivity reports whether any camera is tracked for the
// activity's owning task. Cameras with a pending close still count as
// running; a session only stops running once every policy consented.
func (m *Monitor) IsCameraRunningForActivity(activity core.ActivityHandle) bool {
	return m.registry.ContainsAnyCameraForTask(activity.TaskID())
}

// IsCameraRunningForTask reports whether any camera is tracked for the task.
func (m *Monitor) IsCameraRunningForTask(taskID int) bool {
	return m.registry.ContainsAnyCameraForTask(taskID)
}

// IsCameraWithIDRunningForTask reports whether the specific camera is
// tracked for the task.
func (m *Monitor) IsCameraWithIDRunningForTask(cameraID string, taskID int) bool {
	return m.registry.ContainsCameraAndTask(cameraID, taskID)
}

// IsClosePending reports whether a close for the camera has been vetoed and
// is awaiting a retry.
func (m *Monitor) IsClosePending(cameraID string) bool {
	return m.pendingClose[cameraID]
}

// TrackedCameras returns the identifiers of all cameras with at least one
// registered session, sorted.
func (m *Monitor) TrackedCameras() []string {
	return m.registry.Cameras()
}

// PolicyCount returns the number of registered policy observers.
func (m *Monitor) PolicyCount() int {
	return m.policies.Len()
}

// Events returns a defensive copy of the audit history.
func (m *Monitor) Events() []core.TrackEvent {
	events := make([]core.TrackEvent, len(m.events))
	copy(events, m.events)
	return events
}

func (m *Monitor) record(kind core.TrackEventKind, cameraID string, info core.CameraAppInfo) {
	m.events = append(m.events, core.NewTrackEvent(kind, cameraID, info))
}
