package policy

import (
	"fmt"

	"github.com/hupe1980/camstate/core"
	"github.com/hupe1980/camstate/logging"
)

// Aggregator holds the registered CameraStatePolicy observers and implements
// the ask-all / notify-all dispatch discipline. Observer identity is the
// interface value itself, so policies registered as pointers can be removed
// with the same pointer.
//
// Dispatch runs on the monitor's execution context; the aggregator itself
// takes no locks and must not be shared across contexts.
type Aggregator struct {
	policies []core.CameraStatePolicy
	logger   logging.Logger
}

// NewAggregator constructs an empty aggregator. A nil logger is replaced
// with a NoOpLogger.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Aggregator{logger: logger}
}

// Add registers a policy observer. Observers are notified in registration
// order. Adding during a dispatch pass affects subsequent passes only.
func (a *Aggregator) Add(p core.CameraStatePolicy) {
	a.policies = append(a.policies, p)
}

// Remove deregisters a policy observer. Removal takes effect for subsequent
// dispatch passes; notifications already delivered are not retracted. It
// reports whether the observer was registered.
func (a *Aggregator) Remove(p core.CameraStatePolicy) bool {
	for i, existing := range a.policies {
		if existing == p {
			a.policies = append(a.policies[:i], a.policies[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered observers.
func (a *Aggregator) Len() int {
	return len(a.policies)
}

// snapshot captures the observer list for one dispatch pass so reentrant
// Add/Remove calls cannot invalidate the iteration.
func (a *Aggregator) snapshot() []core.CameraStatePolicy {
	out := make([]core.CameraStatePolicy, len(a.policies))
	copy(out, a.policies)
	return out
}

// OnCameraOpened notifies every registered observer, in registration order.
// A panicking observer is isolated and reported; delivery to the remaining
// observers continues.
func (a *Aggregator) OnCameraOpened(info core.CameraAppInfo) {
	for _, p := range a.snapshot() {
		a.notifyOpened(p, info)
	}
}

func (a *Aggregator) notifyOpened(p core.CameraStatePolicy, info core.CameraAppInfo) {
	defer a.recoverPolicy("OnCameraOpened", info.CameraID)
	p.OnCameraOpened(info)
}

// CanCameraBeClosed queries every observer and returns the logical AND of
// all answers. Every observer is queried even after one vetoes, so each
// policy sees every close attempt. A panicking observer counts as
// consenting: the failure path degrades to "camera treated as not tracked"
// rather than pinning the session open forever.
func (a *Aggregator) CanCameraBeClosed(cameraID string, info core.CameraAppInfo) bool {
	canClose := true
	for _, p := range a.snapshot() {
		if !a.queryCanClose(p, cameraID, info) {
			canClose = false
		}
	}
	return canClose
}

func (a *Aggregator) queryCanClose(p core.CameraStatePolicy, cameraID string, info core.CameraAppInfo) (consent bool) {
	consent = true
	defer a.recoverPolicy("CanCameraBeClosed", cameraID)
	consent = p.CanCameraBeClosed(cameraID, info)
	return consent
}

// OnCameraClosed notifies every registered observer, in registration order,
// with the same isolation rules as OnCameraOpened.
func (a *Aggregator) OnCameraClosed(info core.CameraAppInfo) {
	for _, p := range a.snapshot() {
		a.notifyClosed(p, info)
	}
}

func (a *Aggregator) notifyClosed(p core.CameraStatePolicy, info core.CameraAppInfo) {
	defer a.recoverPolicy("OnCameraClosed", info.CameraID)
	p.OnCameraClosed(info)
}

// recoverPolicy reports a panicking observer to the diagnostic channel
// without propagating it into the hardware signal path.
func (a *Aggregator) recoverPolicy(callback, cameraID string) {
	if rec := recover(); rec != nil {
		a.logger.Error("camera state policy panicked",
			"callback", callback, "camera_id", cameraID, "panic", fmt.Sprintf("%v", rec))
	}
}
