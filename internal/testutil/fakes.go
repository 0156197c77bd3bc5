package testutil

import (
	"fmt"
	"time"

	"github.com/hupe1980/camstate/core"
)

// StaticResolver resolves every camera owner to a fixed identity. When Err
// is set resolution fails instead.
type StaticResolver struct {
	Identity core.Identity
	Err      error
	Calls    int
}

// ResolveCameraOwner implements core.IdentityResolver.
func (r *StaticResolver) ResolveCameraOwner(cameraID, packageName string) (core.Identity, error) {
	r.Calls++
	if r.Err != nil {
		return core.Identity{}, r.Err
	}
	id := r.Identity
	if id.PackageName == "" {
		id.PackageName = packageName
	}
	return id, nil
}

// TaskResolver maps package names to identities, failing on unknown
// packages. Useful when a test opens cameras for several consumers.
type TaskResolver struct {
	ByPackage map[string]core.Identity
}

// ResolveCameraOwner implements core.IdentityResolver.
func (r *TaskResolver) ResolveCameraOwner(cameraID, packageName string) (core.Identity, error) {
	id, ok := r.ByPackage[packageName]
	if !ok {
		return core.Identity{}, fmt.Errorf("unknown package %s", packageName)
	}
	return id, nil
}

// ManualScheduler captures scheduled callbacks so tests can fire retries
// deterministically instead of waiting on real timers.
type ManualScheduler struct {
	Delays  []time.Duration
	pending []func()
}

// ScheduleAfterDelay implements core.Scheduler by queueing the callback.
func (s *ManualScheduler) ScheduleAfterDelay(delay time.Duration, fn func()) {
	s.Delays = append(s.Delays, delay)
	s.pending = append(s.pending, fn)
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

// Fire runs the oldest queued callback. It reports whether one was queued.
func (s *ManualScheduler) Fire() bool {
	if len(s.pending) == 0 {
		return false
	}
	fn := s.pending[0]
	s.pending = s.pending[1:]
	fn()
	return true
}

// FireAll runs queued callbacks until none remain, including callbacks
// queued by the callbacks themselves, up to the given limit. It returns the
// number fired. The limit guards tests against a policy that never consents
// rescheduling forever.
func (s *ManualScheduler) FireAll(limit int) int {
	fired := 0
	for fired < limit && s.Fire() {
		fired++
	}
	return fired
}

// RecordingPolicy counts every callback invocation and answers CanClose
// from a scripted queue of verdicts (defaulting to consent when the queue
// is exhausted).
type RecordingPolicy struct {
	Name string

	OpenedInfos []core.CameraAppInfo
	ClosedInfos []core.CameraAppInfo
	CanCloseIDs []string

	// Verdicts are consumed one per CanCameraBeClosed call; when empty the
	// policy consents.
	Verdicts []bool

	// OnOpened, when set, runs inside OnCameraOpened (for reentrancy tests).
	OnOpened func(info core.CameraAppInfo)
}

// OnCameraOpened implements core.CameraStatePolicy.
func (p *RecordingPolicy) OnCameraOpened(info core.CameraAppInfo) {
	p.OpenedInfos = append(p.OpenedInfos, info)
	if p.OnOpened != nil {
		p.OnOpened(info)
	}
}

// CanCameraBeClosed implements core.CameraStatePolicy.
func (p *RecordingPolicy) CanCameraBeClosed(cameraID string, info core.CameraAppInfo) bool {
	p.CanCloseIDs = append(p.CanCloseIDs, cameraID)
	if len(p.Verdicts) == 0 {
		return true
	}
	verdict := p.Verdicts[0]
	p.Verdicts = p.Verdicts[1:]
	return verdict
}

// OnCameraClosed implements core.CameraStatePolicy.
func (p *RecordingPolicy) OnCameraClosed(info core.CameraAppInfo) {
	p.ClosedInfos = append(p.ClosedInfos, info)
}

// OpenedCount returns the number of OnCameraOpened deliveries.
func (p *RecordingPolicy) OpenedCount() int { return len(p.OpenedInfos) }

// ClosedCount returns the number of OnCameraClosed deliveries.
func (p *RecordingPolicy) ClosedCount() int { return len(p.ClosedInfos) }

// QueryCount returns the number of CanCameraBeClosed queries.
func (p *RecordingPolicy) QueryCount() int { return len(p.CanCloseIDs) }
