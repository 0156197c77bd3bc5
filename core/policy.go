package core

// CameraStatePolicy observes camera session lifecycle transitions and may
// veto an immediate close. Concrete policies apply whatever treatment they
// own (letterboxing, forced rotation, activity refresh); the tracking core
// only depends on this three-method contract.
//
// Contract:
//   - OnCameraOpened is invoked after the session is registered, so a policy
//     querying "is this camera running" during the callback observes it open
//   - CanCameraBeClosed is re-queried on every close attempt; returning false
//     defers the close and schedules an asynchronous retry
//   - OnCameraClosed is invoked after the session is deregistered
//
// Implementations must be fast and must not mutate the registry; they may
// call back into the monitor's query methods.
type CameraStatePolicy interface {
	// OnCameraOpened reacts to a camera session becoming active.
	OnCameraOpened(info CameraAppInfo)

	// CanCameraBeClosed reports whether the policy is ready for the given
	// camera to be treated as closed. Returning false vetoes the close for
	// this attempt; the monitor retries later.
	CanCameraBeClosed(cameraID string, info CameraAppInfo) bool

	// OnCameraClosed reacts to a camera session having fully closed.
	OnCameraClosed(info CameraAppInfo)
}