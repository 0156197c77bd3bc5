package policy

import "github.com/hupe1980/camstate/core"

// Func wraps plain functions as a CameraStatePolicy implementation. Nil
// fields are treated as no-ops (and as consent for CanClose), which keeps
// single-concern policies concise.
//
// Example:
//
//	veto := &policy.Func{
//	    CanClose: func(cameraID string, info core.CameraAppInfo) bool {
//	        return rotationSettled(info.TaskID)
//	    },
//	}
//	monitor.AddCameraStatePolicy(veto)
type Func struct {
	Opened   func(info core.CameraAppInfo)
	CanClose func(cameraID string, info core.CameraAppInfo) bool
	Closed   func(info core.CameraAppInfo)
}

// OnCameraOpened calls the Opened function when set.
func (f *Func) OnCameraOpened(info core.CameraAppInfo) {
	if f.Opened != nil {
		f.Opened(info)
	}
}

// CanCameraBeClosed calls the CanClose function when set; a nil function
// consents.
func (f *Func) CanCameraBeClosed(cameraID string, info core.CameraAppInfo) bool {
	if f.CanClose != nil {
		return f.CanClose(cameraID, info)
	}
	return true
}

// OnCameraClosed calls the Closed function when set.
func (f *Func) OnCameraClosed(info core.CameraAppInfo) {
	if f.Closed != nil {
		f.Closed(info)
	}
}
