package core

import "fmt"

// CameraAppInfo identifies a single camera session: which camera is open and
// which application consumer (process, task, package) opened it. Values are
// immutable once constructed and compare over all four fields, so a freshly
// built record with the same fields matches an existing registry entry.
type CameraAppInfo struct {
	CameraID    string
	PID         int
	TaskID      int
	PackageName string
}

// NewCameraAppInfo constructs a CameraAppInfo value.
func NewCameraAppInfo(cameraID string, pid, taskID int, packageName string) CameraAppInfo {
	return CameraAppInfo{CameraID: cameraID, PID: pid, TaskID: taskID, PackageName: packageName}
}

// IsZero reports whether the info carries no session identity. The zero value
// is used as the "nothing tracked" result on benign no-op paths.
func (i CameraAppInfo) IsZero() bool {
	return i == CameraAppInfo{}
}

// String renders the record for diagnostics.
func (i CameraAppInfo) String() string {
	return fmt.Sprintf("camera=%s pid=%d task=%d package=%s", i.CameraID, i.PID, i.TaskID, i.PackageName)
}

// Identity is the (pid, taskId, packageName) triple returned by an
// IdentityResolver for the foreground consumer of an open event.
type Identity struct {
	PID         int
	TaskID      int
	PackageName string
}

// IdentityResolver resolves the current foreground consumer of a camera at
// the moment an "opened" hardware signal is observed. Implementations are
// supplied by the hosting service; resolution failure causes the open event
// to be dropped with a diagnostic.
type IdentityResolver interface {
	ResolveCameraOwner(cameraID, packageName string) (Identity, error)
}

// IdentityResolverFunc adapts a plain function to the IdentityResolver
// interface.
type IdentityResolverFunc func(cameraID, packageName string) (Identity, error)

// ResolveCameraOwner implements IdentityResolver.
func (f IdentityResolverFunc) ResolveCameraOwner(cameraID, packageName string) (Identity, error) {
	return f(cameraID, packageName)
}

// ActivityHandle abstracts the hosting service's activity records down to
// the one property the tracking core needs: the owning task.
type ActivityHandle interface {
	TaskID() int
}
