package testutil

import (
	"github.com/hupe1980/camstate/core"
)

// InfoBuilder helps construct CameraAppInfo records with fluent chaining.
// Example:
//
//	info := NewInfoBuilder("camera-1").PID(101).Task(1).Package("com.example").Build()
type InfoBuilder struct {
	info core.CameraAppInfo
}

// NewInfoBuilder creates a builder for a session record on the given camera.
func NewInfoBuilder(cameraID string) *InfoBuilder {
	return &InfoBuilder{info: core.CameraAppInfo{CameraID: cameraID}}
}

// PID sets the owning process id (chainable).
func (b *InfoBuilder) PID(pid int) *InfoBuilder {
	b.info.PID = pid
	return b
}

// Task sets the owning task id (chainable).
func (b *InfoBuilder) Task(taskID int) *InfoBuilder {
	b.info.TaskID = taskID
	return b
}

// Package sets the owning package name (chainable).
func (b *InfoBuilder) Package(name string) *InfoBuilder {
	b.info.PackageName = name
	return b
}

// Build returns the constructed CameraAppInfo value.
func (b *InfoBuilder) Build() core.CameraAppInfo {
	return b.info
}

// Activity is a trivial core.ActivityHandle bound to one task.
type Activity struct {
	Task int
}

// TaskID implements core.ActivityHandle.
func (a Activity) TaskID() int { return a.Task }
