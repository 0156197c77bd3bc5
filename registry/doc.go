// Package registry implements the camera/task/app association registry: a
// volatile multimap from camera identifier to the set of CameraAppInfo
// records currently considered open for that camera. It has no knowledge of
// policies or timers; the monitor package owns the only instance and drives
// all mutations.
package registry
