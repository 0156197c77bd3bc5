package registry

import (
	"sort"
	"sync"

	"github.com/hupe1980/camstate/core"
)

// Registry maps camera identifiers to the CameraAppInfo records currently
// open for them. Multiple tasks may share one camera (multi-window) and one
// task may hold several cameras concurrently; both directions are queryable.
//
// Contract:
//   - An entry is present iff an open has been tracked and no matching close
//     has completed
//   - Remove matches by full value equality, not identity
//   - Removing the last entry for a camera drops the bucket (IsEmpty)
//   - No operation panics; unknown keys yield "not found" results
//
// The internal mutex is a leaf lock: it is never held while calling out, so
// the registry stays safe to query from within a policy callback.
type Registry struct {
	mu      sync.RWMutex
	cameras map[string][]core.CameraAppInfo
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{cameras: make(map[string][]core.CameraAppInfo)}
}

// Add inserts info into the set for its camera identifier. Value-equal
// entries are deduplicated, so repeated adds keep a single logical member.
func (r *Registry) Add(info core.CameraAppInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.cameras[info.CameraID] {
		if existing == info {
			return
		}
	}
	r.cameras[info.CameraID] = append(r.cameras[info.CameraID], info)
}

// Remove deletes any value-equal entry across all camera identifiers. If the
// removed entry was the last for its camera, the camera's bucket is dropped.
// It reports whether an entry was removed.
func (r *Registry) Remove(info core.CameraAppInfo) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, ok := r.cameras[info.CameraID]
	if !ok {
		return false
	}
	for i, existing := range entries {
		if existing == info {
			entries = append(entries[:i], entries[i+1:]...)
			if len(entries) == 0 {
				delete(r.cameras, info.CameraID)
			} else {
				r.cameras[info.CameraID] = entries
			}
			return true
		}
	}
	return false
}

// ContainsCameraAndTask reports whether some entry for cameraID belongs to
// the given task.
func (r *Registry) ContainsCameraAndTask(cameraID string, taskID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, info := range r.cameras[cameraID] {
		if info.TaskID == taskID {
			return true
		}
	}
	return false
}

// ContainsAnyCameraForTask reports whether any entry, for any camera,
// belongs to the given task.
func (r *Registry) ContainsAnyCameraForTask(taskID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entries := range r.cameras {
		for _, info := range entries {
			if info.TaskID == taskID {
				return true
			}
		}
	}
	return false
}

// AnyAppForCamera returns a representative entry for the camera: the first
// surviving insertion, which keeps the choice deterministic per run. The
// second result is false when the camera is not tracked.
func (r *Registry) AnyAppForCamera(cameraID string) (core.CameraAppInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.cameras[cameraID]
	if len(entries) == 0 {
		return core.CameraAppInfo{}, false
	}
	return entries[0], true
}

// IsEmpty reports whether no camera session is tracked.
func (r *Registry) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cameras) == 0
}

// Len returns the total number of tracked session records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, entries := range r.cameras {
		n += len(entries)
	}
	return n
}

// Cameras returns the tracked camera identifiers, sorted, as a defensive
// copy for diagnostics.
func (r *Registry) Cameras() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.cameras))
	for id := range r.cameras {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
