package registry

import (
	"testing"

	"github.com/hupe1980/camstate/core"
)

func TestRegistry_AddAndContains(t *testing.T) {
	r := New()
	if !r.IsEmpty() {
		t.Fatal("new registry should be empty")
	}

	info := core.NewCameraAppInfo("camera-1", 101, 1, "com.example")
	r.Add(info)

	if r.IsEmpty() {
		t.Error("registry should not be empty after Add")
	}
	if !r.ContainsCameraAndTask("camera-1", 1) {
		t.Error("expected camera-1/task 1 to be tracked")
	}
	if r.ContainsCameraAndTask("camera-1", 2) {
		t.Error("task 2 should not be tracked for camera-1")
	}
	if r.ContainsCameraAndTask("camera-2", 1) {
		t.Error("camera-2 should not be tracked")
	}
	if !r.ContainsAnyCameraForTask(1) {
		t.Error("task 1 should have a tracked camera")
	}
}

func TestRegistry_AddIsIdempotentForValueEqualEntries(t *testing.T) {
	r := New()
	r.Add(core.NewCameraAppInfo("camera-1", 101, 1, "com.example"))
	r.Add(core.NewCameraAppInfo("camera-1", 101, 1, "com.example"))

	if r.Len() != 1 {
		t.Fatalf("expected 1 entry after duplicate add, got %d", r.Len())
	}
	if !r.Remove(core.NewCameraAppInfo("camera-1", 101, 1, "com.example")) {
		t.Fatal("remove should match the single entry")
	}
	if !r.IsEmpty() {
		t.Error("registry should be empty after removing the only entry")
	}
}

func TestRegistry_RemoveMatchesByValueNotIdentity(t *testing.T) {
	r := New()
	r.Add(core.NewCameraAppInfo("camera-1", 101, 1, "com.example"))

	// A freshly constructed record with the same four fields must remove
	// the existing entry.
	fresh := core.CameraAppInfo{CameraID: "camera-1", PID: 101, TaskID: 1, PackageName: "com.example"}
	if !r.Remove(fresh) {
		t.Fatal("value-equal record should remove the entry")
	}
	if !r.IsEmpty() {
		t.Error("bucket should be dropped with its last entry")
	}
}

func TestRegistry_RemoveUnknownIsNoOp(t *testing.T) {
	r := New()
	if r.Remove(core.NewCameraAppInfo("camera-1", 101, 1, "com.example")) {
		t.Error("removing from an empty registry should report false")
	}

	r.Add(core.NewCameraAppInfo("camera-1", 101, 1, "com.example"))
	if r.Remove(core.NewCameraAppInfo("camera-1", 999, 1, "com.example")) {
		t.Error("mismatched pid should not remove anything")
	}
	if r.Len() != 1 {
		t.Errorf("expected entry to survive, got %d entries", r.Len())
	}
}

func TestRegistry_MultipleTasksShareOneCamera(t *testing.T) {
	r := New()
	r.Add(core.NewCameraAppInfo("camera-1", 101, 1, "com.example"))
	r.Add(core.NewCameraAppInfo("camera-1", 202, 2, "com.other"))

	if !r.ContainsCameraAndTask("camera-1", 1) || !r.ContainsCameraAndTask("camera-1", 2) {
		t.Fatal("both tasks should be tracked for camera-1")
	}

	r.Remove(core.NewCameraAppInfo("camera-1", 101, 1, "com.example"))
	if r.ContainsCameraAndTask("camera-1", 1) {
		t.Error("task 1 should be gone")
	}
	if !r.ContainsCameraAndTask("camera-1", 2) {
		t.Error("task 2 should remain tracked")
	}
	if r.IsEmpty() {
		t.Error("registry should not be empty while camera-1 has an entry")
	}
}

func TestRegistry_OneTaskHoldsMultipleCameras(t *testing.T) {
	r := New()
	r.Add(core.NewCameraAppInfo("camera-1", 101, 1, "com.example"))
	r.Add(core.NewCameraAppInfo("camera-2", 101, 1, "com.example"))

	if !r.ContainsCameraAndTask("camera-1", 1) || !r.ContainsCameraAndTask("camera-2", 1) {
		t.Fatal("both cameras should be independently queryable")
	}

	r.Remove(core.NewCameraAppInfo("camera-1", 101, 1, "com.example"))
	if r.ContainsCameraAndTask("camera-1", 1) {
		t.Error("camera-1 should be gone")
	}
	if !r.ContainsCameraAndTask("camera-2", 1) {
		t.Error("camera-2 should be left intact")
	}
	if !r.ContainsAnyCameraForTask(1) {
		t.Error("task 1 still holds camera-2")
	}
}

func TestRegistry_AnyAppForCameraIsDeterministic(t *testing.T) {
	r := New()
	if _, ok := r.AnyAppForCamera("camera-1"); ok {
		t.Fatal("untracked camera should yield not-found")
	}

	first := core.NewCameraAppInfo("camera-1", 101, 1, "com.example")
	second := core.NewCameraAppInfo("camera-1", 202, 2, "com.other")
	r.Add(first)
	r.Add(second)

	got, ok := r.AnyAppForCamera("camera-1")
	if !ok || got != first {
		t.Fatalf("expected first surviving insertion %v, got %v (ok=%v)", first, got, ok)
	}

	r.Remove(first)
	got, ok = r.AnyAppForCamera("camera-1")
	if !ok || got != second {
		t.Fatalf("expected %v after removing first, got %v", second, got)
	}
}

func TestRegistry_Cameras(t *testing.T) {
	r := New()
	r.Add(core.NewCameraAppInfo("camera-2", 101, 1, "com.example"))
	r.Add(core.NewCameraAppInfo("camera-1", 101, 1, "com.example"))

	ids := r.Cameras()
	if len(ids) != 2 || ids[0] != "camera-1" || ids[1] != "camera-2" {
		t.Errorf("expected sorted ids [camera-1 camera-2], got %v", ids)
	}
}
