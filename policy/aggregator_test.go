package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/camstate/core"
	"github.com/hupe1980/camstate/internal/testutil"
)

func TestAggregator_NotifiesInRegistrationOrder(t *testing.T) {
	agg := NewAggregator(nil)

	var order []string
	mk := func(name string) *Func {
		return &Func{Opened: func(core.CameraAppInfo) { order = append(order, name) }}
	}
	first, second, third := mk("first"), mk("second"), mk("third")
	agg.Add(first)
	agg.Add(second)
	agg.Add(third)

	agg.OnCameraOpened(core.NewCameraAppInfo("camera-1", 101, 1, "com.example"))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestAggregator_CanCameraBeClosedQueriesEveryPolicy(t *testing.T) {
	agg := NewAggregator(nil)

	veto := &testutil.RecordingPolicy{Name: "veto", Verdicts: []bool{false}}
	consent := &testutil.RecordingPolicy{Name: "consent"}
	agg.Add(veto)
	agg.Add(consent)

	info := core.NewCameraAppInfo("camera-1", 101, 1, "com.example")
	assert.False(t, agg.CanCameraBeClosed("camera-1", info))

	// The consenting policy must still have been queried after the veto.
	assert.Equal(t, 1, veto.QueryCount())
	assert.Equal(t, 1, consent.QueryCount())

	assert.True(t, agg.CanCameraBeClosed("camera-1", info))
	assert.Equal(t, 2, veto.QueryCount())
	assert.Equal(t, 2, consent.QueryCount())
}

func TestAggregator_RemoveTakesEffectForSubsequentEvents(t *testing.T) {
	agg := NewAggregator(nil)

	p := &testutil.RecordingPolicy{}
	agg.Add(p)

	info := core.NewCameraAppInfo("camera-1", 101, 1, "com.example")
	agg.OnCameraOpened(info)
	require.Equal(t, 1, p.OpenedCount())

	require.True(t, agg.Remove(p))
	agg.OnCameraOpened(info)

	// No retroactive un-notification, no new deliveries.
	assert.Equal(t, 1, p.OpenedCount())
	assert.False(t, agg.Remove(p), "double remove should report false")
}

func TestAggregator_SelfRemovalDuringDispatchIsSafe(t *testing.T) {
	agg := NewAggregator(nil)

	var selfRemover *Func
	selfRemoved := 0
	selfRemover = &Func{Opened: func(core.CameraAppInfo) {
		selfRemoved++
		agg.Remove(selfRemover)
	}}
	after := &testutil.RecordingPolicy{}

	agg.Add(selfRemover)
	agg.Add(after)

	info := core.NewCameraAppInfo("camera-1", 101, 1, "com.example")
	agg.OnCameraOpened(info)

	// The snapshot taken before dispatch still delivers to the policy
	// registered after the self-remover.
	assert.Equal(t, 1, selfRemoved)
	assert.Equal(t, 1, after.OpenedCount())
	assert.Equal(t, 1, agg.Len())

	agg.OnCameraOpened(info)
	assert.Equal(t, 1, selfRemoved, "removed policy should see no further events")
	assert.Equal(t, 2, after.OpenedCount())
}

func TestAggregator_AddDuringDispatchAffectsNextPassOnly(t *testing.T) {
	agg := NewAggregator(nil)

	late := &testutil.RecordingPolicy{}
	adder := &Func{Opened: func(core.CameraAppInfo) { agg.Add(late) }}
	agg.Add(adder)

	info := core.NewCameraAppInfo("camera-1", 101, 1, "com.example")
	agg.OnCameraOpened(info)
	assert.Zero(t, late.OpenedCount(), "policy added mid-pass must not be notified for that pass")

	agg.OnCameraOpened(info)
	assert.Equal(t, 1, late.OpenedCount())
	// The adder registered 'late' again on the second pass; identity-based
	// membership makes that a second slot.
	assert.Equal(t, 3, agg.Len())
}

func TestAggregator_PanickingPolicyIsIsolated(t *testing.T) {
	agg := NewAggregator(nil)

	panicking := &Func{
		Opened:   func(core.CameraAppInfo) { panic("treatment failed") },
		CanClose: func(string, core.CameraAppInfo) bool { panic("not ready") },
		Closed:   func(core.CameraAppInfo) { panic("cleanup failed") },
	}
	steady := &testutil.RecordingPolicy{}
	agg.Add(panicking)
	agg.Add(steady)

	info := core.NewCameraAppInfo("camera-1", 101, 1, "com.example")

	require.NotPanics(t, func() { agg.OnCameraOpened(info) })
	assert.Equal(t, 1, steady.OpenedCount())

	// A panicking policy counts as consenting so the session cannot be
	// pinned open by a broken observer.
	canClose := false
	require.NotPanics(t, func() { canClose = agg.CanCameraBeClosed("camera-1", info) })
	assert.True(t, canClose)
	assert.Equal(t, 1, steady.QueryCount())

	require.NotPanics(t, func() { agg.OnCameraClosed(info) })
	assert.Equal(t, 1, steady.ClosedCount())
}

func TestAggregator_EmptySetConsents(t *testing.T) {
	agg := NewAggregator(nil)
	info := core.NewCameraAppInfo("camera-1", 101, 1, "com.example")

	assert.True(t, agg.CanCameraBeClosed("camera-1", info))
	assert.NotPanics(t, func() { agg.OnCameraOpened(info) })
	assert.Zero(t, agg.Len())
}

func TestFunc_NilFieldsAreNoOps(t *testing.T) {
	f := &Func{}
	info := core.NewCameraAppInfo("camera-1", 101, 1, "com.example")

	assert.NotPanics(t, func() { f.OnCameraOpened(info) })
	assert.NotPanics(t, func() { f.OnCameraClosed(info) })
	assert.True(t, f.CanCameraBeClosed("camera-1", info))
}
