package core

import (
	"time"

	"github.com/google/uuid"
)

// TrackEventKind categorizes entries in the tracking audit history.
type TrackEventKind string

const (
	// TrackEventOpened records a camera session becoming active.
	TrackEventOpened TrackEventKind = "opened"

	// TrackEventCloseRequested records a close signal arriving for a
	// tracked camera, before the policies have been queried.
	TrackEventCloseRequested TrackEventKind = "close_requested"

	// TrackEventCloseDeferred records at least one policy vetoing a close;
	// a retry has been scheduled.
	TrackEventCloseDeferred TrackEventKind = "close_deferred"

	// TrackEventRetry records a scheduled retry re-running the close logic.
	TrackEventRetry TrackEventKind = "retry"

	// TrackEventClosed records a camera session fully closing after every
	// policy consented.
	TrackEventClosed TrackEventKind = "closed"

	// TrackEventDropped records an open signal discarded because the
	// consumer identity could not be resolved.
	TrackEventDropped TrackEventKind = "dropped"
)

// TrackEvent is an immutable audit record of one tracking transition. The
// monitor appends one per observed signal; hosting services can use the
// history for diagnostics without re-deriving state machine behavior.
type TrackEvent struct {
	ID        string
	Kind      TrackEventKind
	CameraID  string
	Info      CameraAppInfo
	Timestamp time.Time
}

// NewTrackEvent creates an audit record for the given transition.
func NewTrackEvent(kind TrackEventKind, cameraID string, info CameraAppInfo) TrackEvent {
	return TrackEvent{
		ID:        NewID(),
		Kind:      kind,
		CameraID:  cameraID,
		Info:      info,
		Timestamp: time.Now().UTC(),
	}
}

// NewID generates a unique identifier for audit records.
func NewID() string {
	return uuid.New().String()
}
