// Package core provides the foundational domain types and boundary
// interfaces used by CamState. It defines the core abstractions for:
//
//   - CameraAppInfo (immutable camera-session identity records)
//   - CameraStatePolicy (lifecycle observers that can veto a close)
//   - IdentityResolver (who owns a camera at the moment it opens)
//   - Scheduler (deferred execution on the owning execution context)
//   - TrackEvent (audit records for the tracking history)
//
// The package intentionally keeps implementation concerns (the registry,
// the policy aggregator, the monitor state machine) out of scope, exposing
// small interfaces so hosting services can supply their own identity
// resolution, dispatch and policy implementations.
package core
