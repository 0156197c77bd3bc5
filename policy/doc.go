// Package policy presents an open set of CameraStatePolicy observers as one
// logical policy. Notifications fan out to every observer in registration
// order with no short-circuiting; close consent is the logical AND of all
// answers. The observer list is snapshotted before each dispatch pass, so a
// policy adding or removing observers from within its own callback cannot
// invalidate the iteration.
package policy
