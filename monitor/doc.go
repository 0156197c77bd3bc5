// Package monitor implements the camera session orchestrator. It receives
// raw open/close hardware signals, resolves the consuming application's
// identity, drives the association registry and the policy aggregator, and
// owns the deferred-close retry state machine.
//
// Per camera identifier the monitor moves through three states: closed (no
// registry entry), open (entry present), and close-pending (a close signal
// arrived but at least one policy vetoed it). A vetoed close is retried
// asynchronously until every policy consents; reopening a camera cancels
// the relevance of its pending retry.
//
// All monitor methods are expected to run on one serialized execution
// context (see the dispatch package). Ordering per camera identifier is
// strict arrival order; the registry write always precedes the policy
// notification so callbacks observe consistent state.
package monitor
