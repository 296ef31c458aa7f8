// Package task holds the queued unit of work and the in-memory store
// that owns every task record for the lifetime of the process. The
// store provides queue-like claim semantics for polling workers and
// evicts stale completed records on every insertion. It never
// interprets instruction or result payloads; the lifecycle rules live
// in the service package.
package task
