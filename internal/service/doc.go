// Package service implements the task lifecycle orchestrator: the
// application layer between the HTTP handlers and the in-memory task
// store.
//
// It owns the parts of the workflow the flat store cannot express:
//
//   - enqueueing validated commit and README requests as pending tasks
//   - the poll-driven phase rewrite that turns a completed analyze-phase
//     commit task into a pending generate-phase task under the same id
//   - the grounding check on generated commit messages, bounded to
//     exactly one retry per task
//   - the worker-facing claim/complete protocol
//
// All failure modes are typed, returned errors; a task is only ever
// marked failed with a descriptive reason, never silently dropped.
package service
