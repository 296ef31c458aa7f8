package service

import "errors"

// Typed outcomes of the lifecycle orchestrator. These are returned,
// never panicked; handlers map them onto HTTP status codes.
var (
	// ErrTaskNotFound is returned when a task id is absent from the
	// store: never created, or already garbage collected.
	ErrTaskNotFound = errors.New("task not found")

	// ErrMalformedPayload is returned when a record's own stored
	// instructions or result cannot be parsed during rewrite. Always
	// terminal for the task.
	ErrMalformedPayload = errors.New("malformed stored task payload")

	// ErrEmptyResult is returned when a worker reports a completion
	// without any result text.
	ErrEmptyResult = errors.New("result cannot be empty")
)
