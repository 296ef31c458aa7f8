// Package api handles incoming HTTP requests, request validation, and
// response formatting for both sides of the queue: the client-facing
// generation and poll endpoints and the worker-facing pop/complete
// endpoints. It translates HTTP concerns into orchestrator operations.
package api
