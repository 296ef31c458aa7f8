package api

import "encoding/json"

// Common request/response structures

// CommitTaskResponse acknowledges an accepted commit generation request.
type CommitTaskResponse struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ReadmeGenerateRequest defines the payload for README generation. The
// fact is kept raw so field absence survives for validation and for the
// stored worker payload.
type ReadmeGenerateRequest struct {
	Fact      json.RawMessage `json:"fact"       validate:"required"`
	Mode      string          `json:"mode"       validate:"required"`
	DocTarget string          `json:"doc_target" validate:"required"`
	Async     bool            `json:"async"`
}

// ReadmeGenerateResponse carries either inline content (sync path) or a
// task id to poll (async path). Fallback is reserved for future
// failover and is always false for now.
type ReadmeGenerateResponse struct {
	Content  string `json:"content,omitempty"`
	TaskID   string `json:"task_id,omitempty"`
	Template string `json:"template"`
	Fallback bool   `json:"fallback"`
}

// TaskStatusResponse is the client-facing poll view of a task.
type TaskStatusResponse struct {
	TaskID string `json:"task_id"`
	Domain string `json:"domain"`
	Status string `json:"status"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WorkerTaskResponse is what a worker receives when it claims a task.
type WorkerTaskResponse struct {
	ID                string `json:"id"`
	Domain            string `json:"domain"`
	Phase             string `json:"phase,omitempty"`
	Status            string `json:"status"`
	SystemInstruction string `json:"system_instruction,omitempty"`
	UserMessage       string `json:"user_message"`
}

// CompleteTaskRequest is the worker's completion payload.
type CompleteTaskRequest struct {
	Result string `json:"result" validate:"required,min=1"`
}

// CompleteTaskResponse acknowledges a reported result.
type CompleteTaskResponse struct {
	Status string `json:"status"`
}
