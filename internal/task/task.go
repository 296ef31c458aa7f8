package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the current lifecycle state of a task
type Status string

// Possible task status values
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Phase distinguishes the sequential sub-stages of a single logical
// request that passes through the queue more than once under the same
// task id. Single-phase domains leave it empty.
type Phase string

// Phases of the two-stage commit workflow
const (
	PhaseNone     Phase = ""
	PhaseAnalyze  Phase = "analyze"
	PhaseGenerate Phase = "generate"
)

// Domain tags the request category a task belongs to.
type Domain string

// Supported request domains
const (
	DomainCommit Domain = "commit"
	DomainReadme Domain = "readme"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID      = errors.New("task ID cannot be empty")
	ErrEmptyUserMessage = errors.New("task user message cannot be empty")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidDomain    = errors.New("invalid task domain")
	ErrMissingResult    = errors.New("completed task must carry a result")
	ErrUnexpectedResult = errors.New("non-completed task cannot carry a result")
)

// Task represents one unit of queued generation work. SystemInstruction
// and UserMessage are opaque to the store; the orchestrator embeds the
// original request inside UserMessage so it can reconstruct it when a
// completed task is rewritten into its next phase.
//
// UpdatedAt is the last-relevant-transition time: set on insertion and
// refreshed on completion and on every rewrite, so the TTL clock always
// measures time since the last quiescent state.
type Task struct {
	ID                uuid.UUID `json:"id"`
	Domain            Domain    `json:"domain"`
	Phase             Phase     `json:"phase,omitempty"`
	Status            Status    `json:"status"`
	SystemInstruction string    `json:"system_instruction,omitempty"`
	UserMessage       string    `json:"user_message"`
	Result            string    `json:"result,omitempty"`
	Error             string    `json:"error,omitempty"`
	Retried           bool      `json:"-"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// New creates a pending Task for the given domain and instruction
// payload. It generates a new UUID for the task ID. The store stamps
// UpdatedAt on insertion.
func New(domain Domain, phase Phase, systemInstruction, userMessage string) (*Task, error) {
	t := &Task{
		ID:                uuid.New(),
		Domain:            domain,
		Phase:             phase,
		Status:            StatusPending,
		SystemInstruction: systemInstruction,
		UserMessage:       userMessage,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks that the Task holds a representable combination of
// status, result and error. A completed task always carries a result;
// a pending or processing task never does.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if !isValidDomain(t.Domain) {
		return ErrInvalidDomain
	}

	if t.UserMessage == "" {
		return ErrEmptyUserMessage
	}

	switch t.Status {
	case StatusCompleted:
		if t.Result == "" {
			return ErrMissingResult
		}
	case StatusPending, StatusProcessing:
		if t.Result != "" {
			return ErrUnexpectedResult
		}
	case StatusFailed:
		// Failed tasks may carry an error description in lieu of a result.
	default:
		return ErrInvalidStatus
	}

	return nil
}

// Terminal reports whether the task has reached a state the client can
// act on without polling again.
func (t *Task) Terminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

func isValidDomain(d Domain) bool {
	switch d {
	case DomainCommit, DomainReadme:
		return true
	default:
		return false
	}
}
