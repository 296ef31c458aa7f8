package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/subtextdev/subtext-api/internal/domain"
	"github.com/subtextdev/subtext-api/internal/generation"
	"github.com/subtextdev/subtext-api/internal/task"
)

// PollView is what a client sees when it polls a task. The internal
// phase machinery is invisible: a task being rewritten into its next
// phase reads as "still pending".
type PollView struct {
	TaskID uuid.UUID
	Domain task.Domain
	Status task.Status
	Result string
	Error  string
}

// Orchestrator implements the task lifecycle on top of the flat store:
// enqueueing validated requests, the poll-driven phase rewrite of
// two-phase commit tasks, the grounding check with its single bounded
// retry, and the worker claim/complete protocol.
type Orchestrator struct {
	// mu serializes the read-modify-write cycles Poll performs across
	// several store calls, so two concurrent polls of the same
	// completed task cannot both rewrite it.
	mu       sync.Mutex
	store    *task.MemoryStore
	builders generation.Builders
	validate *validator.Validate
	logger   *slog.Logger
}

// NewOrchestrator creates an Orchestrator backed by the given store and
// prompt builders.
func NewOrchestrator(store *task.MemoryStore, builders generation.Builders, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		store:    store,
		builders: builders,
		validate: validator.New(),
		logger:   logger.With("component", "orchestrator"),
	}
}

// EnqueueCommit validates a commit request, builds the analyze-phase
// instructions and inserts a pending task. Returns the task id the
// client polls with.
func (o *Orchestrator) EnqueueCommit(ctx context.Context, req domain.CommitRequest) (uuid.UUID, error) {
	if err := o.validate.Struct(req); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := req.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	instr := o.builders.Commit.Analysis(req)

	payload, err := commitEnvelope{Request: req, Prompt: instr.User}.encode()
	if err != nil {
		return uuid.Nil, err
	}

	t, err := task.New(task.DomainCommit, task.PhaseAnalyze, instr.System, payload)
	if err != nil {
		return uuid.Nil, err
	}
	if err := o.store.Insert(t); err != nil {
		return uuid.Nil, err
	}

	o.logger.InfoContext(ctx, "commit task enqueued", "task_id", t.ID)
	return t.ID, nil
}

// EnqueueReadme validates a README request and inserts a single-phase
// pending task. The fact is kept as raw JSON inside the stored payload
// so field absence survives for the worker. Returns the task id and
// the name of the template the job is bound to.
func (o *Orchestrator) EnqueueReadme(
	ctx context.Context,
	factRaw json.RawMessage,
	target domain.DocTarget,
	mode domain.Mode,
) (uuid.UUID, string, error) {
	fact, err := decodeFact(factRaw)
	if err != nil {
		return uuid.Nil, "", err
	}
	if !domain.IsValidDocTarget(target) {
		return uuid.Nil, "", fmt.Errorf("%w: %v: %q", domain.ErrValidation, domain.ErrInvalidDocTarget, target)
	}
	if !domain.IsValidMode(mode) {
		return uuid.Nil, "", fmt.Errorf("%w: %v: %q", domain.ErrValidation, domain.ErrInvalidMode, mode)
	}
	if err := fact.Validate(); err != nil {
		return uuid.Nil, "", err
	}

	system, tmpl, err := o.builders.Readme.Payload(target)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	payload, err := readmeEnvelope{
		Fact:         factRaw,
		Mode:         mode,
		DocTarget:    target,
		Template:     tmpl.Name,
		TemplateBody: tmpl.Body,
	}.encode()
	if err != nil {
		return uuid.Nil, "", err
	}

	t, err := task.New(task.DomainReadme, task.PhaseNone, system, payload)
	if err != nil {
		return uuid.Nil, "", err
	}
	if err := o.store.Insert(t); err != nil {
		return uuid.Nil, "", err
	}

	o.logger.InfoContext(ctx, "readme task enqueued", "task_id", t.ID, "template", tmpl.Name)
	return t.ID, tmpl.Name, nil
}

// RenderReadme is the synchronous README path: it validates the fact
// and renders the fixed template deterministically, never touching the
// queue. Returns the content and the template name used.
func (o *Orchestrator) RenderReadme(factRaw json.RawMessage, target domain.DocTarget) (string, string, error) {
	fact, err := decodeFact(factRaw)
	if err != nil {
		return "", "", err
	}
	if !domain.IsValidDocTarget(target) {
		return "", "", fmt.Errorf("%w: %v: %q", domain.ErrValidation, domain.ErrInvalidDocTarget, target)
	}
	if err := fact.Validate(); err != nil {
		return "", "", err
	}

	content, name, err := generation.Render(*fact, target)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return content, name, nil
}

// Poll is the client read path. Before reporting, it inspects completed
// two-phase tasks and either rewrites them into their next phase or
// runs the grounding check; the caller only ever observes pending,
// processing, completed or failed.
func (o *Orchestrator) Poll(ctx context.Context, id uuid.UUID) (PollView, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	t, err := o.store.Get(id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return PollView{}, ErrTaskNotFound
		}
		return PollView{}, err
	}

	if t.Status != task.StatusCompleted {
		return viewOf(t), nil
	}

	switch {
	case t.Domain == task.DomainCommit && t.Phase == task.PhaseAnalyze:
		return o.advanceAnalysis(ctx, t)
	case t.Domain == task.DomainCommit && t.Phase == task.PhaseGenerate:
		return o.verifyGrounding(ctx, t)
	default:
		return viewOf(t), nil
	}
}

// ClaimNext hands the oldest pending task to a worker, transitioning it
// to processing. The second return value is false when no work is
// available.
func (o *Orchestrator) ClaimNext(ctx context.Context) (task.Task, bool) {
	t, ok := o.store.ClaimOldestPending()
	if ok {
		o.logger.InfoContext(ctx, "task claimed by worker",
			"task_id", t.ID, "domain", t.Domain, "phase", t.Phase)
	}
	return t, ok
}

// ReportResult records a worker's output for a task. The result is
// stored uninterpreted; any phase rewriting happens on the next poll.
func (o *Orchestrator) ReportResult(ctx context.Context, id uuid.UUID, result string) error {
	if result == "" {
		return ErrEmptyResult
	}

	if _, err := o.store.Complete(id, result); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	o.logger.InfoContext(ctx, "task result reported", "task_id", id)
	return nil
}

// advanceAnalysis handles a completed analyze-phase task: parse the
// worker's analysis, re-derive the original request from the stored
// payload, and rewrite the record in place as a pending generate-phase
// task under the same id. The client sees "pending" throughout.
func (o *Orchestrator) advanceAnalysis(ctx context.Context, t task.Task) (PollView, error) {
	analysis, err := domain.ParseAnalysis(t.Result)
	if err != nil {
		return o.failTask(ctx, t, fmt.Sprintf("malformed analysis output: %v", err))
	}

	env, err := decodeCommitEnvelope(t.UserMessage)
	if err != nil {
		return o.failTask(ctx, t, fmt.Sprintf("%v", err))
	}
	if err := env.Request.Validate(); err != nil {
		return o.failTask(ctx, t, fmt.Sprintf("stored request no longer valid: %v", err))
	}

	instr := o.builders.Commit.Generation(env.Request, *analysis, false)

	payload, err := commitEnvelope{Request: env.Request, Analysis: analysis, Prompt: instr.User}.encode()
	if err != nil {
		return o.failTask(ctx, t, fmt.Sprintf("%v", err))
	}

	t.Phase = task.PhaseGenerate
	t.Status = task.StatusPending
	t.SystemInstruction = instr.System
	t.UserMessage = payload
	t.Result = ""
	t.Error = ""

	if err := o.store.Insert(&t); err != nil {
		return PollView{}, err
	}

	o.logger.InfoContext(ctx, "task rewritten into generate phase", "task_id", t.ID)
	return viewOf(t), nil
}

// verifyGrounding handles a completed generate-phase task: check that
// the worker's output contains every anchor the analysis extracted.
// One failed check earns a stricter rewrite; the second is terminal.
func (o *Orchestrator) verifyGrounding(ctx context.Context, t task.Task) (PollView, error) {
	env, err := decodeCommitEnvelope(t.UserMessage)
	if err != nil {
		return o.failTask(ctx, t, fmt.Sprintf("%v", err))
	}
	if env.Analysis == nil {
		return o.failTask(ctx, t, "stored payload is missing the analysis")
	}

	missing := missingAnchors(t.Result, env.Analysis.Anchors)
	if len(missing) == 0 {
		return viewOf(t), nil
	}

	if t.Retried {
		return o.failTask(ctx, t, fmt.Sprintf(
			"grounding failed after retry: output is missing required terms: %s",
			strings.Join(missing, ", ")))
	}

	instr := o.builders.Commit.Generation(env.Request, *env.Analysis, true)

	payload, err := commitEnvelope{Request: env.Request, Analysis: env.Analysis, Prompt: instr.User}.encode()
	if err != nil {
		return o.failTask(ctx, t, fmt.Sprintf("%v", err))
	}

	t.Status = task.StatusPending
	t.SystemInstruction = instr.System
	t.UserMessage = payload
	t.Result = ""
	t.Error = ""
	t.Retried = true

	if err := o.store.Insert(&t); err != nil {
		return PollView{}, err
	}

	o.logger.InfoContext(ctx, "task requeued for grounding retry",
		"task_id", t.ID, "missing_anchors", missing)
	return viewOf(t), nil
}

// failTask marks the record failed with a descriptive error. Malformed
// stored payloads are always terminal, never a silent pass-through of
// ungrounded content.
func (o *Orchestrator) failTask(ctx context.Context, t task.Task, reason string) (PollView, error) {
	t.Status = task.StatusFailed
	t.Result = ""
	t.Error = reason

	if err := o.store.Insert(&t); err != nil {
		return PollView{}, err
	}

	o.logger.WarnContext(ctx, "task failed",
		"task_id", t.ID, "domain", t.Domain, "phase", t.Phase, "reason", reason)
	return viewOf(t), nil
}

// missingAnchors returns the anchors absent from the generated output.
func missingAnchors(result string, anchors []string) []string {
	var missing []string
	for _, anchor := range anchors {
		if !strings.Contains(result, anchor) {
			missing = append(missing, anchor)
		}
	}
	return missing
}

func decodeFact(raw json.RawMessage) (*domain.Fact, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: fact is required", domain.ErrValidation)
	}
	var fact domain.Fact
	if err := json.Unmarshal(raw, &fact); err != nil {
		return nil, fmt.Errorf("%w: fact: %v", domain.ErrValidation, err)
	}
	return &fact, nil
}

func viewOf(t task.Task) PollView {
	return PollView{
		TaskID: t.ID,
		Domain: t.Domain,
		Status: t.Status,
		Result: t.Result,
		Error:  t.Error,
	}
}
