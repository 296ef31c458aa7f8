package generation

import (
	"github.com/subtextdev/subtext-api/internal/domain"
	"github.com/subtextdev/subtext-api/internal/task"
)

// Instructions is the prompt payload handed to a worker: a system
// instruction framing the job and a user message carrying the content
// to work on.
type Instructions struct {
	System string
	User   string
}

// CommitBuilder assembles the instruction payloads for the two-phase
// commit workflow.
type CommitBuilder interface {
	// Analysis builds the analyze-phase instructions from the inbound
	// request. The worker is asked for structured JSON output.
	Analysis(req domain.CommitRequest) Instructions

	// Generation builds the generate-phase instructions from the
	// original request and the analysis produced by the first phase.
	// When strict is true the grounding constraint is reinforced for
	// the single allowed retry.
	Generation(req domain.CommitRequest, analysis domain.Analysis, strict bool) Instructions
}

// ReadmeTemplate identifies the fixed template a queued README job
// must follow.
type ReadmeTemplate struct {
	Name string
	Body string
}

// ReadmeBuilder assembles the instruction payload for queued README
// generation.
type ReadmeBuilder interface {
	// Payload returns the system instruction and the fixed template
	// for the given doc target. The orchestrator embeds both, together
	// with the fact, into the stored task payload.
	Payload(target domain.DocTarget) (string, ReadmeTemplate, error)
}

// Builders bundles one prompt builder per domain, dispatched by the
// closed Domain enum rather than string comparison at call sites.
type Builders struct {
	Commit CommitBuilder
	Readme ReadmeBuilder
}

// Defaults returns the production prompt builders.
func Defaults() Builders {
	return Builders{
		Commit: NewCommitPrompts(),
		Readme: NewReadmePrompts(),
	}
}

// Supports reports whether a prompt builder exists for the domain.
func (b Builders) Supports(d task.Domain) bool {
	switch d {
	case task.DomainCommit:
		return b.Commit != nil
	case task.DomainReadme:
		return b.Readme != nil
	default:
		return false
	}
}
