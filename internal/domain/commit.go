package domain

import "errors"

// Common validation errors for commit requests
var (
	ErrEmptyDiff       = errors.New("diff cannot be empty")
	ErrEmptyConvention = errors.New("style convention is required")
	ErrEmptyLanguage   = errors.New("style language is required")
	ErrEmptyIntent     = errors.New("analysis intent cannot be empty")
)

// CommitStyle describes how the generated commit message should be
// written. Convention is the categorical discriminator the lifecycle
// orchestrator re-validates during phase rewrite.
type CommitStyle struct {
	Convention string `json:"convention" validate:"required"`
	UseEmojis  bool   `json:"useEmojis"`
	Language   string `json:"language"   validate:"required"`
}

// SubTextConfig carries the project-level settings sent by the editor
// extension alongside every commit request.
type SubTextConfig struct {
	ProjectDescriptions string      `json:"project_descriptions"`
	Style               CommitStyle `json:"style"`
	Rules               []string    `json:"rules"`
}

// CommitRequest is the inbound payload for commit message generation.
type CommitRequest struct {
	Diff    string        `json:"diff" validate:"required,min=1"`
	Config  SubTextConfig `json:"config"`
	History []string      `json:"history"`
}

// Validate checks the fields the orchestrator depends on beyond struct
// tag validation. It is also invoked during phase rewrite to confirm
// the stored request is still usable.
func (r *CommitRequest) Validate() error {
	if r.Diff == "" {
		return ErrEmptyDiff
	}
	if r.Config.Style.Convention == "" {
		return ErrEmptyConvention
	}
	if r.Config.Style.Language == "" {
		return ErrEmptyLanguage
	}
	return nil
}
