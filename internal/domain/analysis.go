package domain

import (
	"encoding/json"
	"fmt"
)

// Analysis is the structured output of the analyze phase of a commit
// task. Anchors are literal substrings lifted from the diff that the
// final commit message must contain; the grounding check verifies them
// after the generate phase completes.
type Analysis struct {
	Intent  string   `json:"intent"`
	Scope   string   `json:"scope,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Anchors []string `json:"anchors"`
}

// ParseAnalysis decodes the analyze-phase worker output. Any decode or
// validation failure is terminal for the task: malformed analysis is
// never silently passed through to the generate phase.
func ParseAnalysis(raw string) (*Analysis, error) {
	var a Analysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate checks that the analysis carries everything the generate
// phase needs.
func (a *Analysis) Validate() error {
	if a.Intent == "" {
		return ErrEmptyIntent
	}
	for _, anchor := range a.Anchors {
		if anchor == "" {
			return fmt.Errorf("%w: empty anchor", ErrInvalidFormat)
		}
	}
	return nil
}
