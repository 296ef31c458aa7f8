package service

import (
	"encoding/json"
	"fmt"

	"github.com/subtextdev/subtext-api/internal/domain"
)

// commitEnvelope is the JSON payload stored in a commit task's user
// message. The store is schema-agnostic, so the envelope must carry
// everything the orchestrator needs to rebuild instructions later: the
// original request survives both phases, and the analysis is added when
// the task is rewritten into the generate phase.
type commitEnvelope struct {
	Request  domain.CommitRequest `json:"request"`
	Analysis *domain.Analysis     `json:"analysis,omitempty"`
	Prompt   string               `json:"prompt"`
}

func (e commitEnvelope) encode() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return string(data), nil
}

func decodeCommitEnvelope(raw string) (commitEnvelope, error) {
	var e commitEnvelope
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return commitEnvelope{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return e, nil
}

// readmeEnvelope is the JSON payload stored in a readme task's user
// message. The fact is kept as raw JSON so field absence survives the
// round trip. Template name and body ride along so the worker needs no
// other context.
type readmeEnvelope struct {
	Fact         json.RawMessage  `json:"fact"`
	Mode         domain.Mode      `json:"mode"`
	DocTarget    domain.DocTarget `json:"doc_target"`
	Template     string           `json:"template"`
	TemplateBody string           `json:"template_body"`
}

func (e readmeEnvelope) encode() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return string(data), nil
}
