package generation

import (
	"fmt"
	"strings"

	"github.com/subtextdev/subtext-api/internal/domain"
)

// System instructions for the two commit phases.
const (
	commitAnalysisSystem = "You are a code-change analyst. " +
		"Respond with a single JSON object and nothing else."

	commitGenerationSystem = "You are a commit message author. " +
		"Respond with the commit message text and nothing else."
)

// CommitPrompts is the production CommitBuilder.
type CommitPrompts struct{}

// NewCommitPrompts returns a CommitPrompts builder.
func NewCommitPrompts() *CommitPrompts {
	return &CommitPrompts{}
}

// Analysis builds the analyze-phase instructions. The worker is asked
// to describe the change and to lift literal anchor substrings out of
// the diff; those anchors later drive the grounding check on the
// generated message.
func (p *CommitPrompts) Analysis(req domain.CommitRequest) Instructions {
	var b strings.Builder

	b.WriteString("Analyze the following git diff and describe the change.\n")
	b.WriteString("Return a JSON object with these fields:\n")
	b.WriteString(`  "intent": one of "feat", "fix", "docs", "style", "refactor", "test", "chore"` + "\n")
	b.WriteString(`  "scope": the area of the codebase affected (may be empty)` + "\n")
	b.WriteString(`  "summary": one sentence describing the change` + "\n")
	b.WriteString(`  "anchors": literal identifiers or file names copied verbatim from the diff` + "\n\n")

	if req.Config.ProjectDescriptions != "" {
		fmt.Fprintf(&b, "Project: %s\n\n", req.Config.ProjectDescriptions)
	}

	b.WriteString("Diff:\n")
	b.WriteString(req.Diff)
	b.WriteString("\n")

	return Instructions{System: commitAnalysisSystem, User: b.String()}
}

// Generation builds the generate-phase instructions from the original
// request and the first-phase analysis. With strict set, the anchor
// constraint is restated as a hard requirement; this variant is used
// for the one allowed grounding retry.
func (p *CommitPrompts) Generation(req domain.CommitRequest, analysis domain.Analysis, strict bool) Instructions {
	var b strings.Builder

	b.WriteString("Write a commit message for the change described below.\n\n")

	fmt.Fprintf(&b, "Style: %s\n", req.Config.Style.Convention)
	fmt.Fprintf(&b, "Language: %s\n", req.Config.Style.Language)
	if req.Config.Style.UseEmojis {
		b.WriteString("Emojis: allowed\n")
	} else {
		b.WriteString("Emojis: do not use\n")
	}

	for _, rule := range req.Config.Rules {
		fmt.Fprintf(&b, "Rule: %s\n", rule)
	}

	if len(req.History) > 0 {
		b.WriteString("\nRecent commits for context:\n")
		for _, entry := range req.History {
			fmt.Fprintf(&b, "- %s\n", entry)
		}
	}

	fmt.Fprintf(&b, "\nChange intent: %s\n", analysis.Intent)
	if analysis.Scope != "" {
		fmt.Fprintf(&b, "Scope: %s\n", analysis.Scope)
	}
	if analysis.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", analysis.Summary)
	}

	if len(analysis.Anchors) > 0 {
		if strict {
			b.WriteString("\nYour previous attempt omitted required terms. ")
			b.WriteString("The message MUST contain each of the following, verbatim:\n")
		} else {
			b.WriteString("\nThe message must mention each of the following, verbatim:\n")
		}
		for _, anchor := range analysis.Anchors {
			fmt.Fprintf(&b, "- %s\n", anchor)
		}
	}

	b.WriteString("\nDiff:\n")
	b.WriteString(req.Diff)
	b.WriteString("\n")

	return Instructions{System: commitGenerationSystem, User: b.String()}
}
