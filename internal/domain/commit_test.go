package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitRequestValidate(t *testing.T) {
	t.Parallel()

	valid := CommitRequest{
		Diff: "diff --git a/x b/x",
		Config: SubTextConfig{
			Style: CommitStyle{Convention: "conventional", Language: "english"},
		},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CommitRequest)
		want   error
	}{
		{"empty diff", func(r *CommitRequest) { r.Diff = "" }, ErrEmptyDiff},
		{"empty convention", func(r *CommitRequest) { r.Config.Style.Convention = "" }, ErrEmptyConvention},
		{"empty language", func(r *CommitRequest) { r.Config.Style.Language = "" }, ErrEmptyLanguage},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := valid
			tc.mutate(&req)
			assert.ErrorIs(t, req.Validate(), tc.want)
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	t.Parallel()

	a, err := ParseAnalysis(`{"intent":"fix","scope":"parser","summary":"s","anchors":["parseConfig"]}`)
	require.NoError(t, err)
	assert.Equal(t, "fix", a.Intent)
	assert.Equal(t, []string{"parseConfig"}, a.Anchors)

	// No anchors is legal; the grounding check is then trivially satisfied.
	a, err = ParseAnalysis(`{"intent":"chore"}`)
	require.NoError(t, err)
	assert.Empty(t, a.Anchors)
}

func TestParseAnalysisErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"not JSON", "plain text", ErrInvalidFormat},
		{"missing intent", `{"anchors":["x"]}`, ErrEmptyIntent},
		{"empty anchor", `{"intent":"fix","anchors":[""]}`, ErrInvalidFormat},
		{"wrong anchor type", `{"intent":"fix","anchors":"x"}`, ErrInvalidFormat},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseAnalysis(tc.raw)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
