package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDistinguishesNullFromMissing(t *testing.T) {
	t.Parallel()

	type payload struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
		C Optional[string] `json:"c"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"a": "value", "b": null}`), &p))

	assert.True(t, p.A.Present)
	require.NotNil(t, p.A.Value)
	assert.Equal(t, "value", *p.A.Value)

	assert.True(t, p.B.Present, "explicit null is present")
	assert.Nil(t, p.B.Value)

	assert.False(t, p.C.Present, "absent field is not present")
	assert.Nil(t, p.C.Value)
}

func TestOptionalUnmarshalStruct(t *testing.T) {
	t.Parallel()

	var rt RuntimeInfo
	require.NoError(t, json.Unmarshal([]byte(`{
		"frontend": {"framework": "react", "bundler": null},
		"backend": null
	}`), &rt))

	require.True(t, rt.Frontend.Present)
	require.NotNil(t, rt.Frontend.Value)
	require.NotNil(t, rt.Frontend.Value.Framework.Value)
	assert.Equal(t, "react", *rt.Frontend.Value.Framework.Value)
	assert.True(t, rt.Frontend.Value.Bundler.Present)
	assert.Nil(t, rt.Frontend.Value.Bundler.Value)

	assert.True(t, rt.Backend.Present)
	assert.Nil(t, rt.Backend.Value)
}

func TestOptionalRejectsTypeMismatch(t *testing.T) {
	t.Parallel()

	var o Optional[string]
	assert.Error(t, json.Unmarshal([]byte(`42`), &o))
}

func TestOptionalMarshal(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Some("x"))
	require.NoError(t, err)
	assert.Equal(t, `"x"`, string(data))

	data, err = json.Marshal(Null[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestFactValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fact    Fact
		wantErr string
	}{
		{
			name: "valid",
			fact: Fact{Repository: RepositoryInfo{Name: "subtext", Type: "backend"}},
		},
		{
			name:    "missing name",
			fact:    Fact{Repository: RepositoryInfo{Type: "backend"}},
			wantErr: "repository.name is required",
		},
		{
			name:    "missing type",
			fact:    Fact{Repository: RepositoryInfo{Name: "subtext"}},
			wantErr: "repository.type is required",
		},
		{
			name:    "unknown type",
			fact:    Fact{Repository: RepositoryInfo{Name: "subtext", Type: "spaceship"}},
			wantErr: "repository.type must be one of",
		},
		{
			name:    "whitespace name",
			fact:    Fact{Repository: RepositoryInfo{Name: "   ", Type: "cli"}},
			wantErr: "repository.name is required",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.fact.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestFactValidateCollectsAllProblems(t *testing.T) {
	t.Parallel()

	err := (&Fact{}).Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "repository.name is required")
	assert.Contains(t, err.Error(), "repository.type is required")
}

func TestDocTargetAndModeValidation(t *testing.T) {
	t.Parallel()

	for _, target := range []DocTarget{DocTargetDeveloper, DocTargetDesigner, DocTargetGeneral, DocTargetExtension} {
		assert.True(t, IsValidDocTarget(target))
	}
	assert.False(t, IsValidDocTarget("marketing"))
	assert.False(t, IsValidDocTarget(""))

	assert.True(t, IsValidMode(ModeDraft))
	assert.True(t, IsValidMode(ModeFinal))
	assert.False(t, IsValidMode("preview"))
	assert.False(t, IsValidMode(""))
}
