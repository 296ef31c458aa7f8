package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DocTarget selects which fixed README template is used.
type DocTarget string

// Supported documentation targets
const (
	DocTargetDeveloper DocTarget = "developer"
	DocTargetDesigner  DocTarget = "designer"
	DocTargetGeneral   DocTarget = "general"
	DocTargetExtension DocTarget = "extension"
)

// Mode distinguishes draft from final README generation requests.
type Mode string

// Supported generation modes
const (
	ModeDraft Mode = "draft"
	ModeFinal Mode = "final"
)

// ErrInvalidDocTarget is returned when a doc target is not one of the
// supported values.
var ErrInvalidDocTarget = errors.New("invalid doc target")

// ErrInvalidMode is returned when a mode is not draft or final.
var ErrInvalidMode = errors.New("invalid mode")

// allowedRepositoryTypes is the closed set of accepted repository
// types; anything else is rejected before a task is created.
var allowedRepositoryTypes = map[string]struct{}{
	"web":     {},
	"backend": {},
	"frontend": {},
	"mobile":  {},
	"cli":     {},
	"library": {},
	"desktop": {},
	"service": {},
	"api":     {},
	"tool":    {},
}

// RepositoryInfo holds the required repository metadata of a Fact.
type RepositoryInfo struct {
	Name string `json:"name" validate:"required,min=1"`
	Type string `json:"type" validate:"required,min=1"`
}

// FrontendRuntime holds optional frontend runtime details.
type FrontendRuntime struct {
	Framework Optional[string] `json:"framework"`
	Bundler   Optional[string] `json:"bundler"`
}

// BackendRuntime holds optional backend runtime details.
type BackendRuntime struct {
	Framework Optional[string] `json:"framework"`
	Language  Optional[string] `json:"language"`
	Runtime   Optional[string] `json:"runtime"`
}

// RuntimeInfo may be partially present: frontend, backend, both or
// neither.
type RuntimeInfo struct {
	Frontend Optional[FrontendRuntime] `json:"frontend"`
	Backend  Optional[BackendRuntime]  `json:"backend"`
}

// ScriptsInfo holds the common package scripts, each nullable.
type ScriptsInfo struct {
	Dev   Optional[string] `json:"dev"`
	Build Optional[string] `json:"build"`
	Start Optional[string] `json:"start"`
}

// Fact is the structured repository description README generation
// works from.
type Fact struct {
	Repository RepositoryInfo `json:"repository"`
	Runtime    *RuntimeInfo   `json:"runtime,omitempty"`
	Scripts    *ScriptsInfo   `json:"scripts,omitempty"`
}

// Validate checks the Fact beyond basic schema decoding. It collects
// every problem into a single error message so the client sees all of
// them at once.
func (f *Fact) Validate() error {
	var problems []string

	if strings.TrimSpace(f.Repository.Name) == "" {
		problems = append(problems, "repository.name is required")
	}
	if strings.TrimSpace(f.Repository.Type) == "" {
		problems = append(problems, "repository.type is required")
	} else if _, ok := allowedRepositoryTypes[f.Repository.Type]; !ok {
		problems = append(problems,
			fmt.Sprintf("repository.type must be one of %v", sortedRepositoryTypes()))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// IsValidDocTarget checks membership in the supported doc targets.
func IsValidDocTarget(target DocTarget) bool {
	switch target {
	case DocTargetDeveloper, DocTargetDesigner, DocTargetGeneral, DocTargetExtension:
		return true
	default:
		return false
	}
}

// IsValidMode checks membership in the supported modes.
func IsValidMode(mode Mode) bool {
	switch mode {
	case ModeDraft, ModeFinal:
		return true
	default:
		return false
	}
}

func sortedRepositoryTypes() []string {
	types := make([]string, 0, len(allowedRepositoryTypes))
	for t := range allowedRepositoryTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
