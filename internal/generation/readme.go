package generation

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/subtextdev/subtext-api/internal/domain"
)

// readmeSystem frames the queued README job for the worker.
const readmeSystem = "Generate README content strictly from the provided Fact JSON and template."

// Fixed README templates; generated content must not deviate from
// these structures.
const templateDeveloperV1 = `# {{.Name}}

## Overview
{{.Overview}}

## Repository
- Name: {{.Name}}
- Type: {{.RepoType}}

## Runtime
- Frontend: {{.FrontendSummary}}
- Backend: {{.BackendSummary}}

## Scripts
- Dev: {{.ScriptDev}}
- Build: {{.ScriptBuild}}
- Start: {{.ScriptStart}}
`

const templateDesignerV1 = `# {{.Name}}

## Summary
{{.Overview}}

## Tech Snapshot
- Frontend: {{.FrontendSummary}}
- Backend: {{.BackendSummary}}

## Scripts
- Dev: {{.ScriptDev}}
- Build: {{.ScriptBuild}}
- Start: {{.ScriptStart}}
`

const templateGeneralV1 = `# {{.Name}}

## Overview
{{.Overview}}

## Runtime
- Frontend: {{.FrontendSummary}}
- Backend: {{.BackendSummary}}

## How to Run
- Dev: {{.ScriptDev}}
- Build: {{.ScriptBuild}}
- Start: {{.ScriptStart}}
`

const templateExtensionV1 = `# {{.Name}}

## Overview
{{.Overview}}

## Runtime
- Frontend: {{.FrontendSummary}}
- Backend: {{.BackendSummary}}

## Scripts
- Dev: {{.ScriptDev}}
- Build: {{.ScriptBuild}}
- Start: {{.ScriptStart}}
`

// readmeTemplate pairs a stable template name with its raw body and
// parsed form.
type readmeTemplate struct {
	name string
	body string
	tmpl *template.Template
}

func mustTemplate(name, body string) readmeTemplate {
	return readmeTemplate{name: name, body: body, tmpl: template.Must(template.New(name).Parse(body))}
}

// readmeTemplates maps each doc target to its fixed template. Dispatch
// goes through this table; call sites never compare target strings.
var readmeTemplates = map[domain.DocTarget]readmeTemplate{
	domain.DocTargetDeveloper: mustTemplate("readme_developer_v1", templateDeveloperV1),
	domain.DocTargetDesigner:  mustTemplate("readme_designer_v1", templateDesignerV1),
	domain.DocTargetGeneral:   mustTemplate("readme_general_v1", templateGeneralV1),
	domain.DocTargetExtension: mustTemplate("readme_extension_v1", templateExtensionV1),
}

// readmeData is the value set a template renders from.
type readmeData struct {
	Name            string
	RepoType        string
	Overview        string
	FrontendSummary string
	BackendSummary  string
	ScriptDev       string
	ScriptBuild     string
	ScriptStart     string
}

// SelectTemplate picks the fixed template for a doc target and returns
// its stable name and raw body.
func SelectTemplate(target domain.DocTarget) (string, string, error) {
	rt, ok := readmeTemplates[target]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, target)
	}
	return rt.name, rt.body, nil
}

// Render deterministically creates README content from a Fact and a
// fixed template. This is the synchronous path; it never touches the
// task queue. Returns the content and the template name used.
func Render(fact domain.Fact, target domain.DocTarget) (string, string, error) {
	rt, ok := readmeTemplates[target]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, target)
	}

	dev, build, start := formatScripts(fact.Scripts)

	data := readmeData{
		Name:     fact.Repository.Name,
		RepoType: fact.Repository.Type,
		Overview: fmt.Sprintf("Repository %q is a %q project.",
			fact.Repository.Name, fact.Repository.Type),
		FrontendSummary: formatFrontend(fact.Runtime),
		BackendSummary:  formatBackend(fact.Runtime),
		ScriptDev:       dev,
		ScriptBuild:     build,
		ScriptStart:     start,
	}

	var buf bytes.Buffer
	if err := rt.tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), rt.name, nil
}

// formatOptional distinguishes a missing field ("Not present") from an
// explicit null ("Not specified").
func formatOptional(o domain.Optional[string]) string {
	if !o.Present {
		return "Not present"
	}
	if o.Value == nil {
		return "Not specified"
	}
	return *o.Value
}

func formatFrontend(runtime *domain.RuntimeInfo) string {
	if runtime == nil || !runtime.Frontend.Present {
		return "Not present"
	}
	if runtime.Frontend.Value == nil {
		return "Not specified"
	}

	fe := runtime.Frontend.Value
	return fmt.Sprintf("Framework: %s; Bundler: %s",
		formatOptional(fe.Framework), formatOptional(fe.Bundler))
}

func formatBackend(runtime *domain.RuntimeInfo) string {
	if runtime == nil || !runtime.Backend.Present {
		return "Not present"
	}
	if runtime.Backend.Value == nil {
		return "Not specified"
	}

	be := runtime.Backend.Value
	return fmt.Sprintf("Framework: %s; Language: %s; Runtime: %s",
		formatOptional(be.Framework), formatOptional(be.Language), formatOptional(be.Runtime))
}

func formatScripts(scripts *domain.ScriptsInfo) (string, string, string) {
	if scripts == nil {
		return "Not present", "Not present", "Not present"
	}
	return formatOptional(scripts.Dev), formatOptional(scripts.Build), formatOptional(scripts.Start)
}

// ReadmePrompts is the production ReadmeBuilder for the queued path.
type ReadmePrompts struct{}

// NewReadmePrompts returns a ReadmePrompts builder.
func NewReadmePrompts() *ReadmePrompts {
	return &ReadmePrompts{}
}

// Payload returns the system instruction and the fixed template for
// the given doc target.
func (p *ReadmePrompts) Payload(target domain.DocTarget) (string, ReadmeTemplate, error) {
	name, body, err := SelectTemplate(target)
	if err != nil {
		return "", ReadmeTemplate{}, err
	}
	return readmeSystem, ReadmeTemplate{Name: name, Body: body}, nil
}
