// Package body renders the Markdown bodies of schema tracking issues.
package body

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
)

//go:embed templates/fill_out_schema.md
var templates embed.FS

// DefaultTemplateName is the file name of the embedded issue template.
const DefaultTemplateName = "fill_out_schema.md"

// Placeholders recognized in issue templates.
const (
	ToolNameHint   = "<!-- e.g., Sienna Data Model -->"
	SchemaFileHint = "<!-- e.g., data_schemas/sienna_data_model.yaml — link to the file above -->"
	ContactHint    = "<!-- @github-handle of the person responsible -->"
	ToolNameToken  = "<Tool Name>"
	ToolSlugToken  = "<tool-name>"
	BranchToken    = "<tool_name>"
)

// Placeholders lists every recognized placeholder in substitution order.
func Placeholders() []string {
	return []string{ToolNameHint, SchemaFileHint, ContactHint, ToolNameToken, ToolSlugToken, BranchToken}
}

// Renderer produces an issue body for a tool.
type Renderer interface {
	Render(spec issue.ToolSpec) (string, error)
}

// DefaultTemplate returns the embedded issue template.
func DefaultTemplate() string {
	data, err := templates.ReadFile("templates/" + DefaultTemplateName)
	if err != nil {
		panic(fmt.Sprintf("embedded template missing: %v", err))
	}
	return string(data)
}

// LoadTemplate reads the template at path, or the embedded template when
// path is empty.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return DefaultTemplate(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read template: %v", issue.ErrRender, err)
	}
	return string(data), nil
}

// TemplateRenderer fills a Markdown issue template with tool values.
type TemplateRenderer struct {
	baseURL string
	body    string
	meta    FrontMatter
	metaErr error
}

// NewTemplateRenderer prepares content for rendering. The front matter is
// stripped once here; metadata parse errors are kept for Meta and do not
// prevent rendering.
func NewTemplateRenderer(content, baseURL string) *TemplateRenderer {
	meta, _, err := ParseFrontMatter(content)
	return &TemplateRenderer{
		baseURL: baseURL,
		body:    StripFrontMatter(content),
		meta:    meta,
		metaErr: err,
	}
}

// Meta returns the template's front-matter metadata.
func (r *TemplateRenderer) Meta() (FrontMatter, error) {
	return r.meta, r.metaErr
}

// Render implements Renderer.
func (r *TemplateRenderer) Render(spec issue.ToolSpec) (string, error) {
	out := r.body
	for _, sub := range r.substitutions(spec) {
		out = strings.ReplaceAll(out, sub[0], sub[1])
	}
	return out, nil
}

func (r *TemplateRenderer) substitutions(spec issue.ToolSpec) [][2]string {
	schemaLink := fmt.Sprintf("[`%s`](%s)", spec.SchemaPath(), spec.SchemaURL(r.baseURL))
	return [][2]string{
		{ToolNameHint, spec.Name},
		{SchemaFileHint, schemaLink},
		{ContactHint, ""},
		{ToolNameToken, spec.Name},
		{ToolSlugToken, spec.ToolSlug()},
		{BranchToken, spec.BranchName()},
	}
}

// Residual returns the recognized placeholders still present in body.
func Residual(body string) []string {
	var found []string
	for _, p := range Placeholders() {
		if strings.Contains(body, p) {
			found = append(found, p)
		}
	}
	return found
}
