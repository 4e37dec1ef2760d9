package body

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
)

var inlineTemplate = template.Must(template.New("inline").Parse(`## Tool

- **Tool name:** {{.Name}}
- **Schema sheet:** [` + "`{{.SchemaPath}}`" + `]({{.SchemaURL}})
- **Instructions:** {{.InstructionsURL}}

## Background

Each modeling tool in this repository has a data schema sheet describing how it represents
power-system components. The sheet for {{.Name}} exists but has not been filled out yet.

## Instructions

1. Read the [instructions]({{.InstructionsURL}}) for filling out a schema sheet.
2. Open ` + "`{{.SchemaPath}}`" + ` and complete every required section below.
3. Cite a documentation page or source file for each entry.
4. Run the validation command and fix any reported problems.
5. Open a pull request that references this issue.

## Required sections

| Section | What to provide |
|:--|:--|
| ` + "`metadata`" + ` | Tool name, version described, license, and documentation URL |
| ` + "`components`" + ` | Every component type the tool models |
| ` + "`attributes`" + ` | Per-component attributes with units and data types |
| ` + "`relationships`" + ` | How components reference each other |
| ` + "`time_series`" + ` | Time-varying attributes and their resolution |

## Validation

` + "```bash" + `
python3 scripts/validate_schema.py {{.SchemaPath}}
` + "```" + `

## Opening a pull request

### Without write access

Fork the repository, create the branch ` + "`{{.Slug}}-schema`" + ` in your fork, commit
` + "`{{.SchemaPath}}`" + `, and open a pull request against ` + "`main`" + `.

### With write access

Push the branch ` + "`{{.Slug}}-schema`" + ` to this repository and open a pull request against
` + "`main`" + `, requesting a review from a maintainer.

## Acceptance criteria

- [ ] Every required section of ` + "`{{.Schema}}`" + ` is filled in
- [ ] Each entry cites a documentation page or source file
- [ ] The validation command passes
- [ ] The pull request references this issue
`))

// InlineRenderer builds bodies from the built-in layout without reading
// any template file.
type InlineRenderer struct {
	BaseURL         string
	InstructionsURL string
}

type inlineData struct {
	Name            string
	Schema          string
	SchemaPath      string
	SchemaURL       string
	Slug            string
	InstructionsURL string
}

// Render implements Renderer.
func (r *InlineRenderer) Render(spec issue.ToolSpec) (string, error) {
	var buf bytes.Buffer
	err := inlineTemplate.Execute(&buf, inlineData{
		Name:            spec.Name,
		Schema:          spec.Schema,
		SchemaPath:      spec.SchemaPath(),
		SchemaURL:       spec.SchemaURL(r.BaseURL),
		Slug:            spec.ToolSlug(),
		InstructionsURL: r.InstructionsURL,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", issue.ErrRender, err)
	}
	return buf.String(), nil
}
