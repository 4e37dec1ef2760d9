// Package issue provides the domain model for schema tracking issues.
package issue

import (
	"fmt"
	"strings"
)

// SchemaDir is the repository directory holding the tool schema sheets.
const SchemaDir = "data_schemas"

const schemaExt = ".yaml"

// ToolSpec identifies one data-modeling tool and its schema sheet.
type ToolSpec struct {
	// Name is the human-readable tool name shown in issue titles.
	Name string `json:"name" yaml:"name" toml:"name"`
	// Schema is the schema sheet filename inside SchemaDir.
	Schema string `json:"schema" yaml:"schema" toml:"schema"`
}

// BranchName returns the schema filename without its ".yaml" suffix.
// Filenames without the suffix are returned unchanged.
func (s ToolSpec) BranchName() string {
	return BranchName(s.Schema)
}

// ToolSlug returns the branch name with underscores replaced by hyphens.
func (s ToolSpec) ToolSlug() string {
	return ToolSlug(s.BranchName())
}

// SchemaPath returns the repository-relative path of the schema sheet.
func (s ToolSpec) SchemaPath() string {
	return SchemaDir + "/" + s.Schema
}

// SchemaURL returns a browsable link to the schema sheet on the main branch.
func (s ToolSpec) SchemaURL(baseURL string) string {
	return fmt.Sprintf("%s/blob/main/%s", strings.TrimRight(baseURL, "/"), s.SchemaPath())
}

// Matches reports whether key names this tool, either by display name or
// by schema filename (with or without the extension).
func (s ToolSpec) Matches(key string) bool {
	return key == s.Name || key == s.Schema || key == s.BranchName()
}

// BranchName strips the ".yaml" suffix from a schema filename.
func BranchName(schema string) string {
	return strings.TrimSuffix(schema, schemaExt)
}

// ToolSlug converts a branch name into its hyphenated slug.
func ToolSlug(branch string) string {
	return strings.ReplaceAll(branch, "_", "-")
}
