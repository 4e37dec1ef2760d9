// Package config provides domain models for synchronizer configuration.
package config

import (
	"github.com/felixgeelhaar/schemaissues/domain/issue"
)

// Defaults reproduce the repository the tool was written for.
const (
	DefaultRepo             = "G-PST/data-schema-excercise"
	DefaultBaseURL          = "https://github.com/G-PST/data-schema-excercise"
	DefaultLabelName        = "fill-out-schema"
	DefaultLabelColor       = "0075ca"
	DefaultLabelDescription = "Fill out existing tool data schema sheet"
	DefaultIssueListLimit   = 100
	DefaultSchemaGlob       = issue.SchemaDir + "/**/*.yaml"
)

// SyncConfig represents the complete synchronizer configuration.
type SyncConfig struct {
	// Repo is the target repository in owner/name form.
	Repo string `json:"repo" yaml:"repo" toml:"repo"`
	// BaseURL is the browsable repository URL used to build links.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`
	// Label is the categorization label applied to every issue.
	Label issue.Label `json:"label" yaml:"label" toml:"label"`
	// Body configures issue body rendering.
	Body BodyConfig `json:"body" yaml:"body" toml:"body"`
	// IssueListLimit caps how many open issues the existence check sees.
	IssueListLimit int `json:"issue_list_limit,omitempty" yaml:"issue_list_limit,omitempty" toml:"issue_list_limit,omitempty"`
	// SchemaGlob locates schema sheets inside a repository checkout.
	SchemaGlob string `json:"schema_glob,omitempty" yaml:"schema_glob,omitempty" toml:"schema_glob,omitempty"`
	// Tools lists the tools that need a tracking issue, in creation order.
	Tools []issue.ToolSpec `json:"tools" yaml:"tools" toml:"tools"`
}

// BodyConfig selects and parameterizes the body builder.
type BodyConfig struct {
	// Variant is "template" (default) or "inline".
	Variant issue.Variant `json:"variant,omitempty" yaml:"variant,omitempty" toml:"variant,omitempty"`
	// TemplatePath overrides the embedded Markdown template.
	// Relative paths resolve against the config file's directory.
	TemplatePath string `json:"template_path,omitempty" yaml:"template_path,omitempty" toml:"template_path,omitempty"`
	// InstructionsURL is linked from inline-variant bodies.
	InstructionsURL string `json:"instructions_url,omitempty" yaml:"instructions_url,omitempty" toml:"instructions_url,omitempty"`
}

// DefaultTools returns the tools tracked by default.
func DefaultTools() []issue.ToolSpec {
	return []issue.ToolSpec{
		{Name: "Sienna Data Model", Schema: "sienna_data_model.yaml"},
		{Name: "GenX Data Model", Schema: "genx_data_model.yaml"},
		{Name: "Grid Data Model", Schema: "grid_data_model.yaml"},
		{Name: "CommonEnergySystemModel", Schema: "common_energy_system_model.yaml"},
		{Name: "PyPSA Data Model", Schema: "pypsa_data_model.yaml"},
		{Name: "Encoord Data Model", Schema: "encoord_data_model.yaml"},
		{Name: "CIM/ENTSO-E", Schema: "cim_entso_e.yaml"},
	}
}

// Default returns the built-in configuration.
func Default() *SyncConfig {
	return &SyncConfig{
		Repo:    DefaultRepo,
		BaseURL: DefaultBaseURL,
		Label: issue.Label{
			Name:        DefaultLabelName,
			Color:       DefaultLabelColor,
			Description: DefaultLabelDescription,
		},
		Body: BodyConfig{
			Variant: issue.VariantTemplate,
		},
		IssueListLimit: DefaultIssueListLimit,
		SchemaGlob:     DefaultSchemaGlob,
		Tools:          DefaultTools(),
	}
}

// InstructionsLink returns the configured instructions URL, falling back
// to the repository README.
func (c *SyncConfig) InstructionsLink() string {
	if c.Body.InstructionsURL != "" {
		return c.Body.InstructionsURL
	}
	return c.BaseURL + "/blob/main/README.md"
}

// Variant returns the body variant, defaulting to the template variant.
func (c *SyncConfig) Variant() issue.Variant {
	if c.Body.Variant == "" {
		return issue.VariantTemplate
	}
	return c.Body.Variant
}

// Lookup finds the tool matching key by name or schema filename.
func (c *SyncConfig) Lookup(key string) (issue.ToolSpec, bool) {
	for _, t := range c.Tools {
		if t.Matches(key) {
			return t, true
		}
	}
	return issue.ToolSpec{}, false
}
