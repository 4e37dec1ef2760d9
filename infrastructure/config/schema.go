package config

import (
	"encoding/json"

	domainconfig "github.com/felixgeelhaar/schemaissues/domain/config"
)

// JSONSchema represents the subset of JSON Schema used to describe the
// configuration file.
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	MinItems             *int                   `json:"minItems,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	Format               string                 `json:"format,omitempty"`
}

// GenerateSchema generates a JSON Schema for SyncConfig.
func GenerateSchema() *JSONSchema {
	return &JSONSchema{
		Schema:               "https://json-schema.org/draft/2020-12/schema",
		ID:                   "https://github.com/felixgeelhaar/schemaissues/sync-config.schema.json",
		Title:                "Schema Issues Configuration",
		Description:          "Tracking issues to open for each data-modeling tool",
		Type:                 "object",
		AdditionalProperties: boolPtr(false),
		Properties: map[string]*JSONSchema{
			"repo": {
				Type:        "string",
				Description: "Target repository in owner/name form",
				Pattern:     `^[^/\s]+/[^/\s]+$`,
				Default:     domainconfig.DefaultRepo,
			},
			"base_url": {
				Type:        "string",
				Description: "Browsable repository URL used to build links",
				Format:      "uri",
				Default:     domainconfig.DefaultBaseURL,
			},
			"issue_list_limit": {
				Type:        "integer",
				Description: "Open issues inspected by the existence check",
				Minimum:     floatPtr(1),
				Default:     domainconfig.DefaultIssueListLimit,
			},
			"schema_glob": {
				Type:        "string",
				Description: "Glob locating schema sheets in a checkout",
				Default:     domainconfig.DefaultSchemaGlob,
			},
			"label": generateLabelSchema(),
			"body":  generateBodySchema(),
			"tools": generateToolsSchema(),
		},
	}
}

func generateLabelSchema() *JSONSchema {
	return &JSONSchema{
		Type:                 "object",
		Description:          "Label applied to every tracking issue",
		AdditionalProperties: boolPtr(false),
		Properties: map[string]*JSONSchema{
			"name": {
				Type:    "string",
				Default: domainconfig.DefaultLabelName,
			},
			"color": {
				Type:    "string",
				Pattern: "^[0-9a-fA-F]{6}$",
				Default: domainconfig.DefaultLabelColor,
			},
			"description": {
				Type:    "string",
				Default: domainconfig.DefaultLabelDescription,
			},
		},
	}
}

func generateBodySchema() *JSONSchema {
	return &JSONSchema{
		Type:                 "object",
		Description:          "Issue body rendering",
		AdditionalProperties: boolPtr(false),
		Properties: map[string]*JSONSchema{
			"variant": {
				Type:        "string",
				Description: "template renders an external Markdown file, inline uses the built-in layout",
				Enum:        []string{"template", "inline"},
				Default:     "template",
			},
			"template_path": {
				Type:        "string",
				Description: "Markdown template, relative to the config file (default: embedded)",
			},
			"instructions_url": {
				Type:        "string",
				Description: "Instructions link used by the inline variant",
				Format:      "uri",
			},
		},
	}
}

func generateToolsSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "array",
		Description: "Tools needing a tracking issue, in creation order",
		MinItems:    intPtr(1),
		Items: &JSONSchema{
			Type:                 "object",
			Required:             []string{"name", "schema"},
			AdditionalProperties: boolPtr(false),
			Properties: map[string]*JSONSchema{
				"name": {
					Type:        "string",
					Description: "Display name used in the issue title",
				},
				"schema": {
					Type:        "string",
					Description: "Schema sheet filename under data_schemas/",
				},
			},
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

func boolPtr(b bool) *bool {
	return &b
}

// SchemaJSON returns the JSON Schema as a JSON string.
func SchemaJSON() (string, error) {
	data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
