package config

import (
	"fmt"
	"regexp"
	"strings"
)

var labelColorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the dotted path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates synchronizer configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(config *SyncConfig) ValidationErrors {
	v.errors = nil

	v.validateRequired(config)
	v.validateLabel(config)
	v.validateBody(config)
	v.validateTools(config)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateRequired(config *SyncConfig) {
	if strings.TrimSpace(config.Repo) == "" {
		v.addError("repo", "repo is required")
	} else if parts := strings.Split(config.Repo, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		v.addError("repo", fmt.Sprintf("expected owner/name, got %q", config.Repo))
	}
	if strings.TrimSpace(config.BaseURL) == "" {
		v.addError("base_url", "base_url is required")
	}
	if config.IssueListLimit <= 0 {
		v.addError("issue_list_limit", "issue_list_limit must be positive")
	}
}

func (v *Validator) validateLabel(config *SyncConfig) {
	if strings.TrimSpace(config.Label.Name) == "" {
		v.addError("label.name", "label name is required")
	}
	if config.Label.Color != "" && !labelColorPattern.MatchString(config.Label.Color) {
		v.addError("label.color", fmt.Sprintf("color must be 6 hex digits without '#', got %q", config.Label.Color))
	}
}

func (v *Validator) validateBody(config *SyncConfig) {
	if config.Body.Variant != "" && !config.Body.Variant.Valid() {
		v.addError("body.variant", fmt.Sprintf("invalid variant: %s", config.Body.Variant))
	}
}

func (v *Validator) validateTools(config *SyncConfig) {
	if len(config.Tools) == 0 {
		v.addError("tools", "at least one tool is required")
		return
	}

	names := make(map[string]int)
	schemas := make(map[string]int)
	for i, t := range config.Tools {
		path := fmt.Sprintf("tools[%d]", i)
		if strings.TrimSpace(t.Name) == "" {
			v.addError(path+".name", "tool name is required")
		} else if prev, ok := names[t.Name]; ok {
			v.addError(path+".name", fmt.Sprintf("duplicate tool name %q (also tools[%d])", t.Name, prev))
		} else {
			names[t.Name] = i
		}
		if strings.TrimSpace(t.Schema) == "" {
			v.addError(path+".schema", "schema filename is required")
		} else if prev, ok := schemas[t.Schema]; ok {
			v.addError(path+".schema", fmt.Sprintf("duplicate schema %q (also tools[%d])", t.Schema, prev))
		} else {
			schemas[t.Schema] = i
		}
	}
}
