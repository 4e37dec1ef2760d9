package body

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontMatterPattern matches one leading block fenced by lines of exactly
// "---", plus any blank lines that follow it.
var frontMatterPattern = regexp.MustCompile(`(?s)\A---\n(.*?)\n---\n*`)

// FrontMatter is the metadata GitHub reads from issue templates.
type FrontMatter struct {
	Name      string     `yaml:"name"`
	About     string     `yaml:"about"`
	Title     string     `yaml:"title"`
	Labels    StringList `yaml:"labels"`
	Assignees StringList `yaml:"assignees"`
}

// HasLabel reports whether the template applies the named label.
func (f FrontMatter) HasLabel(name string) bool {
	for _, l := range f.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// StringList accepts either a YAML sequence or a comma-separated string.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*s = nil
		for _, part := range strings.Split(value.Value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				*s = append(*s, part)
			}
		}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*s = items
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", value.Tag)
	}
}

// StripFrontMatter removes the leading front-matter block, if any. Only
// the first block is removed; text without one is returned unchanged.
func StripFrontMatter(text string) string {
	loc := frontMatterPattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[loc[1]:]
}

// ParseFrontMatter splits text into its metadata and the remaining body.
// A missing block yields zero metadata and the unchanged text.
func ParseFrontMatter(text string) (FrontMatter, string, error) {
	var meta FrontMatter
	m := frontMatterPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return meta, text, nil
	}
	rest := text[m[1]:]
	if err := yaml.Unmarshal([]byte(text[m[2]:m[3]]), &meta); err != nil {
		return FrontMatter{}, rest, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, rest, nil
}
