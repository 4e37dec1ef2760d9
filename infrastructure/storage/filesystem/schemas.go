// Package filesystem inspects schema sheets in a repository checkout.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
)

// SchemaStore finds schema sheets under a repository root.
type SchemaStore struct {
	fsys    fs.FS
	pattern string
}

// NewSchemaStore creates a store rooted at dir. pattern is a doublestar
// glob relative to dir, such as "data_schemas/**/*.yaml".
func NewSchemaStore(dir, pattern string) (*SchemaStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access schema root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("schema root %s is not a directory", dir)
	}
	return NewSchemaStoreFS(os.DirFS(dir), pattern)
}

// NewSchemaStoreFS creates a store over fsys.
func NewSchemaStoreFS(fsys fs.FS, pattern string) (*SchemaStore, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid schema glob %q", pattern)
	}
	return &SchemaStore{fsys: fsys, pattern: pattern}, nil
}

// List returns the matching schema paths, sorted.
func (s *SchemaStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(s.fsys, s.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob schemas: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Coverage relates configured tools to schema files on disk.
type Coverage struct {
	// Matched lists tools whose schema file exists.
	Matched []issue.ToolSpec
	// Missing lists tools whose schema file was not found.
	Missing []issue.ToolSpec
	// Untracked lists schema files no tool refers to.
	Untracked []string
	// Invalid maps schema paths to YAML parse errors.
	Invalid map[string]error
}

// Check compares tools against the schema files in the store and parses
// every referenced file as YAML.
func (s *SchemaStore) Check(ctx context.Context, tools []issue.ToolSpec) (Coverage, error) {
	files, err := s.List(ctx)
	if err != nil {
		return Coverage{}, err
	}

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}

	cov := Coverage{Invalid: make(map[string]error)}
	referenced := make(map[string]bool, len(tools))
	for _, t := range tools {
		path := t.SchemaPath()
		referenced[path] = true
		if !present[path] {
			cov.Missing = append(cov.Missing, t)
			continue
		}
		cov.Matched = append(cov.Matched, t)
		if err := s.parse(path); err != nil {
			cov.Invalid[path] = err
		}
	}

	for _, f := range files {
		if !referenced[f] {
			cov.Untracked = append(cov.Untracked, f)
		}
	}
	return cov, nil
}

// OK reports whether every tool has a readable schema file.
func (c Coverage) OK() bool {
	return len(c.Missing) == 0 && len(c.Invalid) == 0
}

func (s *SchemaStore) parse(path string) error {
	data, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		return err
	}
	var doc any
	return yaml.Unmarshal(data, &doc)
}
