package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/schemaissues/domain/config"
	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/body"
	infraconfig "github.com/felixgeelhaar/schemaissues/infrastructure/config"
	"github.com/felixgeelhaar/schemaissues/infrastructure/storage/filesystem"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	strict     bool
	showSchema bool
	schemasDir string
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration, template and rendered bodies",
		Long: `Validate the synchronizer configuration without contacting GitHub.

This command checks:
  - File format (YAML, JSON or TOML) and known fields
  - Required fields, label color and tool list
  - Template front matter labels (template variant)
  - Every rendered body for required sections and leftover placeholders
  - Schema sheets on disk (with --schemas-dir)
  - Environment variable references (in strict mode)

Examples:
  # Validate the built-in configuration
  schemaissues validate

  # Validate a configuration against a repository checkout
  schemaissues validate -c tools.yaml --schemas-dir ../data-schema-excercise

  # Show the JSON schema for configuration
  schemaissues validate --schema`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showSchema {
				return a.showConfigSchema()
			}
			return a.validate(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")
	cmd.Flags().BoolVar(&opts.showSchema, "schema", false, "Show JSON schema for configuration")
	cmd.Flags().StringVar(&opts.schemasDir, "schemas-dir", "", "Repository checkout to check schema sheets against")

	return cmd
}

// validate runs every offline check and reports all problems at once.
func (a *App) validate(ctx context.Context, opts *validateOptions) error {
	cfg, err := a.loadConfig(
		infraconfig.WithValidation(true),
		infraconfig.WithStrictEnv(opts.strict),
	)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "✓ Configuration is valid\n")
	fmt.Fprintf(a.stdout, "  Repository: %s\n", cfg.Repo)
	fmt.Fprintf(a.stdout, "  Label: %s (#%s)\n", cfg.Label.Name, cfg.Label.Color)
	fmt.Fprintf(a.stdout, "  Variant: %s\n", cfg.Variant())
	fmt.Fprintf(a.stdout, "  Tools: %d\n", len(cfg.Tools))

	problems := 0

	renderer, err := body.NewRenderer(cfg)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	problems += a.checkVariant(cfg, renderer)

	bodyProblems := 0
	for _, spec := range cfg.Tools {
		text, err := renderer.Render(spec)
		if err != nil {
			fmt.Fprintf(a.stdout, "✗ %s: %v\n", spec.Name, err)
			bodyProblems++
			continue
		}
		if found := body.Check(text); len(found) > 0 {
			fmt.Fprintf(a.stdout, "✗ %s:\n", spec.Name)
			for _, p := range found {
				fmt.Fprintf(a.stdout, "    - %s\n", p)
			}
			bodyProblems += len(found)
		}
	}
	problems += bodyProblems
	if bodyProblems == 0 {
		fmt.Fprintf(a.stdout, "✓ All %d bodies render completely\n", len(cfg.Tools))
	}

	if opts.schemasDir != "" {
		n, err := a.checkSchemas(ctx, cfg, opts.schemasDir)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		problems += n
	}

	if problems > 0 {
		return fmt.Errorf("validation failed: %d problem(s)", problems)
	}
	return nil
}

// checkVariant reports variant-specific findings and returns the number
// of problems.
func (a *App) checkVariant(cfg *config.SyncConfig, renderer body.Renderer) int {
	if cfg.Variant() == issue.VariantInline {
		fmt.Fprintf(a.stdout, "! Inline variant titles use %q; issues opened with the template variant will not be recognized\n",
			issue.Title(issue.ToolSpec{Name: "<name>"}, issue.VariantInline))
		return 0
	}

	tr, ok := renderer.(*body.TemplateRenderer)
	if !ok {
		return 0
	}
	meta, err := tr.Meta()
	if err != nil {
		fmt.Fprintf(a.stdout, "✗ Template front matter: %v\n", err)
		return 1
	}
	if len(meta.Labels) > 0 && !meta.HasLabel(cfg.Label.Name) {
		fmt.Fprintf(a.stdout, "✗ Template front matter labels %v do not include %q\n", []string(meta.Labels), cfg.Label.Name)
		return 1
	}
	return 0
}

// checkSchemas compares configured tools against schema sheets under dir.
func (a *App) checkSchemas(ctx context.Context, cfg *config.SyncConfig, dir string) (int, error) {
	store, err := filesystem.NewSchemaStore(dir, cfg.SchemaGlob)
	if err != nil {
		return 0, err
	}
	cov, err := store.Check(ctx, cfg.Tools)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(a.stdout, "Schema sheets (%s):\n", cfg.SchemaGlob)
	fmt.Fprintf(a.stdout, "  Found: %d of %d\n", len(cov.Matched), len(cfg.Tools))
	for _, spec := range cov.Missing {
		fmt.Fprintf(a.stdout, "✗ %s: %s not found\n", spec.Name, spec.SchemaPath())
	}
	for path, err := range cov.Invalid {
		fmt.Fprintf(a.stdout, "✗ %s: %v\n", path, err)
	}
	for _, path := range cov.Untracked {
		fmt.Fprintf(a.stdout, "  note: %s has no configured tool\n", path)
	}
	return len(cov.Missing) + len(cov.Invalid), nil
}

// showConfigSchema displays the JSON schema for configuration.
func (a *App) showConfigSchema() error {
	schemaJSON, err := infraconfig.SchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Fprintln(a.stdout, schemaJSON)
	return nil
}
