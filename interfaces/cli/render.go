package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/body"
)

// renderOptions holds options for the render command.
type renderOptions struct {
	check bool
}

// newRenderCmd creates the render command.
func (a *App) newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <tool-name-or-schema>",
		Short: "Print the issue title and body for one tool",
		Long: `Render the issue that sync would create for one configured tool. The tool is
selected by display name or schema filename.

Examples:
  schemaissues render "Sienna Data Model"
  schemaissues render sienna_data_model.yaml --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "Fail if a required section is missing or a placeholder is left")

	return cmd
}

// render prints one rendered issue.
func (a *App) render(key string, opts *renderOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	spec, ok := cfg.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", issue.ErrToolNotFound, key)
	}

	renderer, err := body.NewRenderer(cfg)
	if err != nil {
		return err
	}
	text, err := renderer.Render(spec)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Title: %s\n", issue.Title(spec, cfg.Variant()))
	fmt.Fprintf(a.stdout, "Label: %s\n\n", cfg.Label.Name)
	fmt.Fprint(a.stdout, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(a.stdout)
	}

	if opts.check {
		if problems := body.Check(text); len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintf(a.stderr, "  - %s\n", p)
			}
			return fmt.Errorf("%w: %d problem(s) in body for %q", issue.ErrRender, len(problems), spec.Name)
		}
	}
	return nil
}
