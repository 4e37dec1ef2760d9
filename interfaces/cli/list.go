package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
)

// listOptions holds options for the list command.
type listOptions struct {
	verbose bool
}

// newListCmd creates the list command.
func (a *App) newListCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured tools",
		Long: `List the tools that sync processes, in order, with the issue title each one
gets. Verbose output adds the derived branch name, slug and schema URL.

Examples:
  schemaissues list
  schemaissues list -c tools.yaml -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.list(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show derived names")

	return cmd
}

// list prints the configured tools.
func (a *App) list(opts *listOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.stdout, "Tools for %s (%d):\n", cfg.Repo, len(cfg.Tools))
	for i, spec := range cfg.Tools {
		_, _ = fmt.Fprintf(a.stdout, "\n  %d. %s\n", i+1, spec.Name)
		_, _ = fmt.Fprintf(a.stdout, "    Schema: %s\n", spec.SchemaPath())
		_, _ = fmt.Fprintf(a.stdout, "    Title: %s\n", issue.Title(spec, cfg.Variant()))
		if opts.verbose {
			_, _ = fmt.Fprintf(a.stdout, "    Branch: %s\n", spec.BranchName())
			_, _ = fmt.Fprintf(a.stdout, "    Slug: %s\n", spec.ToolSlug())
			_, _ = fmt.Fprintf(a.stdout, "    URL: %s\n", spec.SchemaURL(cfg.BaseURL))
		}
	}
	return nil
}
