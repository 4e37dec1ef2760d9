package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/schemaissues/application"
	"github.com/felixgeelhaar/schemaissues/domain/config"
	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/ghcli"
	"github.com/felixgeelhaar/schemaissues/infrastructure/githubapi"
	"github.com/felixgeelhaar/schemaissues/infrastructure/middleware"
)

// Backends accepted by --backend.
const (
	BackendGH  = "gh"
	BackendAPI = "api"
)

// syncOptions holds options for the sync command.
type syncOptions struct {
	backend string
	ghPath  string
	apiURL  string
	repo    string
	dryRun  bool
}

// newSyncCmd creates the sync command.
func (a *App) newSyncCmd() *cobra.Command {
	opts := &syncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Create missing tracking issues",
		Long: `Ensure the label exists, then open one issue per configured tool unless an
open issue with the same title is already present.

A label failure is reported as a warning and the run continues. An issue
creation failure stops the run and exits with status 1.

Examples:
  # Use the gh CLI with the built-in tool list
  schemaissues sync

  # Use the REST API with a token from GITHUB_TOKEN or GH_TOKEN
  schemaissues sync --backend api -c tools.yaml

  # Show what would be created without writing anything
  schemaissues sync --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sync(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.backend, "backend", BackendGH, "Issue tracker backend (gh or api)")
	cmd.Flags().StringVar(&opts.ghPath, "gh-path", ghcli.DefaultBinary, "Path to the gh executable")
	cmd.Flags().StringVar(&opts.apiURL, "api-url", "", "GitHub API base URL for the api backend")
	cmd.Flags().StringVar(&opts.repo, "repo", "", "Override the configured repository (owner/name)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "List open issues but skip label and issue writes")

	return cmd
}

// sync runs one synchronization.
func (a *App) sync(ctx context.Context, opts *syncOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if opts.repo != "" {
		cfg.Repo = opts.repo
	}

	logger := a.logger()
	backend, err := a.backend(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}

	recorder := middleware.NewDryRunRecorder()
	collaborator := middleware.Chain(backend,
		middleware.DryRun(
			middleware.WithDryRunEnabled(opts.dryRun),
			middleware.WithDryRunRecorder(recorder),
			middleware.WithDryRunLogger(logger),
		),
		middleware.Logging(logger),
	)

	s, err := application.New(
		application.WithConfig(cfg),
		application.WithCollaborator(collaborator),
		application.WithLogger(logger),
		application.WithOutput(a.stdout, a.stderr),
	)
	if err != nil {
		return err
	}

	_, err = s.Run(ctx)
	if opts.dryRun {
		for _, op := range recorder.Operations() {
			switch op.Operation {
			case middleware.OpCreateLabel:
				fmt.Fprintf(a.stdout, "[dry-run] would create label %q (%s)\n", op.Label, op.Detail)
			case middleware.OpCreateIssue:
				fmt.Fprintf(a.stdout, "[dry-run] would create issue %q with label %q (%s)\n", op.Title, op.Label, op.Detail)
			}
		}
	}
	if errors.Is(err, issue.ErrIssueCreate) {
		// The synchronizer already printed the failing tool to stderr.
		return &ReportedError{Err: err}
	}
	return err
}

// backend returns the collaborator selected by opts.
func (a *App) backend(ctx context.Context, cfg *config.SyncConfig, opts *syncOptions, logger *bolt.Logger) (issue.Collaborator, error) {
	if a.collaborator != nil {
		return a.collaborator, nil
	}

	switch opts.backend {
	case BackendGH:
		return ghcli.New(cfg.Repo,
			ghcli.WithBinary(opts.ghPath),
			ghcli.WithLogger(logger),
		), nil
	case BackendAPI:
		apiOpts := []githubapi.Option{githubapi.WithLogger(logger)}
		if opts.apiURL != "" {
			apiOpts = append(apiOpts, githubapi.WithBaseURL(opts.apiURL))
		}
		return githubapi.New(ctx, cfg.Repo, lookupToken(), apiOpts...)
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s or %s)", opts.backend, BackendGH, BackendAPI)
	}
}

// lookupToken returns the first non-empty token variable.
func lookupToken() string {
	for _, name := range githubapi.TokenEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
