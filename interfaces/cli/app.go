// Package cli provides the command-line interface for schemaissues.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/schemaissues"
	"github.com/felixgeelhaar/schemaissues/domain/config"
	"github.com/felixgeelhaar/schemaissues/domain/issue"
	infraconfig "github.com/felixgeelhaar/schemaissues/infrastructure/config"
	"github.com/felixgeelhaar/schemaissues/infrastructure/logging"
)

// Version information set at build time.
var (
	Version   = schemaissues.Version
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string

	// collaborator replaces the backend selected by sync flags.
	collaborator issue.Collaborator
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "schemaissues",
		Short: "Open a schema-sheet tracking issue for every data-modeling tool",
		Long: `schemaissues makes sure a GitHub repository has one open, labeled issue per
data-modeling tool asking contributors to fill out that tool's data schema sheet.

Runs are idempotent: an open issue with the expected title is left alone, so the
command can be re-run after adding tools to the configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !logging.ValidLevel(app.logLevel) {
				return fmt.Errorf("invalid log level %q", app.logLevel)
			}
			if app.logFormat != "console" && app.logFormat != "json" {
				return fmt.Errorf("invalid log format %q (want console or json)", app.logFormat)
			}
			return nil
		},
	}

	flags := app.root.PersistentFlags()
	flags.StringVarP(&app.configPath, "config", "c", "", "Path to configuration file (YAML, JSON or TOML; default: built-in)")
	flags.StringVar(&app.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&app.logFormat, "log-format", "console", "Log format (console or json)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newSyncCmd(),
		app.newRenderCmd(),
		app.newValidateCmd(),
		app.newListCmd(),
		app.newExportSchemaCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// WithCollaborator makes sync use c instead of building a backend.
func (a *App) WithCollaborator(c issue.Collaborator) *App {
	a.collaborator = c
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// loadConfig loads the --config file, or the built-in configuration.
func (a *App) loadConfig(opts ...infraconfig.LoaderOption) (*config.SyncConfig, error) {
	cfg, err := infraconfig.NewLoaderWithOptions(opts...).LoadOrDefault(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logger builds the logger selected by the global flags. Logs go to stderr.
func (a *App) logger() *bolt.Logger {
	return logging.New(logging.Config{
		Level:  a.logLevel,
		Format: a.logFormat,
		Output: a.stderr,
	})
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "schemaissues version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}
