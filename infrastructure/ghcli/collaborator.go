package ghcli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/logging"
)

// DefaultBinary is the gh executable looked up on PATH.
const DefaultBinary = "gh"

// Collaborator implements issue.Collaborator with the gh CLI.
type Collaborator struct {
	repo    string
	binary  string
	runner  Runner
	tempDir string
	logger  *bolt.Logger
}

var _ issue.Collaborator = (*Collaborator)(nil)

// Option configures the collaborator.
type Option func(*Collaborator)

// WithBinary sets the gh executable path.
func WithBinary(path string) Option {
	return func(c *Collaborator) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(c *Collaborator) {
		c.runner = r
	}
}

// WithTempDir sets where issue body files are written.
func WithTempDir(dir string) Option {
	return func(c *Collaborator) {
		c.tempDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(l *bolt.Logger) Option {
	return func(c *Collaborator) {
		c.logger = l
	}
}

// New creates a gh collaborator targeting repo (owner/name).
func New(repo string, opts ...Option) *Collaborator {
	c := &Collaborator{
		repo:   repo,
		binary: DefaultBinary,
		runner: ExecRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Get()
	}
	return c
}

// CreateLabel implements issue.Collaborator using --force, which creates
// the label or overwrites an existing one.
func (c *Collaborator) CreateLabel(ctx context.Context, label issue.Label) error {
	args := []string{
		"label", "create", label.Name,
		"--repo", c.repo,
		"--color", label.Color,
		"--description", label.Description,
		"--force",
	}
	_, err := c.run(ctx, issue.ErrLabelCreate, args)
	return err
}

// ListOpenIssueTitles implements issue.Collaborator.
func (c *Collaborator) ListOpenIssueTitles(ctx context.Context, limit int) ([]string, error) {
	args := []string{
		"issue", "list",
		"--repo", c.repo,
		"--state", "open",
		"--json", "title",
		"--limit", strconv.Itoa(limit),
	}
	out, err := c.run(ctx, issue.ErrIssueList, args)
	if err != nil {
		return nil, err
	}

	stdout := strings.TrimSpace(out.Stdout)
	if stdout == "" {
		stdout = "[]"
	}
	var issues []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(stdout), &issues); err != nil {
		return nil, fmt.Errorf("%w: decode gh output: %v", issue.ErrIssueList, err)
	}

	titles := make([]string, len(issues))
	for i, is := range issues {
		titles[i] = is.Title
	}
	return titles, nil
}

// CreateIssue implements issue.Collaborator. The body is passed through a
// temporary file that is removed before returning, whatever the outcome.
func (c *Collaborator) CreateIssue(ctx context.Context, req issue.NewIssue) (string, error) {
	path, err := writeBodyFile(c.tempDir, req.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", issue.ErrIssueCreate, err)
	}
	defer os.Remove(path)

	args := []string{
		"issue", "create",
		"--repo", c.repo,
		"--title", req.Title,
		"--body-file", path,
		"--label", req.Label,
	}
	out, err := c.run(ctx, issue.ErrIssueCreate, args)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Stdout), nil
}

func writeBodyFile(dir, body string) (string, error) {
	f, err := os.CreateTemp(dir, "issue-body-*.md")
	if err != nil {
		return "", fmt.Errorf("create body file: %w", err)
	}
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write body file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close body file: %w", err)
	}
	return f.Name(), nil
}

func (c *Collaborator) run(ctx context.Context, kind error, args []string) (Output, error) {
	out, err := c.runner.Run(ctx, c.binary, args...)

	logging.NewEvent(c.logger.Debug()).Add(
		logging.Backend("gh"),
		logging.Operation(args[0]+"_"+args[1]),
		logging.Count("exit_code", out.ExitCode),
		logging.Duration(out.Duration),
	).Msg("gh command finished")

	if err != nil {
		return out, &CommandError{Args: args, ExitCode: -1, kind: kind, err: err}
	}
	if out.ExitCode != 0 {
		return out, &CommandError{
			Args:     args,
			ExitCode: out.ExitCode,
			Stderr:   strings.TrimSpace(out.Stderr),
			kind:     kind,
		}
	}
	return out, nil
}
