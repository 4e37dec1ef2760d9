// Package application provides the application layer for issue synchronization.
package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/schemaissues/domain/config"
	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/body"
	"github.com/felixgeelhaar/schemaissues/infrastructure/logging"
)

// Synchronizer ensures one labeled tracking issue exists per configured tool.
type Synchronizer struct {
	cfg          *config.SyncConfig
	collaborator issue.Collaborator
	renderer     body.Renderer
	logger       *bolt.Logger
	stdout       io.Writer
	stderr       io.Writer
	runID        string
}

// SynchronizerConfig contains configuration for the synchronizer.
type SynchronizerConfig struct {
	Config       *config.SyncConfig
	Collaborator issue.Collaborator
	Renderer     body.Renderer
	Logger       *bolt.Logger
	Stdout       io.Writer
	Stderr       io.Writer
	RunID        string
}

// NewSynchronizer creates a synchronizer. A nil Renderer is built from
// the configuration.
func NewSynchronizer(cfg SynchronizerConfig) (*Synchronizer, error) {
	if cfg.Config == nil {
		return nil, errors.New("configuration is required")
	}
	if cfg.Collaborator == nil {
		return nil, errors.New("collaborator is required")
	}

	s := &Synchronizer{
		cfg:          cfg.Config,
		collaborator: cfg.Collaborator,
		renderer:     cfg.Renderer,
		logger:       cfg.Logger,
		stdout:       cfg.Stdout,
		stderr:       cfg.Stderr,
		runID:        cfg.RunID,
	}

	if s.renderer == nil {
		r, err := body.NewRenderer(cfg.Config)
		if err != nil {
			return nil, err
		}
		s.renderer = r
	}
	if s.logger == nil {
		s.logger = logging.Get()
	}
	if s.stdout == nil {
		s.stdout = os.Stdout
	}
	if s.stderr == nil {
		s.stderr = os.Stderr
	}
	if s.runID == "" {
		s.runID = uuid.NewString()
	}

	return s, nil
}

// RunID returns the identifier attached to this synchronizer's log events.
func (s *Synchronizer) RunID() string {
	return s.runID
}

// Run ensures the label, then processes every tool in order. It stops at
// the first issue creation failure; tools after it are not processed.
func (s *Synchronizer) Run(ctx context.Context) (issue.Report, error) {
	start := time.Now()
	report := issue.Report{RunID: s.runID}

	logging.NewEvent(s.logger.Info()).Add(
		logging.Component("synchronizer"),
		logging.RunID(s.runID),
		logging.Repo(s.cfg.Repo),
		logging.Count("tools", len(s.cfg.Tools)),
		logging.Str("variant", string(s.cfg.Variant())),
	).Msg("sync started")

	report.LabelErr = s.EnsureLabel(ctx)

	for _, spec := range s.cfg.Tools {
		if err := ctx.Err(); err != nil {
			logging.NewEvent(s.logger.Warn()).Add(
				logging.RunID(s.runID),
				logging.ErrorField(err),
			).Msg("sync interrupted")
			return report, err
		}

		res, err := s.SyncTool(ctx, spec)
		report.Results = append(report.Results, res)
		if err != nil {
			logging.NewEvent(s.logger.Error()).Add(
				logging.RunID(s.runID),
				logging.Tool(spec),
				logging.ErrorField(err),
			).Msg("sync aborted")
			return report, err
		}
	}

	logging.NewEvent(s.logger.Info()).Add(
		logging.Component("synchronizer"),
		logging.RunID(s.runID),
		logging.Count("created", report.Count(issue.OutcomeCreated)),
		logging.Count("skipped", report.Count(issue.OutcomeSkipped)),
		logging.Duration(time.Since(start)),
	).Msg("sync completed")

	return report, nil
}

// EnsureLabel creates or updates the configured label. A failure is
// reported as a warning and returned, but never stops a run.
func (s *Synchronizer) EnsureLabel(ctx context.Context) error {
	err := s.collaborator.CreateLabel(ctx, s.cfg.Label)
	if err != nil {
		fmt.Fprintf(s.stderr, "Warning: could not create label: %v\n", err)
		logging.NewEvent(s.logger.Warn()).Add(
			logging.RunID(s.runID),
			logging.Label(s.cfg.Label.Name),
			logging.ErrorField(err),
		).Msg("label not ensured")
		return err
	}

	logging.NewEvent(s.logger.Debug()).Add(
		logging.RunID(s.runID),
		logging.Label(s.cfg.Label.Name),
	).Msg("label ensured")
	return nil
}

// Exists reports whether an open issue titled exactly title is among the
// first IssueListLimit open issues. A listing failure counts as absent.
func (s *Synchronizer) Exists(ctx context.Context, title string) bool {
	titles, err := s.collaborator.ListOpenIssueTitles(ctx, s.cfg.IssueListLimit)
	if err != nil {
		logging.NewEvent(s.logger.Warn()).Add(
			logging.RunID(s.runID),
			logging.Title(title),
			logging.ErrorField(err),
		).Msg("could not list open issues, assuming none match")
		return false
	}

	for _, t := range titles {
		if t == title {
			return true
		}
	}
	return false
}

// SyncTool creates the tracking issue for spec unless one is already open.
// The returned error wraps issue.ErrIssueCreate or the context error.
func (s *Synchronizer) SyncTool(ctx context.Context, spec issue.ToolSpec) (issue.Result, error) {
	title := issue.Title(spec, s.cfg.Variant())
	res := issue.Result{Tool: spec, Title: title}

	if s.Exists(ctx, title) {
		fmt.Fprintf(s.stdout, "Issue already exists for '%s', skipping.\n", spec.Name)
		res.Outcome = issue.OutcomeSkipped
		s.logResult(res)
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		res.Outcome = issue.OutcomeFailed
		res.Err = err
		return res, err
	}

	url, err := s.create(ctx, spec, title)
	if err != nil {
		fmt.Fprintf(s.stderr, "ERROR creating issue for '%s': %v\n", spec.Name, err)
		res.Outcome = issue.OutcomeFailed
		res.Err = err
		s.logResult(res)
		return res, err
	}

	fmt.Fprintf(s.stdout, "Created issue for '%s': %s\n", spec.Name, url)
	res.Outcome = issue.OutcomeCreated
	res.URL = url
	s.logResult(res)
	return res, nil
}

func (s *Synchronizer) create(ctx context.Context, spec issue.ToolSpec, title string) (string, error) {
	text, err := s.renderer.Render(spec)
	if err != nil {
		return "", fmt.Errorf("%w: %w", issue.ErrIssueCreate, err)
	}

	url, err := s.collaborator.CreateIssue(ctx, issue.NewIssue{
		Title: title,
		Body:  text,
		Label: s.cfg.Label.Name,
	})
	if err != nil {
		if !errors.Is(err, issue.ErrIssueCreate) {
			err = fmt.Errorf("%w: %w", issue.ErrIssueCreate, err)
		}
		return "", err
	}
	return url, nil
}

func (s *Synchronizer) logResult(res issue.Result) {
	entry := logging.NewEvent(s.logger.Info())
	if res.Err != nil {
		entry = logging.NewEvent(s.logger.Error()).Add(logging.ErrorField(res.Err))
	}
	entry.Add(
		logging.RunID(s.runID),
		logging.Tool(res.Tool),
		logging.Title(res.Title),
		logging.Outcome(res.Outcome),
	)
	if res.URL != "" {
		entry.Add(logging.Str("url", res.URL))
	}
	entry.Msg("tool processed")
}
