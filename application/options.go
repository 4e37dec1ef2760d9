package application

import (
	"io"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/schemaissues/domain/config"
	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/body"
)

// Option configures the synchronizer.
type Option func(*SynchronizerConfig)

// WithConfig sets the synchronizer configuration.
func WithConfig(c *config.SyncConfig) Option {
	return func(sc *SynchronizerConfig) {
		sc.Config = c
	}
}

// WithCollaborator sets the issue tracker backend.
func WithCollaborator(c issue.Collaborator) Option {
	return func(sc *SynchronizerConfig) {
		sc.Collaborator = c
	}
}

// WithRenderer sets the body renderer.
func WithRenderer(r body.Renderer) Option {
	return func(sc *SynchronizerConfig) {
		sc.Renderer = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *bolt.Logger) Option {
	return func(sc *SynchronizerConfig) {
		sc.Logger = l
	}
}

// WithOutput sets where status lines and warnings are printed.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(sc *SynchronizerConfig) {
		sc.Stdout = stdout
		sc.Stderr = stderr
	}
}

// WithRunID sets the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(sc *SynchronizerConfig) {
		sc.RunID = id
	}
}

// New creates a synchronizer using functional options.
func New(opts ...Option) (*Synchronizer, error) {
	var cfg SynchronizerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewSynchronizer(cfg)
}
