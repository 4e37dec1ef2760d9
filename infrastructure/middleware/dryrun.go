package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/logging"
)

// DryRunURL is returned in place of a created issue's URL.
const DryRunURL = "(dry run)"

// Operation names recorded by the dry-run middleware.
const (
	OpCreateLabel = "create_label"
	OpCreateIssue = "create_issue"
)

// DryRunConfig configures the dry-run middleware.
type DryRunConfig struct {
	// Enabled determines if dry-run mode is active.
	Enabled bool

	// OnDryRun is called when a write is skipped.
	OnDryRun func(ctx context.Context, op DryRunOperation)

	// Recorder captures all skipped writes for later inspection.
	Recorder *DryRunRecorder

	// Logger receives one info event per skipped write. Defaults to the
	// global logger.
	Logger *bolt.Logger
}

// DryRunOption configures the dry-run middleware.
type DryRunOption func(*DryRunConfig)

// WithDryRunEnabled enables or disables dry-run mode.
func WithDryRunEnabled(enabled bool) DryRunOption {
	return func(c *DryRunConfig) {
		c.Enabled = enabled
	}
}

// WithDryRunCallback sets a callback for skipped writes.
func WithDryRunCallback(fn func(ctx context.Context, op DryRunOperation)) DryRunOption {
	return func(c *DryRunConfig) {
		c.OnDryRun = fn
	}
}

// WithDryRunRecorder sets a recorder for skipped writes.
func WithDryRunRecorder(recorder *DryRunRecorder) DryRunOption {
	return func(c *DryRunConfig) {
		c.Recorder = recorder
	}
}

// WithDryRunLogger sets the logger for skipped writes.
func WithDryRunLogger(logger *bolt.Logger) DryRunOption {
	return func(c *DryRunConfig) {
		c.Logger = logger
	}
}

// DryRun returns middleware that lets reads through and skips writes.
// Skipped label writes succeed; skipped issue writes return DryRunURL.
func DryRun(opts ...DryRunOption) Middleware {
	cfg := DryRunConfig{Enabled: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Get()
	}

	return func(next issue.Collaborator) issue.Collaborator {
		if !cfg.Enabled {
			return next
		}
		return &dryRun{next: next, cfg: cfg}
	}
}

type dryRun struct {
	next issue.Collaborator
	cfg  DryRunConfig
}

func (d *dryRun) CreateLabel(ctx context.Context, label issue.Label) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.skip(ctx, DryRunOperation{
		Operation: OpCreateLabel,
		Label:     label.Name,
		Detail:    fmt.Sprintf("color=%s description=%q", label.Color, label.Description),
	})
	return nil
}

func (d *dryRun) ListOpenIssueTitles(ctx context.Context, limit int) ([]string, error) {
	return d.next.ListOpenIssueTitles(ctx, limit)
}

func (d *dryRun) CreateIssue(ctx context.Context, req issue.NewIssue) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.skip(ctx, DryRunOperation{
		Operation: OpCreateIssue,
		Title:     req.Title,
		Label:     req.Label,
		Detail:    fmt.Sprintf("%d byte body", len(req.Body)),
	})
	return DryRunURL, nil
}

func (d *dryRun) skip(ctx context.Context, op DryRunOperation) {
	op.Timestamp = time.Now()

	logging.NewEvent(d.cfg.Logger.Info()).Add(
		logging.Component("dry-run"),
		logging.Operation(op.Operation),
		logging.Title(op.Title),
		logging.Label(op.Label),
		logging.DryRun(true),
	).Msg("write skipped (dry-run mode)")

	if d.cfg.OnDryRun != nil {
		d.cfg.OnDryRun(ctx, op)
	}
	if d.cfg.Recorder != nil {
		d.cfg.Recorder.Record(op)
	}
}

// DryRunOperation represents a skipped write.
type DryRunOperation struct {
	Operation string    `json:"operation"`
	Title     string    `json:"title,omitempty"`
	Label     string    `json:"label,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DryRunRecorder captures skipped writes for later inspection.
type DryRunRecorder struct {
	operations []DryRunOperation
	mu         sync.RWMutex
}

// NewDryRunRecorder creates a new dry-run recorder.
func NewDryRunRecorder() *DryRunRecorder {
	return &DryRunRecorder{
		operations: make([]DryRunOperation, 0),
	}
}

// Record adds an operation to the recorder.
func (r *DryRunRecorder) Record(op DryRunOperation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, op)
}

// Operations returns all recorded operations.
func (r *DryRunRecorder) Operations() []DryRunOperation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]DryRunOperation, len(r.operations))
	copy(result, r.operations)
	return result
}

// OperationsOf returns recorded operations of one kind.
func (r *DryRunRecorder) OperationsOf(operation string) []DryRunOperation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []DryRunOperation
	for _, op := range r.operations {
		if op.Operation == operation {
			result = append(result, op)
		}
	}
	return result
}

// Count returns the number of recorded operations.
func (r *DryRunRecorder) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.operations)
}

// Clear removes all recorded operations.
func (r *DryRunRecorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = make([]DryRunOperation, 0)
}
