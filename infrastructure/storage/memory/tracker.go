// Package memory provides an in-memory issue tracker.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
)

// Issue is an issue held by the tracker.
type Issue struct {
	Number int
	Title  string
	Body   string
	Labels []string
	Open   bool
}

// Calls counts collaborator invocations.
type Calls struct {
	CreateLabel int
	ListIssues  int
	CreateIssue int
}

// Tracker is an in-memory implementation of issue.Collaborator.
type Tracker struct {
	mu     sync.RWMutex
	repo   string
	labels map[string]issue.Label
	issues []Issue
	calls  Calls

	failLabel    error
	failList     error
	failCreate   error
	failCreateOn map[string]error
}

var _ issue.Collaborator = (*Tracker)(nil)

// TrackerOption configures the tracker.
type TrackerOption func(*Tracker)

// WithRepo sets the repository name used in issue URLs.
func WithRepo(repo string) TrackerOption {
	return func(t *Tracker) {
		t.repo = repo
	}
}

// WithIssues seeds the tracker with existing issues.
func WithIssues(issues ...Issue) TrackerOption {
	return func(t *Tracker) {
		for _, is := range issues {
			is.Number = len(t.issues) + 1
			t.issues = append(t.issues, is)
		}
	}
}

// WithOpenTitles seeds open, unlabeled issues with the given titles.
func WithOpenTitles(titles ...string) TrackerOption {
	return func(t *Tracker) {
		for _, title := range titles {
			t.issues = append(t.issues, Issue{Number: len(t.issues) + 1, Title: title, Open: true})
		}
	}
}

// FailLabel makes CreateLabel return err.
func FailLabel(err error) TrackerOption {
	return func(t *Tracker) {
		t.failLabel = err
	}
}

// FailList makes ListOpenIssueTitles return err.
func FailList(err error) TrackerOption {
	return func(t *Tracker) {
		t.failList = err
	}
}

// FailCreate makes every CreateIssue call return err.
func FailCreate(err error) TrackerOption {
	return func(t *Tracker) {
		t.failCreate = err
	}
}

// FailCreateFor makes CreateIssue return err for one title.
func FailCreateFor(title string, err error) TrackerOption {
	return func(t *Tracker) {
		if t.failCreateOn == nil {
			t.failCreateOn = make(map[string]error)
		}
		t.failCreateOn[title] = err
	}
}

// NewTracker creates a new in-memory tracker.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		repo:   "example/repo",
		labels: make(map[string]issue.Label),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CreateLabel implements issue.Collaborator.
func (t *Tracker) CreateLabel(ctx context.Context, label issue.Label) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls.CreateLabel++
	if t.failLabel != nil {
		return fmt.Errorf("%w: %v", issue.ErrLabelCreate, t.failLabel)
	}
	t.labels[label.Name] = label
	return nil
}

// ListOpenIssueTitles implements issue.Collaborator. Issues are returned
// newest first, like the GitHub listing.
func (t *Tracker) ListOpenIssueTitles(ctx context.Context, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls.ListIssues++
	if t.failList != nil {
		return nil, fmt.Errorf("%w: %v", issue.ErrIssueList, t.failList)
	}

	titles := make([]string, 0, min(limit, len(t.issues)))
	for i := len(t.issues) - 1; i >= 0 && len(titles) < limit; i-- {
		if t.issues[i].Open {
			titles = append(titles, t.issues[i].Title)
		}
	}
	return titles, nil
}

// CreateIssue implements issue.Collaborator.
func (t *Tracker) CreateIssue(ctx context.Context, req issue.NewIssue) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls.CreateIssue++
	if err := t.failCreateOn[req.Title]; err != nil {
		return "", fmt.Errorf("%w: %v", issue.ErrIssueCreate, err)
	}
	if t.failCreate != nil {
		return "", fmt.Errorf("%w: %v", issue.ErrIssueCreate, t.failCreate)
	}
	if req.Label != "" {
		if _, ok := t.labels[req.Label]; !ok {
			return "", fmt.Errorf("%w: label %q not found", issue.ErrIssueCreate, req.Label)
		}
	}

	is := Issue{
		Number: len(t.issues) + 1,
		Title:  req.Title,
		Body:   req.Body,
		Open:   true,
	}
	if req.Label != "" {
		is.Labels = []string{req.Label}
	}
	t.issues = append(t.issues, is)
	return t.url(is.Number), nil
}

// AddLabel registers a label without counting a call.
func (t *Tracker) AddLabel(label issue.Label) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.labels[label.Name] = label
}

// Close marks the issue with the given number closed.
func (t *Tracker) Close(number int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.issues {
		if t.issues[i].Number == number {
			t.issues[i].Open = false
			return true
		}
	}
	return false
}

// Issues returns a copy of all issues in creation order.
func (t *Tracker) Issues() []Issue {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Issue, len(t.issues))
	copy(out, t.issues)
	return out
}

// OpenWithTitle returns the open issues titled title.
func (t *Tracker) OpenWithTitle(title string) []Issue {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Issue
	for _, is := range t.issues {
		if is.Open && is.Title == title {
			out = append(out, is)
		}
	}
	return out
}

// Label returns a label by name.
func (t *Tracker) Label(name string) (issue.Label, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	l, ok := t.labels[name]
	return l, ok
}

// Calls returns the invocation counters.
func (t *Tracker) Calls() Calls {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.calls
}

func (t *Tracker) url(number int) string {
	return fmt.Sprintf("https://github.com/%s/issues/%d", t.repo, number)
}
