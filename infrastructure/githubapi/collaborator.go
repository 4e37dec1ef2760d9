// Package githubapi implements the issue collaborator on the GitHub REST API.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/logging"
)

// TokenEnvVars are consulted in order for an API token.
var TokenEnvVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

// ErrNoToken indicates no API token was configured.
var ErrNoToken = errors.New("github token not set")

// Collaborator implements issue.Collaborator with go-github.
type Collaborator struct {
	owner  string
	repo   string
	client *github.Client
	logger *bolt.Logger
}

var _ issue.Collaborator = (*Collaborator)(nil)

// Option configures the collaborator.
type Option func(*Collaborator) error

// WithBaseURL points the client at a different API root, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(raw string) Option {
	return func(c *Collaborator) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid base url: %w", err)
		}
		c.client.BaseURL = u
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *bolt.Logger) Option {
	return func(c *Collaborator) error {
		c.logger = l
		return nil
	}
}

// New creates a REST collaborator for repo (owner/name) authenticated with token.
func New(ctx context.Context, repo, token string, opts ...Option) (*Collaborator, error) {
	owner, name, err := parseRepo(repo)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("%w: set one of %s", ErrNoToken, strings.Join(TokenEnvVars, ", "))
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c := &Collaborator{
		owner:  owner,
		repo:   name,
		client: github.NewClient(oauth2.NewClient(ctx, ts)),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.logger == nil {
		c.logger = logging.Get()
	}
	return c, nil
}

// parseRepo splits "owner/repo" into owner and repo parts.
func parseRepo(fullName string) (owner, repo string, err error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo format, expected 'owner/repo': %s", fullName)
	}
	return parts[0], parts[1], nil
}

// CreateLabel implements issue.Collaborator. An existing label is edited
// in place, matching gh's --force behavior.
func (c *Collaborator) CreateLabel(ctx context.Context, label issue.Label) error {
	start := time.Now()
	req := &github.Label{
		Name:        github.Ptr(label.Name),
		Color:       github.Ptr(label.Color),
		Description: github.Ptr(label.Description),
	}

	_, resp, err := c.client.Issues.CreateLabel(ctx, c.owner, c.repo, req)
	if isStatus(resp, http.StatusUnprocessableEntity) {
		_, resp, err = c.client.Issues.EditLabel(ctx, c.owner, c.repo, label.Name, req)
		c.logDone("edit_label", resp, start)
	} else {
		c.logDone("create_label", resp, start)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", issue.ErrLabelCreate, err)
	}
	return nil
}

// maxPerPage is the largest page size the issues endpoint accepts.
const maxPerPage = 100

// ListOpenIssueTitles implements issue.Collaborator. Pages are followed until
// limit titles are collected or the listing ends. Pull requests are skipped
// and do not count toward limit.
func (c *Collaborator) ListOpenIssueTitles(ctx context.Context, limit int) ([]string, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: min(limit, maxPerPage)},
	}

	titles := make([]string, 0, opts.PerPage)
	for len(titles) < limit {
		start := time.Now()
		issues, resp, err := c.client.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		c.logDone("list_issues", resp, start)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", issue.ErrIssueList, err)
		}

		for _, is := range issues {
			if is.IsPullRequest() {
				continue
			}
			titles = append(titles, is.GetTitle())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if len(titles) > limit {
		titles = titles[:limit]
	}
	return titles, nil
}

// CreateIssue implements issue.Collaborator.
func (c *Collaborator) CreateIssue(ctx context.Context, req issue.NewIssue) (string, error) {
	start := time.Now()
	ir := &github.IssueRequest{
		Title: github.Ptr(req.Title),
		Body:  github.Ptr(req.Body),
	}
	if req.Label != "" {
		ir.Labels = &[]string{req.Label}
	}

	created, resp, err := c.client.Issues.Create(ctx, c.owner, c.repo, ir)
	c.logDone("create_issue", resp, start)
	if err != nil {
		return "", fmt.Errorf("%w: %v", issue.ErrIssueCreate, err)
	}
	return created.GetHTMLURL(), nil
}

func (c *Collaborator) logDone(op string, resp *github.Response, start time.Time) {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	logging.NewEvent(c.logger.Debug()).Add(
		logging.Backend("api"),
		logging.Operation(op),
		logging.Count("status", status),
		logging.Duration(time.Since(start)),
	).Msg("github request finished")
}

func isStatus(resp *github.Response, code int) bool {
	return resp != nil && resp.Response != nil && resp.StatusCode == code
}
