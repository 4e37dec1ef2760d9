package issue

import "context"

// Label describes a repository label.
type Label struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Color       string `json:"color" yaml:"color" toml:"color"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// NewIssue is the payload for creating an issue.
type NewIssue struct {
	Title string
	Body  string
	Label string
}

// Collaborator is the issue tracker the synchronizer drives.
//
// Implementations must treat every call as a single attempt; callers
// decide which failures are fatal.
type Collaborator interface {
	// CreateLabel creates the label or overwrites its attributes.
	CreateLabel(ctx context.Context, label Label) error

	// ListOpenIssueTitles returns the titles of up to limit open issues.
	ListOpenIssueTitles(ctx context.Context, limit int) ([]string, error)

	// CreateIssue creates an issue and returns its URL.
	CreateIssue(ctx context.Context, req NewIssue) (string, error)
}
