package issue

import "errors"

// Domain errors for issue synchronization.
var (
	// ErrLabelCreate indicates the label could not be created or updated.
	ErrLabelCreate = errors.New("label creation failed")

	// ErrIssueList indicates open issues could not be listed.
	ErrIssueList = errors.New("issue listing failed")

	// ErrIssueCreate indicates an issue could not be created.
	ErrIssueCreate = errors.New("issue creation failed")

	// ErrToolNotFound indicates no configured tool matches a lookup key.
	ErrToolNotFound = errors.New("tool not found")

	// ErrRender indicates an issue body could not be rendered.
	ErrRender = errors.New("issue body rendering failed")
)
