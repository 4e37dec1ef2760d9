package issue

// Outcome is the per-tool result of a synchronization run.
type Outcome string

const (
	// OutcomeCreated means a new issue was opened.
	OutcomeCreated Outcome = "created"
	// OutcomeSkipped means an open issue with the same title already existed.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means issue creation failed and the run was aborted.
	OutcomeFailed Outcome = "failed"
)

// Result records what happened to one tool.
type Result struct {
	Tool    ToolSpec
	Title   string
	Outcome Outcome
	// URL is set when Outcome is OutcomeCreated.
	URL string
	// Err is set when Outcome is OutcomeFailed.
	Err error
}

// Report summarizes a synchronization run.
type Report struct {
	RunID string
	// LabelErr is the non-fatal label creation error, if any.
	LabelErr error
	Results  []Result
}

// Count returns how many results have the given outcome.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}
