package application

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/schemaissues/domain/config"
	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/logging"
	"github.com/felixgeelhaar/schemaissues/infrastructure/storage/memory"
)

// Test helpers

type harness struct {
	sync    *Synchronizer
	tracker *memory.Tracker
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	logs    *bytes.Buffer
}

func newHarness(t *testing.T, cfg *config.SyncConfig, tracker *memory.Tracker) *harness {
	t.Helper()
	h := &harness{
		tracker: tracker,
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		logs:    &bytes.Buffer{},
	}
	logger := logging.New(logging.Config{Level: "debug", Format: "json", Output: h.logs})

	s, err := New(
		WithConfig(cfg),
		WithCollaborator(tracker),
		WithLogger(logger),
		WithOutput(h.stdout, h.stderr),
		WithRunID("run-test"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.sync = s
	return h
}

func siennaConfig() *config.SyncConfig {
	cfg := config.Default()
	cfg.Tools = []issue.ToolSpec{{Name: "Sienna Data Model", Schema: "sienna_data_model.yaml"}}
	return cfg
}

func newTracker(opts ...memory.TrackerOption) *memory.Tracker {
	return memory.NewTracker(append([]memory.TrackerOption{memory.WithRepo(config.DefaultRepo)}, opts...)...)
}

func TestNewSynchronizer(t *testing.T) {
	t.Run("requires configuration", func(t *testing.T) {
		_, err := New(WithCollaborator(newTracker()))
		if err == nil {
			t.Error("expected error without configuration")
		}
	})

	t.Run("requires collaborator", func(t *testing.T) {
		_, err := New(WithConfig(config.Default()))
		if err == nil {
			t.Error("expected error without collaborator")
		}
	})

	t.Run("generates run id", func(t *testing.T) {
		s, err := New(WithConfig(config.Default()), WithCollaborator(newTracker()))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if len(s.RunID()) != 36 {
			t.Errorf("RunID() = %q, want a UUID", s.RunID())
		}
	})

	t.Run("missing template fails early", func(t *testing.T) {
		cfg := config.Default()
		cfg.Body.TemplatePath = "/nonexistent/template.md"
		_, err := New(WithConfig(cfg), WithCollaborator(newTracker()))
		if !errors.Is(err, issue.ErrRender) {
			t.Errorf("expected ErrRender, got %v", err)
		}
	})
}

func TestSynchronizer_Run_Sienna(t *testing.T) {
	h := newHarness(t, siennaConfig(), newTracker())

	report, err := h.sync.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	issues := h.tracker.Issues()
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	created := issues[0]
	if created.Title != "Sienna Data Model - fill out data schema sheet" {
		t.Errorf("title = %q", created.Title)
	}
	if len(created.Labels) != 1 || created.Labels[0] != "fill-out-schema" {
		t.Errorf("labels = %v", created.Labels)
	}
	if !strings.Contains(created.Body, "data_schemas/sienna_data_model.yaml") {
		t.Error("body should reference the schema file")
	}
	if strings.Contains(created.Body, "<!--") || strings.Contains(created.Body, "<tool") {
		t.Error("body should have no placeholders left")
	}

	label, ok := h.tracker.Label("fill-out-schema")
	if !ok || label.Color != "0075ca" {
		t.Errorf("label = %+v, %v", label, ok)
	}

	want := "Created issue for 'Sienna Data Model': https://github.com/G-PST/data-schema-excercise/issues/1\n"
	if h.stdout.String() != want {
		t.Errorf("stdout = %q, want %q", h.stdout.String(), want)
	}
	if h.stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", h.stderr.String())
	}

	if report.RunID != "run-test" || report.Count(issue.OutcomeCreated) != 1 {
		t.Errorf("report = %+v", report)
	}
	if !strings.Contains(h.logs.String(), `"run_id":"run-test"`) {
		t.Error("log events should carry the run id")
	}
}

func TestSynchronizer_Run_Idempotent(t *testing.T) {
	tracker := newTracker()
	first := newHarness(t, config.Default(), tracker)

	if _, err := first.sync.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if len(tracker.Issues()) != 7 {
		t.Fatalf("expected 7 issues after first run, got %d", len(tracker.Issues()))
	}

	second := newHarness(t, config.Default(), tracker)
	report, err := second.sync.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if len(tracker.Issues()) != 7 {
		t.Errorf("second run created issues: %d total", len(tracker.Issues()))
	}
	if report.Count(issue.OutcomeSkipped) != 7 {
		t.Errorf("skipped = %d, want 7", report.Count(issue.OutcomeSkipped))
	}
	for _, spec := range config.DefaultTools() {
		if n := len(tracker.OpenWithTitle(issue.Title(spec, issue.VariantTemplate))); n != 1 {
			t.Errorf("%s: %d open issues, want 1", spec.Name, n)
		}
		if !strings.Contains(second.stdout.String(), "Issue already exists for '"+spec.Name+"', skipping.\n") {
			t.Errorf("missing skip line for %s", spec.Name)
		}
	}
}

func TestSynchronizer_Run_ClosedIssueIsRecreated(t *testing.T) {
	title := "Sienna Data Model - fill out data schema sheet"
	tracker := newTracker()
	h := newHarness(t, siennaConfig(), tracker)
	ctx := context.Background()

	if _, err := h.sync.Run(ctx); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if !tracker.Close(1) {
		t.Fatal("Close(1) found no issue")
	}

	report, err := h.sync.Run(ctx)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if report.Count(issue.OutcomeCreated) != 1 {
		t.Errorf("created = %d, want the closed issue recreated", report.Count(issue.OutcomeCreated))
	}
	if len(tracker.Issues()) != 2 || len(tracker.OpenWithTitle(title)) != 1 {
		t.Errorf("issues = %+v, want one closed and one open", tracker.Issues())
	}
}

func TestSynchronizer_Run_TitleMatchIsExact(t *testing.T) {
	tracker := newTracker(memory.WithOpenTitles("sienna data model - fill out data schema sheet"))
	h := newHarness(t, siennaConfig(), tracker)

	if _, err := h.sync.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if tracker.Calls().CreateIssue != 1 {
		t.Error("a case-different title should not count as existing")
	}
}

func TestSynchronizer_Run_ListFailureFailsOpen(t *testing.T) {
	tracker := newTracker(memory.FailList(errors.New("HTTP 502")))
	h := newHarness(t, config.Default(), tracker)

	report, err := h.sync.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Count(issue.OutcomeCreated) != 7 {
		t.Errorf("created = %d, want 7", report.Count(issue.OutcomeCreated))
	}
	if !strings.Contains(h.logs.String(), "assuming none match") {
		t.Error("listing failure should be logged")
	}
}

func TestSynchronizer_Run_LabelFailureIsWarning(t *testing.T) {
	tracker := newTracker(memory.FailLabel(errors.New("HTTP 403")))
	tracker.AddLabel(config.Default().Label)
	h := newHarness(t, siennaConfig(), tracker)

	report, err := h.sync.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !errors.Is(report.LabelErr, issue.ErrLabelCreate) {
		t.Errorf("LabelErr = %v", report.LabelErr)
	}
	if !strings.HasPrefix(h.stderr.String(), "Warning: could not create label: ") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
	if report.Count(issue.OutcomeCreated) != 1 {
		t.Error("run should continue after a label failure")
	}
}

func TestSynchronizer_Run_CreateFailureStops(t *testing.T) {
	tools := config.DefaultTools()
	failing := issue.Title(tools[1], issue.VariantTemplate)
	tracker := newTracker(memory.FailCreateFor(failing, errors.New("HTTP 500")))
	h := newHarness(t, config.Default(), tracker)

	report, err := h.sync.Run(context.Background())
	if !errors.Is(err, issue.ErrIssueCreate) {
		t.Fatalf("expected ErrIssueCreate, got %v", err)
	}

	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[1].Outcome != issue.OutcomeFailed || report.Results[1].Err == nil {
		t.Errorf("second result = %+v", report.Results[1])
	}
	if calls := tracker.Calls(); calls.CreateIssue != 2 || calls.ListIssues != 2 {
		t.Errorf("tools after the failure were processed: %+v", calls)
	}
	if !strings.Contains(h.stderr.String(), "ERROR creating issue for 'GenX Data Model': ") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
	if strings.Contains(h.stdout.String(), tools[2].Name) {
		t.Error("third tool should not be reported")
	}
}

func TestSynchronizer_Run_RenderFailureIsCreateFailure(t *testing.T) {
	tracker := newTracker()
	logger := logging.New(logging.Config{Level: "error", Output: &bytes.Buffer{}})
	s, err := New(
		WithConfig(siennaConfig()),
		WithCollaborator(tracker),
		WithRenderer(failingRenderer{}),
		WithLogger(logger),
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = s.Run(context.Background())
	if !errors.Is(err, issue.ErrIssueCreate) || !errors.Is(err, issue.ErrRender) {
		t.Errorf("expected ErrIssueCreate wrapping ErrRender, got %v", err)
	}
	if tracker.Calls().CreateIssue != 0 {
		t.Error("nothing should be created when rendering fails")
	}
}

func TestSynchronizer_Run_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tracker := newTracker()
	h := newHarness(t, config.Default(), tracker)

	report, err := h.sync.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(report.Results) != 0 || len(tracker.Issues()) != 0 {
		t.Error("no tool should be processed after cancellation")
	}
}

func TestSynchronizer_Run_InlineVariant(t *testing.T) {
	cfg := siennaConfig()
	cfg.Body.Variant = issue.VariantInline
	tracker := newTracker()
	h := newHarness(t, cfg, tracker)

	if _, err := h.sync.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	issues := tracker.Issues()
	if len(issues) != 1 || issues[0].Title != "Fill out data schema sheet: Sienna Data Model" {
		t.Errorf("issues = %+v", issues)
	}
	if !strings.Contains(issues[0].Body, "sienna_data_model.yaml") {
		t.Error("inline body should reference the schema file")
	}
}

type failingRenderer struct{}

func (failingRenderer) Render(issue.ToolSpec) (string, error) {
	return "", issue.ErrRender
}
