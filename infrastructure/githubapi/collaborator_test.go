package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/felixgeelhaar/schemaissues/domain/issue"
	"github.com/felixgeelhaar/schemaissues/infrastructure/logging"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	handler  func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()
	f.handler(w, r)
}

func newTestCollaborator(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Collaborator, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{handler: handler}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	logger := logging.New(logging.Config{Level: "error", Format: "json", Output: &bytes.Buffer{}})
	c, err := New(context.Background(), "G-PST/data-schema-excercise", "test-token",
		WithBaseURL(server.URL), WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, api
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(context.Background(), "no-slash", "token"); err == nil {
		t.Error("expected error for invalid repo")
	}
	if _, err := New(context.Background(), "owner/repo", ""); !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestCollaborator_CreateLabel(t *testing.T) {
	c, api := newTestCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		writeJSON(w, http.StatusCreated, map[string]any{"name": "fill-out-schema"})
	})

	err := c.CreateLabel(context.Background(), issue.Label{
		Name: "fill-out-schema", Color: "0075ca", Description: "Fill out existing tool data schema sheet",
	})
	if err != nil {
		t.Fatalf("CreateLabel() error = %v", err)
	}

	if len(api.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(api.requests))
	}
	req := api.requests[0]
	if req.method != http.MethodPost || req.path != "/repos/G-PST/data-schema-excercise/labels" {
		t.Errorf("request = %s %s", req.method, req.path)
	}
	if req.body["color"] != "0075ca" || req.body["name"] != "fill-out-schema" {
		t.Errorf("body = %v", req.body)
	}
}

func TestCollaborator_CreateLabel_ExistingIsEdited(t *testing.T) {
	c, api := newTestCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "Validation Failed",
				"errors":  []map[string]string{{"resource": "Label", "code": "already_exists", "field": "name"}},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"name": "fill-out-schema"})
	})

	if err := c.CreateLabel(context.Background(), issue.Label{Name: "fill-out-schema", Color: "0075ca"}); err != nil {
		t.Fatalf("CreateLabel() error = %v", err)
	}

	if len(api.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(api.requests))
	}
	edit := api.requests[1]
	if edit.method != http.MethodPatch || edit.path != "/repos/G-PST/data-schema-excercise/labels/fill-out-schema" {
		t.Errorf("edit request = %s %s", edit.method, edit.path)
	}
}

func TestCollaborator_CreateLabel_Forbidden(t *testing.T) {
	c, _ := newTestCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{"message": "Resource not accessible by integration"})
	})

	err := c.CreateLabel(context.Background(), issue.Label{Name: "fill-out-schema"})
	if !errors.Is(err, issue.ErrLabelCreate) {
		t.Errorf("expected ErrLabelCreate, got %v", err)
	}
}

func TestCollaborator_ListOpenIssueTitles(t *testing.T) {
	c, api := newTestCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"number": 1, "title": "Sienna Data Model - fill out data schema sheet"},
			{"number": 2, "title": "Add GenX schema", "pull_request": map[string]any{"url": "https://example.com/pr/2"}},
			{"number": 3, "title": "GenX Data Model - fill out data schema sheet"},
		})
	})

	titles, err := c.ListOpenIssueTitles(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListOpenIssueTitles() error = %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("titles = %v, want pull requests excluded", titles)
	}
	if titles[1] != "GenX Data Model - fill out data schema sheet" {
		t.Errorf("titles[1] = %q", titles[1])
	}

	q := api.requests[0].query
	if !strings.Contains(q, "per_page=100") || !strings.Contains(q, "state=open") {
		t.Errorf("query = %q", q)
	}
}

func TestCollaborator_ListOpenIssueTitles_FollowsPages(t *testing.T) {
	c, api := newTestCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			writeJSON(w, http.StatusOK, []map[string]any{
				{"number": 4, "title": "PowerSimulations Data Model - fill out data schema sheet"},
				{"number": 5, "title": "Bump deps", "pull_request": map[string]any{"url": "https://example.com/pr/5"}},
			})
			return
		}
		next := "http://" + r.Host + r.URL.Path + "?page=2&per_page=100&state=open"
		w.Header().Set("Link", `<`+next+`>; rel="next", <`+next+`>; rel="last"`)
		writeJSON(w, http.StatusOK, []map[string]any{
			{"number": 1, "title": "Sienna Data Model - fill out data schema sheet"},
			{"number": 2, "title": "Add GenX schema", "pull_request": map[string]any{"url": "https://example.com/pr/2"}},
			{"number": 3, "title": "GenX Data Model - fill out data schema sheet"},
		})
	})

	titles, err := c.ListOpenIssueTitles(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListOpenIssueTitles() error = %v", err)
	}

	want := []string{
		"Sienna Data Model - fill out data schema sheet",
		"GenX Data Model - fill out data schema sheet",
		"PowerSimulations Data Model - fill out data schema sheet",
	}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("titles[%d] = %q, want %q", i, titles[i], want[i])
		}
	}

	if len(api.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(api.requests))
	}
	if !strings.Contains(api.requests[1].query, "page=2") {
		t.Errorf("second query = %q", api.requests[1].query)
	}
}

func TestCollaborator_ListOpenIssueTitles_StopsAtLimit(t *testing.T) {
	c, api := newTestCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		next := "http://" + r.Host + r.URL.Path + "?page=2"
		w.Header().Set("Link", `<`+next+`>; rel="next"`)
		writeJSON(w, http.StatusOK, []map[string]any{
			{"number": 1, "title": "one"},
			{"number": 2, "title": "two"},
			{"number": 3, "title": "three"},
		})
	})

	titles, err := c.ListOpenIssueTitles(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListOpenIssueTitles() error = %v", err)
	}
	if len(titles) != 2 || titles[0] != "one" || titles[1] != "two" {
		t.Errorf("titles = %v, want first two", titles)
	}
	if len(api.requests) != 1 {
		t.Errorf("expected 1 request, got %d", len(api.requests))
	}
	if !strings.Contains(api.requests[0].query, "per_page=2") {
		t.Errorf("query = %q", api.requests[0].query)
	}
}

func TestCollaborator_ListOpenIssueTitles_Error(t *testing.T) {
	c, _ := newTestCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "boom"})
	})

	if _, err := c.ListOpenIssueTitles(context.Background(), 100); !errors.Is(err, issue.ErrIssueList) {
		t.Errorf("expected ErrIssueList, got %v", err)
	}
}

func TestCollaborator_CreateIssue(t *testing.T) {
	c, api := newTestCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{
			"number":   12,
			"html_url": "https://github.com/G-PST/data-schema-excercise/issues/12",
		})
	})

	url, err := c.CreateIssue(context.Background(), issue.NewIssue{
		Title: "Sienna Data Model - fill out data schema sheet",
		Body:  "## Tool",
		Label: "fill-out-schema",
	})
	if err != nil {
		t.Fatalf("CreateIssue() error = %v", err)
	}
	if url != "https://github.com/G-PST/data-schema-excercise/issues/12" {
		t.Errorf("url = %q", url)
	}

	body := api.requests[0].body
	labels, _ := body["labels"].([]any)
	if len(labels) != 1 || labels[0] != "fill-out-schema" {
		t.Errorf("labels = %v", body["labels"])
	}
	if body["title"] != "Sienna Data Model - fill out data schema sheet" {
		t.Errorf("title = %v", body["title"])
	}
}

func TestCollaborator_CreateIssue_Error(t *testing.T) {
	c, _ := newTestCollaborator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
	})

	_, err := c.CreateIssue(context.Background(), issue.NewIssue{Title: "t"})
	if !errors.Is(err, issue.ErrIssueCreate) {
		t.Errorf("expected ErrIssueCreate, got %v", err)
	}
}
