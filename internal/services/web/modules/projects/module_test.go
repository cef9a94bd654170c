package projects

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/lastro/internal/project"
	"github.com/louisbranch/lastro/internal/services/web/module"
	"github.com/louisbranch/lastro/internal/services/web/requests"
	"github.com/louisbranch/lastro/internal/services/web/routepath"
)

func mountHandler(t *testing.T, deps module.Dependencies) http.Handler {
	t.Helper()
	m, err := New().Mount(deps)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if m.Prefix != routepath.ProjectsPrefix {
		t.Fatalf("prefix = %q, want %q", m.Prefix, routepath.ProjectsPrefix)
	}
	return m.Handler
}

func TestModuleID(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "projects" {
		t.Fatalf("ID() = %q, want %q", got, "projects")
	}
}

func TestProjectDetail(t *testing.T) {
	t.Parallel()

	fake := &fakeProjects{records: map[project.ID]project.Record{
		"42": {ID: "42", Title: "Cantares", Author: "Ana", Category: []string{"Música"}},
	}}
	h := mountHandler(t, module.Dependencies{Projects: fake})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, routepath.Project("42"), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got project.Record
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "42" || got.Title != "Cantares" {
		t.Fatalf("record = %+v", got)
	}
}

func TestProjectDetailErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		deps       module.Dependencies
		path       string
		wantStatus int
	}{
		{
			name:       "not found",
			deps:       module.Dependencies{Projects: &fakeProjects{}},
			path:       routepath.Project("missing"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "transport failure",
			deps:       module.Dependencies{Projects: &fakeProjects{err: &requests.TransportError{Op: "get project", StatusCode: http.StatusBadGateway}}},
			path:       routepath.Project("42"),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unexpected failure",
			deps:       module.Dependencies{Projects: &fakeProjects{err: errors.New("boom")}},
			path:       routepath.Project("42"),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "no catalog",
			deps:       module.Dependencies{},
			path:       routepath.Project("42"),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "blank id",
			deps:       module.Dependencies{Projects: &fakeProjects{}},
			path:       routepath.ProjectsPrefix + "%20",
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := mountHandler(t, tc.deps)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
				t.Fatalf("content type = %q", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestProjectDetailUnescapesIdentifier(t *testing.T) {
	t.Parallel()

	fake := &fakeProjects{records: map[project.ID]project.Record{"a b": {ID: "a b"}}}
	h := mountHandler(t, module.Dependencies{Projects: fake})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, routepath.Project("a b"), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if fake.lastID != "a b" {
		t.Fatalf("gateway id = %q, want %q", fake.lastID, "a b")
	}
}

func TestProjectDetailRejectsOtherMethods(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, module.Dependencies{Projects: &fakeProjects{}})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, routepath.Project("42"), nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
