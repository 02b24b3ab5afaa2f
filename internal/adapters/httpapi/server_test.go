package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"texmirror/internal/application/commands"
	"texmirror/internal/domain"
	"texmirror/internal/ports"
)

// Mock implementations for testing

type stubRegistry struct {
	projects   []domain.Project
	defaultKey string
}

func (r *stubRegistry) Lookup(name string) (domain.Project, error) {
	if len(r.projects) == 0 {
		return domain.Project{}, errors.New("no projects configured")
	}
	if name == "" {
		name = r.defaultKey
	}
	for _, p := range r.projects {
		if p.Key == name {
			return p, nil
		}
	}
	return domain.Project{}, fmt.Errorf("project '%s' not found", name)
}

func (r *stubRegistry) List() []domain.Project { return r.projects }
func (r *stubRegistry) DefaultKey() string     { return r.defaultKey }

type stubMirrors struct {
	files   map[string]string // path -> content for the single test project
	commits []string
}

func (m *stubMirrors) Ensure(_ context.Context, project domain.Project) (domain.Mirror, error) {
	return domain.Mirror{ProjectID: project.RemoteID, Root: "/mirrors/" + project.RemoteID, Freshness: domain.MirrorRefreshed}, nil
}

func (m *stubMirrors) Sync(_ context.Context, _ domain.Project) (domain.SyncState, error) {
	return domain.SyncPulled, nil
}

func (m *stubMirrors) IsDirty(string) (bool, error) { return false, nil }
func (m *stubMirrors) Dir(projectID string) string  { return "/mirrors/" + projectID }

func (m *stubMirrors) ResolvePath(projectID, path string) (string, error) {
	return "/mirrors/" + projectID + "/" + path, nil
}

func (m *stubMirrors) FileExists(_, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

func (m *stubMirrors) ListFiles(_, extension string) ([]string, error) {
	var out []string
	for path := range m.files {
		if extension == "" || strings.HasSuffix(path, extension) {
			out = append(out, path)
		}
	}
	return out, nil
}

func (m *stubMirrors) ReadFile(_, path string) (string, error) {
	content, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("read %s: no such file", path)
	}
	return content, nil
}

func (m *stubMirrors) WriteFile(_, path, content string) error {
	m.files[path] = content
	return nil
}

func (m *stubMirrors) RemoveFile(_, path string) error {
	delete(m.files, path)
	return nil
}

func (m *stubMirrors) StageCommitPush(_ context.Context, _, _, message string, push bool) (domain.CommitReceipt, error) {
	m.commits = append(m.commits, message)
	return domain.CommitReceipt{Hash: "feedface", Message: message, Pushed: push}, nil
}

func (m *stubMirrors) History(string, ports.HistoryOptions) ([]domain.CommitInfo, error) {
	return nil, nil
}

func (m *stubMirrors) Diff(string, ports.DiffOptions) (string, error) { return "", nil }

type stubLocker struct{}

func (stubLocker) WithRead(_ string, fn func() error) error  { return fn() }
func (stubLocker) WithWrite(_ string, fn func() error) error { return fn() }

type stubIndex struct{}

func (stubIndex) Open(string) error               { return nil }
func (stubIndex) Close() error                    { return nil }
func (stubIndex) NeedsFullRebuild() (bool, error) { return false, nil }
func (stubIndex) DropProject(string) error        { return nil }

func (stubIndex) SyncProject(string, string) (*ports.IndexStats, error) {
	return &ports.IndexStats{}, nil
}
func (stubIndex) SearchSections(string, string, int) ([]domain.SectionHit, error) {
	return nil, nil
}
func (stubIndex) FileSections(string, string) ([]domain.SectionHit, error) {
	return nil, nil
}

func newTestServer(apiKey string) (*Server, *stubMirrors) {
	mirrors := &stubMirrors{files: map[string]string{
		"main.tex": "\\section{Intro}\nSome text.\n",
	}}
	deps := commands.Deps{
		Registry: &stubRegistry{
			projects:   []domain.Project{{Key: "thesis", Name: "PhD Thesis", RemoteID: "abc123", Token: "olp_token"}},
			defaultKey: "thesis",
		},
		Mirrors: mirrors,
		Locks:   stubLocker{},
		Index:   stubIndex{},
	}
	srv := NewServer(&Config{
		APIKey:  apiKey,
		DocsURL: "https://www.overleaf.com/docs",
		Logger:  nil,
	}, deps)
	return srv, mirrors
}

func doJSON(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestRootAndHealth(t *testing.T) {
	srv, _ := newTestServer("")
	handler := srv.routes()

	t.Run("root reports the service", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, expected 200", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["status"] != "ok" || body["service"] != "texmirror API" {
			t.Errorf("unexpected root body: %v", body)
		}
	})

	t.Run("unknown path is 404", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/nope", "", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, expected 404", rec.Code)
		}
	})

	t.Run("health reports configuration", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/health", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, expected 200", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["status"] != "healthy" {
			t.Errorf("status field = %v", body["status"])
		}
		if body["projects_configured"] != float64(1) {
			t.Errorf("projects_configured = %v, expected 1", body["projects_configured"])
		}
		if body["default_project"] != "thesis" {
			t.Errorf("default_project = %v, expected thesis", body["default_project"])
		}
	})
}

func TestReadRoutesStayOpen(t *testing.T) {
	srv, _ := newTestServer("sekrit")
	handler := srv.routes()

	t.Run("list projects without auth", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/projects", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, expected 200: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["success"] != true {
			t.Errorf("success = %v", body["success"])
		}
		result, _ := body["result"].(string)
		if !strings.Contains(result, "thesis: PhD Thesis") {
			t.Errorf("result missing project listing: %q", result)
		}
	})

	t.Run("read file without auth", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/files/read", "",
			`{"arguments": {"file_path": "main.tex"}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, expected 200: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		result, _ := body["result"].(string)
		if !strings.Contains(result, "\\section{Intro}") {
			t.Errorf("result missing file content: %q", result)
		}
	})
}

func TestMutatingRoutesRequireKey(t *testing.T) {
	srv, mirrors := newTestServer("sekrit")
	handler := srv.routes()
	editBody := `{"arguments": {"file_path": "main.tex", "content": "new", "push": false}}`

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantDetail string
	}{
		{"missing header", "", http.StatusUnauthorized, "Missing Authorization header"},
		{"wrong scheme", "Basic c2Vrcml0", http.StatusUnauthorized, "Invalid Authorization format"},
		{"wrong key", "Bearer nope", http.StatusUnauthorized, "Invalid API key"},
		{"valid key", "Bearer sekrit", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/files/edit", tt.token, editBody)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, expected %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantDetail != "" {
				body := decodeBody(t, rec)
				if body["detail"] != tt.wantDetail {
					t.Errorf("detail = %v, expected %q", body["detail"], tt.wantDetail)
				}
			}
		})
	}

	if len(mirrors.commits) != 1 {
		t.Errorf("expected exactly one commit from the authorized edit, got %d", len(mirrors.commits))
	}
}

func TestNoKeyConfiguredDisablesAuth(t *testing.T) {
	srv, mirrors := newTestServer("")
	handler := srv.routes()

	rec := doJSON(t, handler, http.MethodPost, "/files/create", "",
		`{"arguments": {"file_path": "notes.tex", "content": "x", "push": false}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200: %s", rec.Code, rec.Body.String())
	}
	if len(mirrors.commits) != 1 || mirrors.commits[0] != "Add notes.tex" {
		t.Errorf("commits = %v, expected the default create message", mirrors.commits)
	}
}

func TestToolFailuresReturnDetail(t *testing.T) {
	srv, _ := newTestServer("")
	handler := srv.routes()

	t.Run("missing required argument", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/files/read", "", `{"arguments": {}}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, expected 400", rec.Code)
		}
		body := decodeBody(t, rec)
		detail, _ := body["detail"].(string)
		if !strings.Contains(detail, "filePath") {
			t.Errorf("detail = %q, expected required-field error", detail)
		}
	})

	t.Run("create over existing file", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/files/create", "",
			`{"arguments": {"file_path": "main.tex", "content": "x"}}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, expected 400", rec.Code)
		}
		body := decodeBody(t, rec)
		detail, _ := body["detail"].(string)
		if !strings.Contains(detail, "already exists") {
			t.Errorf("detail = %q, expected conflict error", detail)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/files/read", "", `{"arguments": `)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, expected 400", rec.Code)
		}
	})
}

func TestMethodEnforcement(t *testing.T) {
	srv, _ := newTestServer("")
	handler := srv.routes()

	rec := doJSON(t, handler, http.MethodGet, "/files/edit", "", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("Allow = %q, expected POST", allow)
	}
}

func TestBrowserOriginHeaders(t *testing.T) {
	srv, _ := newTestServer("")
	handler := srv.routes()

	t.Run("preflight from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/files/read", nil)
		req.Header.Set("Origin", "https://chatgpt.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, expected 204", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://chatgpt.com" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Access-Control-Allow-Credentials = %q", got)
		}
	})

	t.Run("unlisted origin gets no grant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, expected empty", got)
		}
	})
}

func TestUpdateSectionRoute(t *testing.T) {
	srv, mirrors := newTestServer("")
	handler := srv.routes()

	rec := doJSON(t, handler, http.MethodPost, "/sections/update", "",
		`{"arguments": {"file_path": "main.tex", "section_title": "Intro", "new_content": "Rewritten.", "push": false}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200: %s", rec.Code, rec.Body.String())
	}
	if got := mirrors.files["main.tex"]; !strings.Contains(got, "Rewritten.") {
		t.Errorf("section content not updated: %q", got)
	}
	body := decodeBody(t, rec)
	result, _ := body["result"].(string)
	if !strings.Contains(result, "Updated section 'Intro'") {
		t.Errorf("result = %q", result)
	}
}
