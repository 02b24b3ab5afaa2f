package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"texmirror/internal/application/commands"
	"texmirror/internal/domain"
)

// toolRequest is the body shape shared by every tool route.
type toolRequest struct {
	Arguments arguments `json:"arguments"`
}

// toolResponse carries the rendered result of a successful tool call.
type toolResponse struct {
	Result  string `json:"result"`
	Success bool   `json:"success"`
}

// arguments is a decoded JSON object of tool parameters.
type arguments map[string]any

func (a arguments) str(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

func (a arguments) boolOr(key string, fallback bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return fallback
}

func (a arguments) intOr(key string, fallback int) int {
	// encoding/json decodes numbers in any-typed maps as float64
	if v, ok := a[key].(float64); ok {
		return int(v)
	}
	return fallback
}

// decodeArgs reads the request body into an argument map. An empty body is
// treated as an empty argument set.
func decodeArgs(r *http.Request) (arguments, error) {
	var req toolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return arguments{}, nil
		}
		return nil, err
	}
	if req.Arguments == nil {
		return arguments{}, nil
	}
	return req.Arguments, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeResult(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, toolResponse{Result: message, Success: true})
}

// writeDetail reports a failure the way the browser assistants expect:
// a detail string under the matching HTTP status.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeDetail(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "texmirror API",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "healthy",
		"projects_configured": len(s.deps.Registry.List()),
		"default_project":     s.deps.Registry.DefaultKey(),
	})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	result, err := commands.NewListProjectsCommand(s.deps.Registry).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewListFilesCommand(s.deps,
		args.str("project_name"),
		args.str("extension"),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleReadFile(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewReadFileCommand(s.deps,
		args.str("project_name"),
		args.str("file_path"),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleGetSections(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewListSectionsCommand(s.deps,
		args.str("project_name"),
		args.str("file_path"),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleGetSectionContent(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewReadSectionCommand(s.deps,
		args.str("project_name"),
		args.str("file_path"),
		args.str("section_title"),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewHistoryCommand(s.deps,
		args.str("project_name"),
		args.str("file_path"),
		args.intOr("limit", 0),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleGetDiff(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewDiffCommand(s.deps,
		args.str("project_name"),
		args.str("from_ref"),
		args.str("to_ref"),
		args.str("file_path"),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleSearchSections(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewSearchSectionsCommand(s.deps,
		args.str("query"),
		args.str("project_name"),
		args.intOr("limit", 0),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	snippet := domain.ProjectSnippet{
		Content: args.str("content"),
		Name:    args.str("project_name"),
		Engine:  args.str("engine"),
		IsZip:   args.boolOr("is_zip", false),
	}
	result, err := commands.NewCreateProjectCommand(s.docsURL, snippet).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleSyncProject(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewSyncProjectCommand(s.deps,
		args.str("project_name"),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewCreateFileCommand(s.deps,
		args.str("project_name"),
		args.str("file_path"),
		args.str("content"),
		args.str("commit_message"),
		args.boolOr("push", true),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleEditFile(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewEditFileCommand(s.deps,
		args.str("project_name"),
		args.str("file_path"),
		args.str("content"),
		args.str("commit_message"),
		args.boolOr("push", true),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewDeleteFileCommand(s.deps,
		args.str("project_name"),
		args.str("file_path"),
		args.str("commit_message"),
		args.boolOr("push", true),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	args, err := decodeArgs(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := commands.NewUpdateSectionCommand(s.deps,
		args.str("project_name"),
		args.str("file_path"),
		args.str("section_title"),
		args.str("new_content"),
		args.str("commit_message"),
		args.boolOr("push", true),
	).Execute(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeResult(w, result.Message)
}
