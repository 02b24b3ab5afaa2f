package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"texmirror/internal/domain"
)

const (
	DefaultConfigFile = "texmirror.json"
	DefaultCacheDir   = "./texmirror_cache"
	DefaultGitHost    = "git.overleaf.com"
	DefaultDocsURL    = "https://www.overleaf.com/docs"

	DefaultAuthorName  = "texmirror"
	DefaultAuthorEmail = "texmirror@local"
)

// Environment variable names
const (
	EnvConfigFile  = "TEXMIRROR_CONFIG_FILE"
	EnvCacheDir    = "TEXMIRROR_CACHE_DIR"
	EnvProjectID   = "TEXMIRROR_PROJECT_ID"
	EnvGitToken    = "TEXMIRROR_GIT_TOKEN"
	EnvAuthorName  = "TEXMIRROR_GIT_AUTHOR_NAME"
	EnvAuthorEmail = "TEXMIRROR_GIT_AUTHOR_EMAIL"
	EnvAPIKey      = "TEXMIRROR_API_KEY"
)

// ErrNoProjects is returned when nothing is configured at all. Its text
// doubles as setup guidance for callers.
var ErrNoProjects = errors.New("no projects configured; create " + DefaultConfigFile +
	" or set " + EnvProjectID + " and " + EnvGitToken + " environment variables")

// UnknownProjectError reports a lookup for a name that is not configured
type UnknownProjectError struct {
	Name      string
	Available []string
}

func (e *UnknownProjectError) Error() string {
	return fmt.Sprintf("project '%s' not found; available: %s", e.Name, strings.Join(e.Available, ", "))
}

// ConfigFile returns the config file path from TEXMIRROR_CONFIG_FILE,
// falling back to DefaultConfigFile.
func ConfigFile() string {
	if env := os.Getenv(EnvConfigFile); env != "" {
		return env
	}
	return DefaultConfigFile
}

// CacheDir returns the mirror cache root from TEXMIRROR_CACHE_DIR,
// falling back to DefaultCacheDir.
func CacheDir() string {
	if env := os.Getenv(EnvCacheDir); env != "" {
		return env
	}
	return DefaultCacheDir
}

// AuthorName returns the commit author name for mirrors that have none
func AuthorName() string {
	if env := os.Getenv(EnvAuthorName); env != "" {
		return env
	}
	return DefaultAuthorName
}

// AuthorEmail returns the commit author email for mirrors that have none
func AuthorEmail() string {
	if env := os.Getenv(EnvAuthorEmail); env != "" {
		return env
	}
	return DefaultAuthorEmail
}

// APIKey returns the HTTP API bearer key; empty disables authentication
func APIKey() string {
	return os.Getenv(EnvAPIKey)
}

type projectJSON struct {
	Name      string `json:"name"`
	ProjectID string `json:"projectId"`
	GitToken  string `json:"gitToken"`
}

type fileJSON struct {
	Projects       map[string]projectJSON `json:"projects"`
	DefaultProject string                 `json:"defaultProject"`
	GitHost        string                 `json:"gitHost"`
	DocsURL        string                 `json:"docsUrl"`
}

// Registry holds the loaded project configuration. It implements
// ports.ProjectRegistry.
type Registry struct {
	projects   map[string]domain.Project
	order      []string // sorted keys, for stable listings and defaults
	defaultKey string
	gitHost    string
	docsURL    string
}

// Load reads the config file at path (empty means ConfigFile()). A
// missing file is not an error: the registry falls back to the
// TEXMIRROR_PROJECT_ID / TEXMIRROR_GIT_TOKEN environment pair, or stays
// empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		path = ConfigFile()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fromEnv(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var f fileJSON
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	r := &Registry{
		projects:   make(map[string]domain.Project, len(f.Projects)),
		defaultKey: f.DefaultProject,
		gitHost:    orDefault(f.GitHost, DefaultGitHost),
		docsURL:    orDefault(f.DocsURL, DefaultDocsURL),
	}
	for key, p := range f.Projects {
		if p.ProjectID == "" {
			return nil, fmt.Errorf("config %s: project '%s': projectId is required", path, key)
		}
		if p.GitToken == "" {
			return nil, fmt.Errorf("config %s: project '%s': gitToken is required", path, key)
		}
		name := p.Name
		if name == "" {
			name = key
		}
		r.projects[key] = domain.Project{Key: key, Name: name, RemoteID: p.ProjectID, Token: p.GitToken}
	}
	r.order = sortedKeys(r.projects)
	return r, nil
}

func fromEnv() *Registry {
	r := &Registry{
		projects: make(map[string]domain.Project),
		gitHost:  DefaultGitHost,
		docsURL:  DefaultDocsURL,
	}
	id := os.Getenv(EnvProjectID)
	token := os.Getenv(EnvGitToken)
	if id != "" && token != "" {
		r.projects["default"] = domain.Project{Key: "default", Name: "Default Project", RemoteID: id, Token: token}
		r.defaultKey = "default"
		r.order = []string{"default"}
	}
	return r
}

// Lookup resolves a project by key. An empty name selects the configured
// default, or the first configured project when no default is set.
func (r *Registry) Lookup(name string) (domain.Project, error) {
	if len(r.projects) == 0 {
		return domain.Project{}, ErrNoProjects
	}
	if name == "" {
		name = r.defaultKey
		if name == "" {
			name = r.order[0]
		}
	}
	p, ok := r.projects[name]
	if !ok {
		return domain.Project{}, &UnknownProjectError{Name: name, Available: r.order}
	}
	return p, nil
}

// List returns every configured project in key order
func (r *Registry) List() []domain.Project {
	out := make([]domain.Project, 0, len(r.projects))
	for _, key := range r.order {
		out = append(out, r.projects[key])
	}
	return out
}

// DefaultKey returns the configured default project key, if any
func (r *Registry) DefaultKey() string {
	return r.defaultKey
}

// GitHost returns the git host mirrors clone from
func (r *Registry) GitHost() string {
	return r.gitHost
}

// DocsURL returns the remote editor's import form endpoint
func (r *Registry) DocsURL() string {
	return r.docsURL
}

func sortedKeys(m map[string]domain.Project) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
