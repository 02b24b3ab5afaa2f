// Package httpapi exposes the mirror commands over HTTP for browser-based
// assistants. Routes mirror the MCP tool set one-to-one: requests carry a
// JSON object of tool arguments and responses carry the rendered result
// string. Mutating routes require a bearer token when one is configured.
package httpapi

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"texmirror/internal/application/commands"
)

// Config holds server configuration
type Config struct {
	// Addr to listen on (default: ":8000")
	Addr string

	// APIKey guards mutating routes when set; empty disables auth
	APIKey string

	// DocsURL is the remote editor's import form endpoint, used by
	// the project creation route
	DocsURL string

	// Logger for server activity (default: stderr logger)
	Logger *log.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Addr:   ":8000",
		Logger: log.Default(),
	}
}

// Server serves the command set over HTTP.
type Server struct {
	addr    string
	apiKey  string
	docsURL string
	deps    commands.Deps

	listener net.Listener
	server   *http.Server

	logger *log.Logger
}

// NewServer creates an HTTP API server around the shared command dependencies.
func NewServer(config *Config, deps commands.Deps) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	addr := config.Addr
	if addr == "" {
		addr = ":8000"
	}

	return &Server{
		addr:    addr,
		apiKey:  config.APIKey,
		docsURL: config.DocsURL,
		deps:    deps,
		logger:  config.Logger,
	}
}

// Start begins listening and serving requests in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	s.server = &http.Server{
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		s.logger.Printf("API server listening on %s", ln.Addr())
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	s.logger.Println("Stopping API server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// routes builds the full handler tree, CORS wrapping included.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)

	// Read routes stay open like the health checks.
	mux.HandleFunc("/projects", s.handleListProjects)
	mux.HandleFunc("/files/list", post(s.handleListFiles))
	mux.HandleFunc("/files/read", post(s.handleReadFile))
	mux.HandleFunc("/sections/list", post(s.handleGetSections))
	mux.HandleFunc("/sections/read", post(s.handleGetSectionContent))
	mux.HandleFunc("/history", post(s.handleListHistory))
	mux.HandleFunc("/diff", post(s.handleGetDiff))
	mux.HandleFunc("/search", post(s.handleSearchSections))

	// Mutating routes always authenticate.
	mux.HandleFunc("/projects/create", post(s.requireKey(s.handleCreateProject)))
	mux.HandleFunc("/projects/sync", post(s.requireKey(s.handleSyncProject)))
	mux.HandleFunc("/files/create", post(s.requireKey(s.handleCreateFile)))
	mux.HandleFunc("/files/edit", post(s.requireKey(s.handleEditFile)))
	mux.HandleFunc("/files/delete", post(s.requireKey(s.handleDeleteFile)))
	mux.HandleFunc("/sections/update", post(s.requireKey(s.handleUpdateSection)))

	return allowBrowserOrigins(mux)
}

// post rejects anything but POST before the handler runs.
func post(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}

// requireKey enforces bearer auth when an API key is configured.
func (s *Server) requireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			next(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			writeDetail(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}
		token, ok := cutBearer(header)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid Authorization format")
			return
		}
		if token != s.apiKey {
			writeDetail(w, http.StatusUnauthorized, "Invalid API key")
			return
		}
		next(w, r)
	}
}

func cutBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || header[:len(prefix)] != prefix {
		return "", false
	}
	return header[len(prefix):], true
}

// browserOrigins are the assistant frontends allowed to call the API
// cross-origin.
var browserOrigins = map[string]bool{
	"https://chat.openai.com": true,
	"https://chatgpt.com":     true,
}

func allowBrowserOrigins(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if browserOrigins[origin] {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
