package commands

import (
	"context"
	"reflect"
	"testing"

	"texmirror/internal/domain"
)

func TestSearchSectionsCommand_Validate(t *testing.T) {
	cmd := NewSearchSectionsCommand(newTestEnv().deps(), "", "", 0)
	if err := cmd.Validate(); err == nil || !contains(err.Error(), "query is required") {
		t.Errorf("expected query validation error, got %v", err)
	}
}

func TestSearchSectionsCommand_SingleProjectScopesQuery(t *testing.T) {
	env := newTestEnv()
	env.index.hits = []domain.SectionHit{
		{ProjectID: "abc123", Path: "main.tex", Kind: "section", Title: "Introduction", Preview: "We study..."},
	}

	cmd := NewSearchSectionsCommand(env.deps(), "intro", "thesis", 0)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(env.index.synced, []string{"abc123"}) {
		t.Errorf("synced = %v, expected just abc123", env.index.synced)
	}
	if env.index.lastProject != "abc123" {
		t.Errorf("search project = %q, expected abc123", env.index.lastProject)
	}
	if env.index.lastLimit != 20 {
		t.Errorf("limit = %d, expected default 20", env.index.lastLimit)
	}
	if len(result.Hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(result.Hits))
	}
	if !contains(result.Message, "Found 1 sections matching 'intro':") {
		t.Errorf("message = %q, expected hit count header", result.Message)
	}
	if !contains(result.Message, "[section] Introduction") {
		t.Errorf("message = %q, expected section line", result.Message)
	}
	if !contains(result.Message, "  File: thesis:main.tex") {
		t.Errorf("message = %q, expected project-qualified path", result.Message)
	}
}

func TestSearchSectionsCommand_AllProjectsEnsuresEveryMirror(t *testing.T) {
	env := newTestEnv()
	env.registry.projects = append(env.registry.projects,
		domain.Project{Key: "paper", Name: "Conference Paper", RemoteID: "def456"})

	cmd := NewSearchSectionsCommand(env.deps(), "methods", "", 0)
	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(env.mirrors.ensured, []string{"abc123", "def456"}) {
		t.Errorf("ensured = %v, expected both projects", env.mirrors.ensured)
	}
	if !reflect.DeepEqual(env.index.synced, []string{"abc123", "def456"}) {
		t.Errorf("synced = %v, expected both projects", env.index.synced)
	}
	if env.index.lastProject != "" {
		t.Errorf("search project = %q, expected unscoped", env.index.lastProject)
	}
}

func TestSearchSectionsCommand_NoHits(t *testing.T) {
	env := newTestEnv()

	cmd := NewSearchSectionsCommand(env.deps(), "nonexistent", "thesis", 0)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "No sections found matching 'nonexistent'" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestSearchSectionsCommand_LimitCapped(t *testing.T) {
	env := newTestEnv()

	cmd := NewSearchSectionsCommand(env.deps(), "q", "thesis", 9999)
	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.index.lastLimit != 100 {
		t.Errorf("limit = %d, expected cap at 100", env.index.lastLimit)
	}
}
