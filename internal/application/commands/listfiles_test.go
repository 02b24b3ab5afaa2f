package commands

import (
	"context"
	"testing"
)

func TestListFilesCommand_Execute(t *testing.T) {
	env := newTestEnv()
	env.mirrors.put("abc123", "main.tex", "")
	env.mirrors.put("abc123", "chapters/ch1.tex", "")
	env.mirrors.put("abc123", "refs.bib", "")

	t.Run("all files", func(t *testing.T) {
		cmd := NewListFilesCommand(env.deps(), "thesis", "")
		result, err := cmd.Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Files) != 3 {
			t.Fatalf("expected 3 files, got %v", result.Files)
		}
		if !contains(result.Message, "Files in project 'PhD Thesis':") {
			t.Errorf("message = %q, expected listing header", result.Message)
		}
		if !contains(result.Message, "  - chapters/ch1.tex") {
			t.Errorf("message = %q, expected nested file entry", result.Message)
		}
	})

	t.Run("extension filter", func(t *testing.T) {
		cmd := NewListFilesCommand(env.deps(), "thesis", ".bib")
		result, err := cmd.Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Files) != 1 || result.Files[0] != "refs.bib" {
			t.Errorf("files = %v, expected only refs.bib", result.Files)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		cmd := NewListFilesCommand(env.deps(), "thesis", ".sty")
		result, err := cmd.Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Message != "No files found with extension .sty" {
			t.Errorf("message = %q", result.Message)
		}
	})
}

func TestListFilesCommand_EmptyProject(t *testing.T) {
	env := newTestEnv()

	cmd := NewListFilesCommand(env.deps(), "thesis", "")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "No files found" {
		t.Errorf("message = %q", result.Message)
	}
}
