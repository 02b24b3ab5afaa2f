package commands

import (
	"context"
	"errors"
	"testing"

	"texmirror/internal/application"
)

func TestDeleteFileCommand_RemovesAndCommits(t *testing.T) {
	env := newTestEnv()
	env.mirrors.put("abc123", "old.tex", "obsolete")

	cmd := NewDeleteFileCommand(env.deps(), "thesis", "old.tex", "", false)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, still := env.mirrors.files["abc123"]["old.tex"]; still {
		t.Error("file still present after delete")
	}
	if len(env.mirrors.commits) != 1 || env.mirrors.commits[0] != "Delete old.tex" {
		t.Errorf("commits = %v, expected default delete message", env.mirrors.commits)
	}
	if result.Message != "Deleted 'old.tex' (not pushed)" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestDeleteFileCommand_MissingFile(t *testing.T) {
	env := newTestEnv()

	cmd := NewDeleteFileCommand(env.deps(), "thesis", "ghost.tex", "", false)
	_, err := cmd.Execute(context.Background())

	var notFound *application.FileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected FileNotFoundError, got %T: %v", err, err)
	}
	if len(env.mirrors.commits) != 0 {
		t.Errorf("expected no commit for refused delete, got %v", env.mirrors.commits)
	}
}

func TestDeleteFileCommand_PushedMessage(t *testing.T) {
	env := newTestEnv()
	env.mirrors.put("abc123", "old.tex", "obsolete")

	cmd := NewDeleteFileCommand(env.deps(), "thesis", "old.tex", "", true)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "Deleted and pushed 'old.tex'" {
		t.Errorf("message = %q", result.Message)
	}
}
