package commands

import (
	"context"
	"errors"
	"testing"

	"texmirror/internal/application"
)

func TestCreateFileCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "valid path",
			filePath: "chapters/ch1.tex",
			wantErr:  false,
		},
		{
			name:     "empty path",
			filePath: "",
			wantErr:  true,
			errMsg:   "file path is required",
		},
		{
			name:     "whitespace path",
			filePath: "   ",
			wantErr:  true,
			errMsg:   "file path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCreateFileCommand(newTestEnv().deps(), "thesis", tt.filePath, "content", "", false)
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateFileCommand_WritesAndCommits(t *testing.T) {
	env := newTestEnv()

	cmd := NewCreateFileCommand(env.deps(), "thesis", "notes.tex", "\\section{Notes}", "", false)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := env.mirrors.files["abc123"]["notes.tex"]; got != "\\section{Notes}" {
		t.Errorf("file content = %q, expected section heading", got)
	}
	if len(env.mirrors.commits) != 1 || env.mirrors.commits[0] != "Add notes.tex" {
		t.Errorf("commits = %v, expected default message 'Add notes.tex'", env.mirrors.commits)
	}
	want := "Created 'notes.tex' (not pushed). Run sync_project or use push=true to push changes."
	if result.Message != want {
		t.Errorf("message = %q, expected %q", result.Message, want)
	}
}

func TestCreateFileCommand_ExistingFileIsNotTouched(t *testing.T) {
	env := newTestEnv()
	env.mirrors.put("abc123", "main.tex", "original")

	cmd := NewCreateFileCommand(env.deps(), "thesis", "main.tex", "overwritten", "", true)
	_, err := cmd.Execute(context.Background())
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}

	var existsErr *application.FileExistsError
	if !errors.As(err, &existsErr) {
		t.Fatalf("expected FileExistsError, got %T: %v", err, err)
	}
	want := "File 'main.tex' already exists. Use edit_file to modify it."
	if existsErr.Error() != want {
		t.Errorf("error = %q, expected %q", existsErr.Error(), want)
	}

	if got := env.mirrors.files["abc123"]["main.tex"]; got != "original" {
		t.Errorf("file content = %q, expected untouched original", got)
	}
	if len(env.mirrors.commits) != 0 {
		t.Errorf("expected no commit for refused create, got %v", env.mirrors.commits)
	}
}

func TestCreateFileCommand_PushOutcomes(t *testing.T) {
	t.Run("push succeeds", func(t *testing.T) {
		env := newTestEnv()
		cmd := NewCreateFileCommand(env.deps(), "thesis", "a.tex", "x", "", true)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Message != "Created and pushed 'a.tex'" {
			t.Errorf("message = %q", result.Message)
		}
		if !result.Receipt.Pushed {
			t.Error("expected receipt marked pushed")
		}
	})

	t.Run("push fails but commit stands", func(t *testing.T) {
		env := newTestEnv()
		env.mirrors.pushErr = errors.New("remote hung up")

		cmd := NewCreateFileCommand(env.deps(), "thesis", "a.tex", "x", "", true)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			t.Fatalf("push failure must not fail the command: %v", err)
		}
		if len(env.mirrors.commits) != 1 {
			t.Fatalf("expected the commit to be kept, got %v", env.mirrors.commits)
		}
		if !contains(result.Message, "Created 'a.tex' (committed, but push failed: remote hung up)") {
			t.Errorf("message = %q, expected committed-but-unpushed note", result.Message)
		}
		if !contains(result.Message, "Run sync_project to push the commit.") {
			t.Errorf("message = %q, expected sync_project hint", result.Message)
		}
	})
}

func TestCreateFileCommand_CustomCommitMessage(t *testing.T) {
	env := newTestEnv()

	cmd := NewCreateFileCommand(env.deps(), "thesis", "a.tex", "x", "Start appendix", false)
	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.mirrors.commits) != 1 || env.mirrors.commits[0] != "Start appendix" {
		t.Errorf("commits = %v, expected custom message", env.mirrors.commits)
	}
}
