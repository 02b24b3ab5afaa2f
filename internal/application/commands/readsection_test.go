package commands

import (
	"context"
	"errors"
	"testing"

	"texmirror/internal/application"
	"texmirror/internal/domain"
)

func TestReadSectionCommand_ReturnsFullSpanWithHeading(t *testing.T) {
	env := newTestEnv()
	env.mirrors.put("abc123", "main.tex", thesisDoc)

	cmd := NewReadSectionCommand(env.deps(), "thesis", "main.tex", "Intro")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "\\section{Intro}\nOld intro text.\n\n"
	if result.Content != want {
		t.Errorf("content = %q, expected full span %q", result.Content, want)
	}
	if result.Message != "Content of section 'Intro':\n\n"+want {
		t.Errorf("message = %q", result.Message)
	}
	if result.Section.Title != "Intro" || result.Section.Kind != domain.KindSection {
		t.Errorf("section = %+v, expected Intro section", result.Section)
	}
}

func TestReadSectionCommand_LastSectionRunsToEndOfFile(t *testing.T) {
	env := newTestEnv()
	env.mirrors.put("abc123", "main.tex", thesisDoc)

	cmd := NewReadSectionCommand(env.deps(), "thesis", "main.tex", "Methods")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Content != "\\section{Methods}\nMethods text.\n" {
		t.Errorf("content = %q", result.Content)
	}
}

func TestReadSectionCommand_UnknownSection(t *testing.T) {
	env := newTestEnv()
	env.mirrors.put("abc123", "main.tex", thesisDoc)

	cmd := NewReadSectionCommand(env.deps(), "thesis", "main.tex", "Results")
	_, err := cmd.Execute(context.Background())

	var notFound *domain.SectionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SectionNotFoundError, got %T: %v", err, err)
	}
	if notFound.Title != "Results" {
		t.Errorf("title = %q, expected Results", notFound.Title)
	}
}

func TestReadSectionCommand_MissingFile(t *testing.T) {
	env := newTestEnv()

	cmd := NewReadSectionCommand(env.deps(), "thesis", "ghost.tex", "Intro")
	_, err := cmd.Execute(context.Background())

	var notFound *application.FileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected FileNotFoundError, got %T: %v", err, err)
	}
	if notFound.Error() != "File 'ghost.tex' not found" {
		t.Errorf("error = %q", notFound.Error())
	}
}
