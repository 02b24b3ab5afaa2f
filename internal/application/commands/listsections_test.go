package commands

import (
	"context"
	"strings"
	"testing"
)

func TestListSectionsCommand_RendersKindTitleAndPreview(t *testing.T) {
	env := newTestEnv()
	env.mirrors.put("abc123", "main.tex", "\\chapter{Background}\nSome context.\n\\section{Prior Work}\nEarlier results.\n")

	cmd := NewListSectionsCommand(env.deps(), "thesis", "main.tex")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(result.Sections))
	}
	if !strings.HasPrefix(result.Message, "Sections in 'main.tex':") {
		t.Errorf("message = %q, expected listing header", result.Message)
	}
	if !contains(result.Message, "[chapter] Background") {
		t.Errorf("message = %q, expected chapter entry", result.Message)
	}
	if !contains(result.Message, "[section] Prior Work") {
		t.Errorf("message = %q, expected section entry", result.Message)
	}
	if !contains(result.Message, "  Preview: Some context....") {
		t.Errorf("message = %q, expected preview line with trailing ellipsis", result.Message)
	}
}

func TestListSectionsCommand_PreviewCappedAtHundredRunes(t *testing.T) {
	env := newTestEnv()
	body := strings.Repeat("a", 150)
	env.mirrors.put("abc123", "main.tex", "\\section{Long}\n"+body)

	cmd := NewListSectionsCommand(env.deps(), "thesis", "main.tex")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "  Preview: " + strings.Repeat("a", 100) + "..."
	if !contains(result.Message, want) {
		t.Errorf("message = %q, expected preview truncated to 100 runes", result.Message)
	}
	if contains(result.Message, strings.Repeat("a", 101)) {
		t.Error("preview exceeded the display limit")
	}
}

func TestListSectionsCommand_NoSections(t *testing.T) {
	env := newTestEnv()
	env.mirrors.put("abc123", "refs.bib", "@article{smith2020}")

	cmd := NewListSectionsCommand(env.deps(), "thesis", "refs.bib")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "No sections found in 'refs.bib'" {
		t.Errorf("message = %q", result.Message)
	}
}
