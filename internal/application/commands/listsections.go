package commands

import (
	"context"
	"fmt"
	"strings"

	"texmirror/internal/application"
	"texmirror/internal/domain"
)

// previewDisplayLimit caps the preview shown per section in listings
const previewDisplayLimit = 100

// ListSectionsCommand parses a document and lists its section structure
type ListSectionsCommand struct {
	deps     Deps
	Project  string
	FilePath string
}

// NewListSectionsCommand creates a new ListSectionsCommand
func NewListSectionsCommand(deps Deps, project, filePath string) *ListSectionsCommand {
	return &ListSectionsCommand{
		deps:     deps,
		Project:  project,
		FilePath: filePath,
	}
}

// ListSectionsResult contains the parsed sections
type ListSectionsResult struct {
	FilePath string
	Sections []domain.Section
	Message  string
}

// Validate checks if the list operation is valid
func (c *ListSectionsCommand) Validate() error {
	return application.ValidateRequired("filePath", c.FilePath)
}

// Execute runs the list sections command
func (c *ListSectionsCommand) Execute(ctx context.Context) (*ListSectionsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &ListSectionsResult{FilePath: c.FilePath}

	err := c.deps.withRead(ctx, c.Project, func(project domain.Project, _ domain.Mirror) error {
		exists, err := c.deps.Mirrors.FileExists(project.RemoteID, c.FilePath)
		if err != nil {
			return err
		}
		if !exists {
			return &application.FileNotFoundError{Path: c.FilePath}
		}

		content, err := c.deps.Mirrors.ReadFile(project.RemoteID, c.FilePath)
		if err != nil {
			return err
		}
		result.Sections = domain.ParseSections(content)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Sections) == 0 {
		result.Message = fmt.Sprintf("No sections found in '%s'", c.FilePath)
		return result, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sections in '%s':", c.FilePath)
	for _, s := range result.Sections {
		fmt.Fprintf(&b, "\n\n[%s] %s", s.Kind, s.Title)
		fmt.Fprintf(&b, "\n  Preview: %s...", truncateRunes(s.Preview, previewDisplayLimit))
	}
	result.Message = b.String()

	return result, nil
}
