package commands

import (
	"context"
	"fmt"
	"strings"

	"texmirror/internal/domain"
)

// ListFilesCommand lists files in a project mirror
type ListFilesCommand struct {
	deps      Deps
	Project   string
	Extension string
}

// NewListFilesCommand creates a new ListFilesCommand
func NewListFilesCommand(deps Deps, project, extension string) *ListFilesCommand {
	return &ListFilesCommand{
		deps:      deps,
		Project:   project,
		Extension: extension,
	}
}

// ListFilesResult contains the file listing
type ListFilesResult struct {
	ProjectName string
	Files       []string
	Message     string
}

// Execute runs the list files command
func (c *ListFilesCommand) Execute(ctx context.Context) (*ListFilesResult, error) {
	result := &ListFilesResult{}

	err := c.deps.withRead(ctx, c.Project, func(project domain.Project, _ domain.Mirror) error {
		files, err := c.deps.Mirrors.ListFiles(project.RemoteID, c.Extension)
		if err != nil {
			return err
		}
		result.ProjectName = project.Name
		result.Files = files
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Files) == 0 {
		if c.Extension != "" {
			result.Message = fmt.Sprintf("No files found with extension %s", c.Extension)
		} else {
			result.Message = "No files found"
		}
		return result, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Files in project '%s':", result.ProjectName)
	for _, f := range result.Files {
		fmt.Fprintf(&b, "\n  - %s", f)
	}
	result.Message = b.String()

	return result, nil
}
