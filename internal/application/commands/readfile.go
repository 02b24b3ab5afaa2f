package commands

import (
	"context"
	"fmt"

	"texmirror/internal/application"
	"texmirror/internal/domain"
)

// ReadFileCommand reads a file from a project mirror
type ReadFileCommand struct {
	deps     Deps
	Project  string
	FilePath string
}

// NewReadFileCommand creates a new ReadFileCommand
func NewReadFileCommand(deps Deps, project, filePath string) *ReadFileCommand {
	return &ReadFileCommand{
		deps:     deps,
		Project:  project,
		FilePath: filePath,
	}
}

// ReadFileResult contains the file content
type ReadFileResult struct {
	FilePath string
	Content  string
	Message  string
}

// Validate checks if the read operation is valid
func (c *ReadFileCommand) Validate() error {
	return application.ValidateRequired("filePath", c.FilePath)
}

// Execute runs the read file command
func (c *ReadFileCommand) Execute(ctx context.Context) (*ReadFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &ReadFileResult{FilePath: c.FilePath}

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
		result.Content = content
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Message = fmt.Sprintf("Content of '%s':\n\n%s", c.FilePath, result.Content)
	return result, nil
}
