package commands

import (
	"context"
	"fmt"

	"texmirror/internal/application"
	"texmirror/internal/domain"
)

// EditFileCommand replaces the full content of an existing file and
// commits it. Editing a missing file is refused.
type EditFileCommand struct {
	deps          Deps
	Project       string
	FilePath      string
	Content       string
	CommitMessage string
	Push          bool
}

// NewEditFileCommand creates a new EditFileCommand
func NewEditFileCommand(deps Deps, project, filePath, content, commitMessage string, push bool) *EditFileCommand {
	return &EditFileCommand{
		deps:          deps,
		Project:       project,
		FilePath:      filePath,
		Content:       content,
		CommitMessage: commitMessage,
		Push:          push,
	}
}

// EditFileResult contains the commit produced by the edit
type EditFileResult struct {
	FilePath string
	Receipt  domain.CommitReceipt
	Message  string
}

// Validate checks if the edit operation is valid
func (c *EditFileCommand) Validate() error {
	return application.ValidateRequired("filePath", c.FilePath)
}

// Execute runs the edit file command
func (c *EditFileCommand) Execute(ctx context.Context) (*EditFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	commitMessage := c.CommitMessage
	if commitMessage == "" {
		commitMessage = fmt.Sprintf("Update %s", c.FilePath)
	}

	result := &EditFileResult{FilePath: c.FilePath}

	err := c.deps.withWrite(ctx, c.Project, func(project domain.Project, _ domain.Mirror) error {
		exists, err := c.deps.Mirrors.FileExists(project.RemoteID, c.FilePath)
		if err != nil {
			return err
		}
		if !exists {
			return &application.FileNotFoundError{Path: c.FilePath, Hint: "Use create_file to create it."}
		}

		if err := c.deps.Mirrors.WriteFile(project.RemoteID, c.FilePath, c.Content); err != nil {
			return err
		}

		receipt, err := c.deps.Mirrors.StageCommitPush(ctx, project.RemoteID, c.FilePath, commitMessage, c.Push)
		if err != nil {
			return err
		}
		result.Receipt = receipt
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case result.Receipt.Pushed:
		result.Message = fmt.Sprintf("Updated and pushed '%s'", c.FilePath)
	case result.Receipt.PushErr != nil:
		result.Message = fmt.Sprintf("Updated '%s' %s", c.FilePath, pushFailedNote(result.Receipt.PushErr))
	default:
		result.Message = fmt.Sprintf("Updated '%s' (not pushed). Run sync_project or use push=true to push changes.", c.FilePath)
	}

	return result, nil
}
