package commands

import (
	"context"
	"fmt"

	"texmirror/internal/application"
	"texmirror/internal/domain"
)

// DeleteFileCommand removes a file from a project and commits the
// deletion.
type DeleteFileCommand struct {
	deps          Deps
	Project       string
	FilePath      string
	CommitMessage string
	Push          bool
}

// NewDeleteFileCommand creates a new DeleteFileCommand
func NewDeleteFileCommand(deps Deps, project, filePath, commitMessage string, push bool) *DeleteFileCommand {
	return &DeleteFileCommand{
		deps:          deps,
		Project:       project,
		FilePath:      filePath,
		CommitMessage: commitMessage,
		Push:          push,
	}
}

// DeleteFileResult contains the commit produced by the delete
type DeleteFileResult struct {
	FilePath string
	Receipt  domain.CommitReceipt
	Message  string
}

// Validate checks if the delete operation is valid
func (c *DeleteFileCommand) Validate() error {
	return application.ValidateRequired("filePath", c.FilePath)
}

// Execute runs the delete file command
func (c *DeleteFileCommand) Execute(ctx context.Context) (*DeleteFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	commitMessage := c.CommitMessage
	if commitMessage == "" {
		commitMessage = fmt.Sprintf("Delete %s", c.FilePath)
	}

	result := &DeleteFileResult{FilePath: c.FilePath}

	err := c.deps.withWrite(ctx, c.Project, func(project domain.Project, _ domain.Mirror) error {
		exists, err := c.deps.Mirrors.FileExists(project.RemoteID, c.FilePath)
		if err != nil {
			return err
		}
		if !exists {
			return &application.FileNotFoundError{Path: c.FilePath}
		}

		if err := c.deps.Mirrors.RemoveFile(project.RemoteID, c.FilePath); err != nil {
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
		result.Message = fmt.Sprintf("Deleted and pushed '%s'", c.FilePath)
	case result.Receipt.PushErr != nil:
		result.Message = fmt.Sprintf("Deleted '%s' %s", c.FilePath, pushFailedNote(result.Receipt.PushErr))
	default:
		result.Message = fmt.Sprintf("Deleted '%s' (not pushed)", c.FilePath)
	}

	return result, nil
}
