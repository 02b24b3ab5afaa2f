package commands

import (
	"context"
	"fmt"

	"texmirror/internal/application"
	"texmirror/internal/domain"
)

// CreateFileCommand creates a new file in a project and commits it.
// Creating over an existing file is refused.
type CreateFileCommand struct {
	deps          Deps
	Project       string
	FilePath      string
	Content       string
	CommitMessage string
	Push          bool
}

// NewCreateFileCommand creates a new CreateFileCommand
func NewCreateFileCommand(deps Deps, project, filePath, content, commitMessage string, push bool) *CreateFileCommand {
	return &CreateFileCommand{
		deps:          deps,
		Project:       project,
		FilePath:      filePath,
		Content:       content,
		CommitMessage: commitMessage,
		Push:          push,
	}
}

// CreateFileResult contains the commit produced by the create
type CreateFileResult struct {
	FilePath string
	Receipt  domain.CommitReceipt
	Message  string
}

// Validate checks if the create operation is valid
func (c *CreateFileCommand) Validate() error {
	return application.ValidateRequired("filePath", c.FilePath)
}

// Execute runs the create file command
func (c *CreateFileCommand) Execute(ctx context.Context) (*CreateFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	commitMessage := c.CommitMessage
	if commitMessage == "" {
		commitMessage = fmt.Sprintf("Add %s", c.FilePath)
	}

	result := &CreateFileResult{FilePath: c.FilePath}

	err := c.deps.withWrite(ctx, c.Project, func(project domain.Project, _ domain.Mirror) error {
		exists, err := c.deps.Mirrors.FileExists(project.RemoteID, c.FilePath)
		if err != nil {
			return err
		}
		if exists {
			return &application.FileExistsError{Path: c.FilePath}
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
		result.Message = fmt.Sprintf("Created and pushed '%s'", c.FilePath)
	case result.Receipt.PushErr != nil:
		result.Message = fmt.Sprintf("Created '%s' %s", c.FilePath, pushFailedNote(result.Receipt.PushErr))
	default:
		result.Message = fmt.Sprintf("Created '%s' (not pushed). Run sync_project or use push=true to push changes.", c.FilePath)
	}

	return result, nil
}
