package commands

import (
	"context"
	"fmt"

	"texmirror/internal/application"
	"texmirror/internal/domain"
)

// UpdateSectionCommand replaces the body of one titled section in a
// document and commits the rewritten file. Everything outside the target
// section is preserved byte for byte.
type UpdateSectionCommand struct {
	deps          Deps
	Project       string
	FilePath      string
	SectionTitle  string
	NewContent    string
	CommitMessage string
	Push          bool
}

// NewUpdateSectionCommand creates a new UpdateSectionCommand
func NewUpdateSectionCommand(deps Deps, project, filePath, sectionTitle, newContent, commitMessage string, push bool) *UpdateSectionCommand {
	return &UpdateSectionCommand{
		deps:          deps,
		Project:       project,
		FilePath:      filePath,
		SectionTitle:  sectionTitle,
		NewContent:    newContent,
		CommitMessage: commitMessage,
		Push:          push,
	}
}

// UpdateSectionResult contains the commit produced by the update
type UpdateSectionResult struct {
	FilePath     string
	SectionTitle string
	Receipt      domain.CommitReceipt
	Message      string
}

// Validate checks if the update operation is valid
func (c *UpdateSectionCommand) Validate() error {
	if err := application.ValidateRequired("filePath", c.FilePath); err != nil {
		return err
	}
	return application.ValidateRequired("sectionTitle", c.SectionTitle)
}

// Execute runs the update section command
func (c *UpdateSectionCommand) Execute(ctx context.Context) (*UpdateSectionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	commitMessage := c.CommitMessage
	if commitMessage == "" {
		commitMessage = fmt.Sprintf("Update section '%s'", c.SectionTitle)
	}

	result := &UpdateSectionResult{FilePath: c.FilePath, SectionTitle: c.SectionTitle}

	err := c.deps.withWrite(ctx, c.Project, func(project domain.Project, _ domain.Mirror) error {
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

		updated, err := domain.ReplaceSection(content, c.SectionTitle, c.NewContent)
		if err != nil {
			return err
		}

		if err := c.deps.Mirrors.WriteFile(project.RemoteID, c.FilePath, updated); err != nil {
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
		result.Message = fmt.Sprintf("Updated section '%s' and pushed", c.SectionTitle)
	case result.Receipt.PushErr != nil:
		result.Message = fmt.Sprintf("Updated section '%s' %s", c.SectionTitle, pushFailedNote(result.Receipt.PushErr))
	default:
		result.Message = fmt.Sprintf("Updated section '%s' (not pushed)", c.SectionTitle)
	}

	return result, nil
}
