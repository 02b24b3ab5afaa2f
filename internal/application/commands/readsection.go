package commands

import (
	"context"
	"fmt"

	"texmirror/internal/application"
	"texmirror/internal/domain"
)

// ReadSectionCommand returns the full content of one titled section,
// heading included.
type ReadSectionCommand struct {
	deps         Deps
	Project      string
	FilePath     string
	SectionTitle string
}

// NewReadSectionCommand creates a new ReadSectionCommand
func NewReadSectionCommand(deps Deps, project, filePath, sectionTitle string) *ReadSectionCommand {
	return &ReadSectionCommand{
		deps:         deps,
		Project:      project,
		FilePath:     filePath,
		SectionTitle: sectionTitle,
	}
}

// ReadSectionResult contains the located section and its raw span
type ReadSectionResult struct {
	Section domain.Section
	Content string
	Message string
}

// Validate checks if the read operation is valid
func (c *ReadSectionCommand) Validate() error {
	if err := application.ValidateRequired("filePath", c.FilePath); err != nil {
		return err
	}
	return application.ValidateRequired("sectionTitle", c.SectionTitle)
}

// Execute runs the read section command
func (c *ReadSectionCommand) Execute(ctx context.Context) (*ReadSectionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &ReadSectionResult{}

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

		sections := domain.ParseSections(content)
		section, ok := domain.FindSection(sections, c.SectionTitle)
		if !ok {
			return &domain.SectionNotFoundError{
				Title:     c.SectionTitle,
				Available: domain.SectionTitles(sections),
			}
		}

		result.Section = section
		result.Content = section.Span(content)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Message = fmt.Sprintf("Content of section '%s':\n\n%s", c.SectionTitle, result.Content)
	return result, nil
}
