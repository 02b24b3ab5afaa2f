package commands

import (
	"context"
	"fmt"

	"texmirror/internal/domain"
	"texmirror/internal/ports"
)

// DiffCommand renders changes between two revisions of a project. With
// no ending ref it reports changes since FromRef including uncommitted
// local edits.
type DiffCommand struct {
	deps     Deps
	Project  string
	FromRef  string
	ToRef    string
	FilePath string
}

// NewDiffCommand creates a new DiffCommand
func NewDiffCommand(deps Deps, project, fromRef, toRef, filePath string) *DiffCommand {
	return &DiffCommand{
		deps:     deps,
		Project:  project,
		FromRef:  fromRef,
		ToRef:    toRef,
		FilePath: filePath,
	}
}

// DiffResult contains the rendered diff
type DiffResult struct {
	Diff    string
	Message string
}

// Execute runs the diff command
func (c *DiffCommand) Execute(ctx context.Context) (*DiffResult, error) {
	result := &DiffResult{}

	err := c.deps.withRead(ctx, c.Project, func(project domain.Project, _ domain.Mirror) error {
		diff, err := c.deps.Mirrors.Diff(project.RemoteID, ports.DiffOptions{
			FromRef: c.FromRef,
			ToRef:   c.ToRef,
			Path:    c.FilePath,
		})
		if err != nil {
			return err
		}
		result.Diff = diff
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Diff == "" {
		result.Message = "No differences found"
		return result, nil
	}

	result.Message = fmt.Sprintf("Diff:\n\n%s", result.Diff)
	return result, nil
}
