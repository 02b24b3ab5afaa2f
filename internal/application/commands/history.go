package commands

import (
	"context"
	"fmt"
	"strings"

	"texmirror/internal/domain"
	"texmirror/internal/ports"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryCommand lists the commit history of a project, optionally
// restricted to one file.
type HistoryCommand struct {
	deps     Deps
	Project  string
	FilePath string
	Limit    int
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(deps Deps, project, filePath string, limit int) *HistoryCommand {
	return &HistoryCommand{
		deps:     deps,
		Project:  project,
		FilePath: filePath,
		Limit:    limit,
	}
}

// HistoryResult contains the commit listing
type HistoryResult struct {
	Commits []domain.CommitInfo
	Message string
}

// limit normalizes the requested count into the accepted window
func (c *HistoryCommand) limit() int {
	if c.Limit <= 0 {
		return defaultHistoryLimit
	}
	if c.Limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return c.Limit
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) (*HistoryResult, error) {
	result := &HistoryResult{}

	err := c.deps.withRead(ctx, c.Project, func(project domain.Project, _ domain.Mirror) error {
		commits, err := c.deps.Mirrors.History(project.RemoteID, ports.HistoryOptions{
			Limit: c.limit(),
			Path:  c.FilePath,
		})
		if err != nil {
			return err
		}
		result.Commits = commits
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Commits) == 0 {
		result.Message = "No commits found"
		return result, nil
	}

	var b strings.Builder
	b.WriteString("Commit history:")
	for _, commit := range result.Commits {
		fmt.Fprintf(&b, "\n\n%.8s - %s", commit.Hash, commit.When.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "\n  Author: %s <%s>", commit.Author, commit.Email)
		fmt.Fprintf(&b, "\n  Message: %s", truncateRunes(strings.TrimSpace(commit.Message), 100))
	}
	result.Message = b.String()

	return result, nil
}
