package commands

import (
	"context"
	"fmt"
	"strings"

	"texmirror/internal/domain"
	"texmirror/internal/ports"
)

// noProjectsGuidance is returned instead of a project listing when
// nothing is configured yet.
const noProjectsGuidance = `No projects configured.

Create 'texmirror.json' with:
{
  "projects": {
    "my-project": {
      "name": "My Project",
      "projectId": "YOUR_PROJECT_ID",
      "gitToken": "YOUR_GIT_TOKEN"
    }
  }
}

Or set TEXMIRROR_PROJECT_ID and TEXMIRROR_GIT_TOKEN environment variables.`

// ListProjectsCommand lists the configured projects
type ListProjectsCommand struct {
	registry ports.ProjectRegistry
}

// NewListProjectsCommand creates a new ListProjectsCommand
func NewListProjectsCommand(registry ports.ProjectRegistry) *ListProjectsCommand {
	return &ListProjectsCommand{registry: registry}
}

// ListProjectsResult contains the configured projects and a rendered listing
type ListProjectsResult struct {
	Projects   []domain.Project
	DefaultKey string
	Message    string
}

// Execute runs the list projects command
func (c *ListProjectsCommand) Execute(ctx context.Context) (*ListProjectsResult, error) {
	projects := c.registry.List()
	if len(projects) == 0 {
		return &ListProjectsResult{Message: noProjectsGuidance}, nil
	}

	defaultKey := c.registry.DefaultKey()

	var b strings.Builder
	b.WriteString("Configured projects:")
	for _, p := range projects {
		marker := ""
		if p.Key == defaultKey {
			marker = " (default)"
		}
		fmt.Fprintf(&b, "\n  - %s: %s%s", p.Key, p.Name, marker)
	}

	return &ListProjectsResult{
		Projects:   projects,
		DefaultKey: defaultKey,
		Message:    b.String(),
	}, nil
}
