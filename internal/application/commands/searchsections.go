package commands

import (
	"context"
	"fmt"
	"strings"

	"texmirror/internal/application"
	"texmirror/internal/domain"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// SearchSectionsCommand queries the section index across one or all
// configured projects.
type SearchSectionsCommand struct {
	deps    Deps
	Query   string
	Project string
	Limit   int
}

// NewSearchSectionsCommand creates a new SearchSectionsCommand
func NewSearchSectionsCommand(deps Deps, query, project string, limit int) *SearchSectionsCommand {
	return &SearchSectionsCommand{deps: deps, Query: query, Project: project, Limit: limit}
}

// SearchSectionsResult contains the matching sections
type SearchSectionsResult struct {
	Hits    []domain.SectionHit
	Message string
}

// Validate checks if the command parameters are valid
func (c *SearchSectionsCommand) Validate() error {
	return application.ValidateRequired("query", c.Query)
}

func (c *SearchSectionsCommand) limit() int {
	if c.Limit <= 0 {
		return defaultSearchLimit
	}
	if c.Limit > maxSearchLimit {
		return maxSearchLimit
	}
	return c.Limit
}

// Execute runs the search sections command
func (c *SearchSectionsCommand) Execute(ctx context.Context) (*SearchSectionsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Project != "" {
		return c.searchOne(ctx)
	}
	return c.searchAll(ctx)
}

// searchOne refreshes and reindexes a single project, then queries the
// index scoped to it.
func (c *SearchSectionsCommand) searchOne(ctx context.Context) (*SearchSectionsResult, error) {
	var hits []domain.SectionHit
	err := c.deps.withRead(ctx, c.Project, func(project domain.Project, mirror domain.Mirror) error {
		if _, err := c.deps.Index.SyncProject(project.RemoteID, mirror.Root); err != nil {
			return err
		}
		var err error
		hits, err = c.deps.Index.SearchSections(c.Query, project.RemoteID, c.limit())
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.result(hits), nil
}

// searchAll brings every configured mirror up to date in the index and
// queries without a project filter.
func (c *SearchSectionsCommand) searchAll(ctx context.Context) (*SearchSectionsResult, error) {
	for _, project := range c.deps.Registry.List() {
		var mirror domain.Mirror
		if err := c.deps.Locks.WithWrite(project.RemoteID, func() error {
			var err error
			mirror, err = c.deps.Mirrors.Ensure(ctx, project)
			return err
		}); err != nil {
			return nil, err
		}
		if err := c.deps.Locks.WithRead(project.RemoteID, func() error {
			_, err := c.deps.Index.SyncProject(project.RemoteID, mirror.Root)
			return err
		}); err != nil {
			return nil, err
		}
	}

	hits, err := c.deps.Index.SearchSections(c.Query, "", c.limit())
	if err != nil {
		return nil, err
	}
	return c.result(hits), nil
}

func (c *SearchSectionsCommand) result(hits []domain.SectionHit) *SearchSectionsResult {
	if len(hits) == 0 {
		return &SearchSectionsResult{
			Hits:    hits,
			Message: fmt.Sprintf("No sections found matching '%s'", c.Query),
		}
	}

	keyByID := make(map[string]string)
	for _, p := range c.deps.Registry.List() {
		keyByID[p.RemoteID] = p.Key
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d sections matching '%s':", len(hits), c.Query)
	for _, h := range hits {
		where := h.Path
		if key, ok := keyByID[h.ProjectID]; ok {
			where = key + ":" + h.Path
		}
		fmt.Fprintf(&b, "\n\n[%s] %s", h.Kind, h.Title)
		fmt.Fprintf(&b, "\n  File: %s", where)
		if h.Preview != "" {
			fmt.Fprintf(&b, "\n  Preview: %s...", truncateRunes(h.Preview, previewDisplayLimit))
		}
	}

	return &SearchSectionsResult{Hits: hits, Message: b.String()}
}
