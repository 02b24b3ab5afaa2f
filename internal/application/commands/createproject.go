package commands

import (
	"context"
	"fmt"

	"texmirror/internal/application"
	"texmirror/internal/domain"
)

// CreateProjectCommand builds the browser hand-off for creating a new
// remote project from a content snippet. No network call is made; the
// remote editor's import form does the actual creation.
type CreateProjectCommand struct {
	docsURL string
	Snippet domain.ProjectSnippet
}

// NewCreateProjectCommand creates a new CreateProjectCommand
func NewCreateProjectCommand(docsURL string, snippet domain.ProjectSnippet) *CreateProjectCommand {
	return &CreateProjectCommand{docsURL: docsURL, Snippet: snippet}
}

// CreateProjectResult contains the URL and form fields for the import
type CreateProjectResult struct {
	URL     string
	Message string
}

// Validate checks if the snippet can be turned into an import form
func (c *CreateProjectCommand) Validate() error {
	if err := application.ValidateRequired("content", c.Snippet.Content); err != nil {
		return err
	}
	return c.Snippet.Validate()
}

// Execute runs the create project command
func (c *CreateProjectCommand) Execute(ctx context.Context) (*CreateProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	url := c.Snippet.BrowserURL(c.docsURL)
	message := fmt.Sprintf(
		"To create the project, open this URL in your browser:\n\n%s\n\n"+
			"Or use the following form data to POST to %s:\n"+
			"- snip_uri: %s...\n"+
			"- engine: %s",
		url, c.docsURL, truncateRunes(c.Snippet.DataURI(), 100), c.Snippet.EngineOrDefault(),
	)

	return &CreateProjectResult{URL: url, Message: message}, nil
}
