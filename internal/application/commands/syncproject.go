package commands

import (
	"context"
	"fmt"

	"texmirror/internal/domain"
)

// SyncProjectCommand pulls the latest remote state into a project's
// mirror. A dirty mirror is never pulled over.
type SyncProjectCommand struct {
	deps    Deps
	Project string
}

// NewSyncProjectCommand creates a new SyncProjectCommand
func NewSyncProjectCommand(deps Deps, project string) *SyncProjectCommand {
	return &SyncProjectCommand{deps: deps, Project: project}
}

// SyncProjectResult contains the sync outcome
type SyncProjectResult struct {
	ProjectName string
	State       domain.SyncState
	Message     string
}

// Execute runs the sync project command
func (c *SyncProjectCommand) Execute(ctx context.Context) (*SyncProjectResult, error) {
	project, err := c.deps.Registry.Lookup(c.Project)
	if err != nil {
		return nil, err
	}

	result := &SyncProjectResult{ProjectName: project.Name}

	err = c.deps.Locks.WithWrite(project.RemoteID, func() error {
		state, err := c.deps.Mirrors.Sync(ctx, project)
		if err != nil {
			return err
		}
		result.State = state
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch result.State {
	case domain.SyncCloned:
		result.Message = fmt.Sprintf("Cloned project '%s'", project.Name)
	case domain.SyncDirty:
		result.Message = "Warning: Local changes exist. Commit or discard them before syncing."
	default:
		result.Message = fmt.Sprintf("Synced project '%s' with Overleaf", project.Name)
	}

	return result, nil
}
