package commands

import (
	"context"
	"fmt"

	"texmirror/internal/domain"
	"texmirror/internal/ports"
)

// Deps bundles the ports every project command runs through
type Deps struct {
	Registry ports.ProjectRegistry
	Mirrors  ports.MirrorManager
	Locks    ports.ProjectLocker
	Index    ports.SectionIndex
}

// withRead resolves the project, refreshes its mirror, then runs fn under
// the project's read lock. The refresh holds the write lock on its own:
// a pull rewrites the worktree, so it can never overlap other readers.
func (d Deps) withRead(ctx context.Context, projectName string, fn func(domain.Project, domain.Mirror) error) error {
	project, err := d.Registry.Lookup(projectName)
	if err != nil {
		return err
	}

	var mirror domain.Mirror
	if err := d.Locks.WithWrite(project.RemoteID, func() error {
		var err error
		mirror, err = d.Mirrors.Ensure(ctx, project)
		return err
	}); err != nil {
		return err
	}

	return d.Locks.WithRead(project.RemoteID, func() error {
		return fn(project, mirror)
	})
}

// withWrite resolves the project and runs the whole ensure, mutate,
// commit, push sequence under the project's write lock.
func (d Deps) withWrite(ctx context.Context, projectName string, fn func(domain.Project, domain.Mirror) error) error {
	project, err := d.Registry.Lookup(projectName)
	if err != nil {
		return err
	}

	return d.Locks.WithWrite(project.RemoteID, func() error {
		mirror, err := d.Mirrors.Ensure(ctx, project)
		if err != nil {
			return err
		}
		return fn(project, mirror)
	})
}

// pushFailedNote renders the committed-but-unpushed outcome appended to
// mutation messages.
func pushFailedNote(err error) string {
	return fmt.Sprintf("(committed, but push failed: %v). Run sync_project to push the commit.", err)
}

// truncateRunes shortens s to at most n runes
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
