package ports

import (
	"context"

	"texmirror/internal/domain"
)

// HistoryOptions narrows a history query
type HistoryOptions struct {
	Limit int    // maximum commits returned
	Path  string // optional path filter, relative to the mirror root
}

// DiffOptions selects the refs and paths a diff covers
type DiffOptions struct {
	FromRef string // starting ref; commands default it to HEAD
	ToRef   string // optional ending ref; empty means HEAD plus worktree state
	Path    string // optional path filter
}

// MirrorManager owns the local clones of remote projects and every
// operation that touches their working trees or git state.
type MirrorManager interface {
	// Lifecycle
	Ensure(ctx context.Context, project domain.Project) (domain.Mirror, error)
	Sync(ctx context.Context, project domain.Project) (domain.SyncState, error)
	IsDirty(projectID string) (bool, error)

	// Working tree
	Dir(projectID string) string
	ResolvePath(projectID, path string) (string, error)
	FileExists(projectID, path string) (bool, error)
	ListFiles(projectID, extension string) ([]string, error)
	ReadFile(projectID, path string) (string, error)
	WriteFile(projectID, path, content string) error
	RemoveFile(projectID, path string) error

	// Versioning
	StageCommitPush(ctx context.Context, projectID, path, message string, push bool) (domain.CommitReceipt, error)
	History(projectID string, opts HistoryOptions) ([]domain.CommitInfo, error)
	Diff(projectID string, opts DiffOptions) (string, error)
}

// ProjectLocker serializes mirror access per project: writers are
// exclusive, readers may overlap each other but never a writer. Locks on
// different projects are independent.
type ProjectLocker interface {
	WithRead(projectID string, fn func() error) error
	WithWrite(projectID string, fn func() error) error
}
