package gitmirror

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"texmirror/internal/domain"
)

// DefaultTimeout bounds every clone, pull and push
const DefaultTimeout = 60 * time.Second

// RemoteError wraps a clone/pull/push failure. Timeout marks failures
// worth retrying, as opposed to hard remote rejections.
type RemoteError struct {
	Op      string
	Err     error
	Timeout bool
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Options configures a Manager
type Options struct {
	Root        string        // cache root holding one mirror directory per project id
	GitHost     string        // host mirrors clone from
	AuthorName  string        // commit identity applied to mirrors that have none
	AuthorEmail string
	Timeout     time.Duration // bound on clone/pull/push; zero means DefaultTimeout
	Logger      *log.Logger   // nil means log.Default()
}

// Manager owns the on-disk clones of remote projects. It implements
// ports.MirrorManager and ports.ProjectLocker. Mirror directories are
// keyed by remote project id, so renaming a project's logical name never
// forces a re-clone.
type Manager struct {
	root        string
	gitHost     string
	authorName  string
	authorEmail string
	timeout     time.Duration
	logger      *log.Logger
	locks       *projectLocks

	// cloneURL builds the remote address for a project; swappable so
	// tests can point mirrors at local fixture repositories.
	cloneURL func(domain.Project) string
}

// New creates a Manager rooted at opts.Root
func New(opts Options) *Manager {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := &Manager{
		root:        opts.Root,
		gitHost:     opts.GitHost,
		authorName:  opts.AuthorName,
		authorEmail: opts.AuthorEmail,
		timeout:     opts.Timeout,
		logger:      opts.Logger,
		locks:       newProjectLocks(),
	}
	m.cloneURL = func(p domain.Project) string { return p.GitURL(m.gitHost) }
	return m
}

// Dir returns the mirror directory for a project id
func (m *Manager) Dir(projectID string) string {
	return filepath.Join(m.root, projectID)
}

// Exists reports whether a mirror directory is present on disk
func (m *Manager) Exists(projectID string) bool {
	_, err := os.Stat(m.Dir(projectID))
	return err == nil
}

// Ensure makes sure the project's mirror exists and is as fresh as the
// remote allows: absent mirrors are cloned, existing ones are pulled.
// A failed pull is logged and downgraded to a stale-continue outcome so
// a transient network failure never blocks work on previously fetched
// content; callers may rely on existence, not freshness.
func (m *Manager) Ensure(ctx context.Context, project domain.Project) (domain.Mirror, error) {
	dir := m.Dir(project.RemoteID)

	if !m.Exists(project.RemoteID) {
		if err := m.clone(ctx, project, dir); err != nil {
			return domain.Mirror{}, err
		}
		return domain.Mirror{ProjectID: project.RemoteID, Root: dir, Freshness: domain.MirrorCloned}, nil
	}

	repo, err := m.openRepo(project.RemoteID)
	if err != nil {
		return domain.Mirror{}, err
	}

	if err := m.pull(ctx, repo); err != nil {
		m.logger.Printf("pull failed for %s, serving existing mirror: %v", project.RemoteID, err)
		return domain.Mirror{ProjectID: project.RemoteID, Root: dir, Freshness: domain.MirrorStale}, nil
	}
	return domain.Mirror{ProjectID: project.RemoteID, Root: dir, Freshness: domain.MirrorRefreshed}, nil
}

// Sync explicitly refreshes a mirror. Unlike Ensure it never swallows a
// pull failure, and it refuses to pull over uncommitted local changes.
func (m *Manager) Sync(ctx context.Context, project domain.Project) (domain.SyncState, error) {
	dir := m.Dir(project.RemoteID)

	if !m.Exists(project.RemoteID) {
		if err := m.clone(ctx, project, dir); err != nil {
			return 0, err
		}
		return domain.SyncCloned, nil
	}

	dirty, err := m.IsDirty(project.RemoteID)
	if err != nil {
		return 0, err
	}
	if dirty {
		return domain.SyncDirty, nil
	}

	repo, err := m.openRepo(project.RemoteID)
	if err != nil {
		return 0, err
	}
	if err := m.pull(ctx, repo); err != nil {
		return 0, err
	}
	return domain.SyncPulled, nil
}

// IsDirty reports whether the mirror has uncommitted local modifications
func (m *Manager) IsDirty(projectID string) (bool, error) {
	repo, err := m.openRepo(projectID)
	if err != nil {
		return false, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("status: %w", err)
	}
	return !status.IsClean(), nil
}

// StageCommitPush stages exactly one path, commits it, and optionally
// pushes. A push failure never rolls the commit back: the receipt comes
// back with Pushed false and the cause in PushErr, and the returned error
// stays nil.
func (m *Manager) StageCommitPush(ctx context.Context, projectID, relPath, message string, push bool) (domain.CommitReceipt, error) {
	repo, err := m.openRepo(projectID)
	if err != nil {
		return domain.CommitReceipt{}, err
	}

	name, email, err := m.ensureIdentity(repo)
	if err != nil {
		return domain.CommitReceipt{}, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return domain.CommitReceipt{}, fmt.Errorf("worktree: %w", err)
	}

	staged := path.Clean(filepath.ToSlash(relPath))
	if _, err := wt.Add(staged); err != nil {
		return domain.CommitReceipt{}, fmt.Errorf("stage %s: %w", staged, err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: name, Email: email, When: time.Now()},
	})
	if err != nil {
		return domain.CommitReceipt{}, fmt.Errorf("commit: %w", err)
	}

	receipt := domain.CommitReceipt{Hash: hash.String(), Message: message}
	if push {
		if err := m.push(ctx, repo); err != nil {
			receipt.PushErr = err
		} else {
			receipt.Pushed = true
		}
	}
	return receipt, nil
}

func (m *Manager) clone(ctx context.Context, project domain.Project, dir string) error {
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return fmt.Errorf("create cache root: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := gogit.PlainCloneContext(cctx, dir, false, &gogit.CloneOptions{
		URL: m.cloneURL(project),
	})
	if err != nil {
		// a half-written clone would satisfy later existence checks
		os.RemoveAll(dir)
		return m.remoteErr("clone", err)
	}
	return nil
}

func (m *Manager) pull(ctx context.Context, repo *gogit.Repository) error {
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err = wt.PullContext(pctx, &gogit.PullOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return m.remoteErr("pull", err)
	}
	return nil
}

func (m *Manager) push(ctx context.Context, repo *gogit.Repository) error {
	pctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := repo.PushContext(pctx, &gogit.PushOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return m.remoteErr("push", err)
	}
	return nil
}

func (m *Manager) openRepo(projectID string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpen(m.Dir(projectID))
	if err != nil {
		return nil, fmt.Errorf("open mirror %s: %w", projectID, err)
	}
	return repo, nil
}

// ensureIdentity makes sure the mirror has a commit author configured,
// setting the manager's defaults when it has none, and returns the
// effective identity. Idempotent; runs before every commit.
func (m *Manager) ensureIdentity(repo *gogit.Repository) (string, string, error) {
	cfg, err := repo.Config()
	if err != nil {
		return "", "", fmt.Errorf("read repo config: %w", err)
	}
	if cfg.User.Name == "" {
		cfg.User.Name = m.authorName
		cfg.User.Email = m.authorEmail
		if err := repo.SetConfig(cfg); err != nil {
			return "", "", fmt.Errorf("write repo config: %w", err)
		}
	}
	return cfg.User.Name, cfg.User.Email, nil
}

func (m *Manager) remoteErr(op string, err error) *RemoteError {
	return &RemoteError{
		Op:      op,
		Err:     err,
		Timeout: errors.Is(err, context.DeadlineExceeded),
	}
}
