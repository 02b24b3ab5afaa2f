package gitmirror

import (
	"fmt"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"texmirror/internal/domain"
	"texmirror/internal/ports"
)

// History returns the newest-first commit log of a mirror, optionally
// restricted to commits touching one path.
func (m *Manager) History(projectID string, opts ports.HistoryOptions) ([]domain.CommitInfo, error) {
	repo, err := m.openRepo(projectID)
	if err != nil {
		return nil, err
	}

	head, err := repo.ResolveRevision(plumbing.Revision("HEAD"))
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	logOpts := gogit.LogOptions{From: *head}
	if opts.Path != "" {
		p := opts.Path
		logOpts.PathFilter = func(name string) bool {
			return name == p || strings.HasPrefix(name, p+"/")
		}
	}

	iter, err := repo.Log(&logOpts)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	defer iter.Close()

	var commits []domain.CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, domain.CommitInfo{
			Hash:    c.Hash.String(),
			Author:  c.Author.Name,
			Email:   c.Author.Email,
			When:    c.Author.When,
			Message: strings.TrimRight(c.Message, "\n"),
		})
		if opts.Limit > 0 && len(commits) >= opts.Limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}
	return commits, nil
}

// Diff renders a unified diff between two revisions. An empty FromRef
// means HEAD. An empty ToRef compares FromRef against HEAD and appends
// the mirror's uncommitted changes, so "what changed since ref" includes
// edits that are not committed yet.
func (m *Manager) Diff(projectID string, opts ports.DiffOptions) (string, error) {
	repo, err := m.openRepo(projectID)
	if err != nil {
		return "", err
	}

	fromRef := opts.FromRef
	if fromRef == "" {
		fromRef = "HEAD"
	}
	from, err := resolveCommit(repo, fromRef)
	if err != nil {
		return "", err
	}

	toRef := opts.ToRef
	includeWorktree := toRef == ""
	if toRef == "" {
		toRef = "HEAD"
	}
	to, err := resolveCommit(repo, toRef)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if from.Hash != to.Hash {
		patch, err := diffCommits(from, to, opts.Path)
		if err != nil {
			return "", err
		}
		out.WriteString(patch)
	}

	if includeWorktree {
		block, err := worktreeStatusBlock(repo, opts.Path)
		if err != nil {
			return "", err
		}
		if block != "" {
			if out.Len() > 0 {
				out.WriteString("\n")
			}
			out.WriteString(block)
		}
	}
	return out.String(), nil
}

func resolveCommit(repo *gogit.Repository, ref string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", ref, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", hash, err)
	}
	return commit, nil
}

func diffCommits(from, to *object.Commit, path string) (string, error) {
	fromTree, err := from.Tree()
	if err != nil {
		return "", fmt.Errorf("tree %s: %w", from.Hash, err)
	}
	toTree, err := to.Tree()
	if err != nil {
		return "", fmt.Errorf("tree %s: %w", to.Hash, err)
	}

	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return "", fmt.Errorf("diff trees: %w", err)
	}
	if path != "" {
		kept := make(object.Changes, 0, len(changes))
		for _, ch := range changes {
			if changeMatches(ch, path) {
				kept = append(kept, ch)
			}
		}
		changes = kept
	}
	if len(changes) == 0 {
		return "", nil
	}

	patch, err := changes.Patch()
	if err != nil {
		return "", fmt.Errorf("render patch: %w", err)
	}
	return patch.String(), nil
}

func changeMatches(ch *object.Change, path string) bool {
	for _, name := range []string{ch.From.Name, ch.To.Name} {
		if name == path || strings.HasPrefix(name, path+"/") {
			return true
		}
	}
	return false
}

// worktreeStatusBlock summarizes uncommitted changes in porcelain-style
// two-letter status lines, or returns "" when the worktree is clean.
func worktreeStatusBlock(repo *gogit.Repository, path string) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}

	var lines []string
	for file, fs := range status {
		if path != "" && file != path && !strings.HasPrefix(file, path+"/") {
			continue
		}
		lines = append(lines, fmt.Sprintf("%c%c %s", fs.Staging, fs.Worktree, file))
	}
	if len(lines) == 0 {
		return "", nil
	}
	sort.Strings(lines)
	return "Uncommitted changes:\n" + strings.Join(lines, "\n") + "\n", nil
}
