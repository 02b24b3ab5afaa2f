package gitmirror

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathEscapeError reports a caller-supplied path that would land outside
// the mirror root. Such paths are always rejected, never corrected.
type PathEscapeError struct {
	Path string
}

func (e *PathEscapeError) Error() string {
	return fmt.Sprintf("path '%s' escapes repository root", e.Path)
}

// ResolveWithin resolves a caller-supplied relative path against root and
// guarantees the result stays inside it. Absolute inputs and inputs
// containing a ".." segment are rejected outright. Symlinks are resolved
// before the containment check, so a link pointing outside the root
// cannot smuggle a path through. Containment is segment-aware: a sibling
// directory that shares the root's name as a string prefix does not pass.
func ResolveWithin(root, rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("path is required")
	}
	if filepath.IsAbs(rel) || hasDotDot(rel) {
		return "", &PathEscapeError{Path: rel}
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}

	candidate := filepath.Join(rootResolved, filepath.FromSlash(rel))
	if !within(rootResolved, candidate) {
		return "", &PathEscapeError{Path: rel}
	}

	resolved, err := resolveExisting(candidate)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", rel, err)
	}
	if !within(rootResolved, resolved) {
		return "", &PathEscapeError{Path: rel}
	}

	return candidate, nil
}

func hasDotDot(rel string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// within reports whether p equals root or has root as a path-segment
// ancestor.
func within(root, p string) bool {
	return p == root || strings.HasPrefix(p, root+string(filepath.Separator))
}

// resolveExisting resolves symlinks over the longest existing prefix of p
// and re-joins the remainder that does not exist yet.
func resolveExisting(p string) (string, error) {
	remainder := ""
	cur := p
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(resolved, remainder), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return filepath.Join(cur, remainder), nil
		}
		remainder = filepath.Join(filepath.Base(cur), remainder)
		cur = parent
	}
}
