package gitmirror

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolvePath maps a project-relative path to an absolute location
// inside the project's mirror, rejecting anything that would land
// outside it.
func (m *Manager) ResolvePath(projectID, relPath string) (string, error) {
	return ResolveWithin(m.Dir(projectID), relPath)
}

// FileExists reports whether a project-relative path names a regular file
func (m *Manager) FileExists(projectID, relPath string) (bool, error) {
	abs, err := m.ResolvePath(projectID, relPath)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", relPath, err)
	}
	return info.Mode().IsRegular(), nil
}

// ListFiles returns the project-relative paths of all files under the
// mirror, sorted. Dotted files and directories (.git above all) stay
// hidden. A non-empty extension such as ".tex" restricts the listing.
func (m *Manager) ListFiles(projectID, extension string) ([]string, error) {
	root := m.Dir(projectID)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if extension != "" && filepath.Ext(d.Name()) != extension {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk mirror: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile returns the content of a project-relative file
func (m *Manager) ReadFile(projectID, relPath string) (string, error) {
	abs, err := m.ResolvePath(projectID, relPath)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	return string(content), nil
}

// WriteFile writes content to a project-relative path, creating parent
// directories as needed.
func (m *Manager) WriteFile(projectID, relPath, content string) error {
	abs, err := m.ResolvePath(projectID, relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	return nil
}

// RemoveFile deletes a project-relative file from the mirror worktree.
// The deletion still has to be staged and committed to reach the remote.
func (m *Manager) RemoveFile(projectID, relPath string) error {
	abs, err := m.ResolvePath(projectID, relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("failed to remove %s: %w", relPath, err)
	}
	return nil
}
