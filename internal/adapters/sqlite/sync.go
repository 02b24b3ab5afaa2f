package sqlite

import (
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"texmirror/internal/domain"
	"texmirror/internal/ports"
)

// indexedFile is one row of the files table
type indexedFile struct {
	id    int64
	mtime int64
	size  int64
}

// SyncProject reconciles the indexed sections of one project with its
// mirror on disk. Files whose mtime and size are unchanged are skipped;
// new and modified .tex files are reparsed, vanished files are dropped.
func (idx *Index) SyncProject(projectID, root string) (*ports.IndexStats, error) {
	stats := &ports.IndexStats{}

	existing, err := idx.projectFiles(projectID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".tex") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		seen[rel] = true
		stats.FilesScanned++

		info, err := d.Info()
		if err != nil {
			return nil
		}
		mtime := info.ModTime().Unix()
		size := info.Size()

		if prev, ok := existing[rel]; ok && prev.mtime == mtime && prev.size == size {
			return nil
		}

		if err := idx.reindexFile(projectID, rel, path, mtime, size); err != nil {
			return nil // leave the stale rows, retry next sync
		}
		stats.FilesIndexed++

		return nil
	})
	if err != nil {
		return stats, err
	}

	for rel, f := range existing {
		if !seen[rel] {
			idx.db.Exec(`DELETE FROM sections WHERE file_id = ?`, f.id)
			idx.db.Exec(`DELETE FROM files WHERE id = ?`, f.id)
			stats.FilesRemoved++
		}
	}

	idx.db.QueryRow(`
		SELECT COUNT(*) FROM sections s
		JOIN files f ON f.id = s.file_id
		WHERE f.project_id = ?
	`, projectID).Scan(&stats.SectionsFound)

	return stats, nil
}

// DropProject removes every indexed file and section of a project
func (idx *Index) DropProject(projectID string) error {
	if _, err := idx.db.Exec(`
		DELETE FROM sections WHERE file_id IN (SELECT id FROM files WHERE project_id = ?)
	`, projectID); err != nil {
		return err
	}
	_, err := idx.db.Exec(`DELETE FROM files WHERE project_id = ?`, projectID)
	return err
}

// projectFiles loads the indexed file rows of one project keyed by path
func (idx *Index) projectFiles(projectID string) (map[string]indexedFile, error) {
	rows, err := idx.db.Query(`SELECT id, path, mtime, size FROM files WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make(map[string]indexedFile)
	for rows.Next() {
		var f indexedFile
		var path string
		if err := rows.Scan(&f.id, &path, &f.mtime, &f.size); err != nil {
			return nil, err
		}
		files[path] = f
	}
	return files, rows.Err()
}

// reindexFile reparses one document and replaces its section rows
func (idx *Index) reindexFile(projectID, rel, fullPath string, mtime, size int64) error {
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return err
	}
	sections := domain.ParseSections(string(content))

	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var fileID int64
	err = tx.QueryRow(`SELECT id FROM files WHERE project_id = ? AND path = ?`, projectID, rel).Scan(&fileID)
	switch {
	case err == nil:
		if _, err := tx.Exec(`UPDATE files SET mtime = ?, size = ? WHERE id = ?`, mtime, size, fileID); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM sections WHERE file_id = ?`, fileID); err != nil {
			return err
		}
	case err == sql.ErrNoRows:
		res, err := tx.Exec(`INSERT INTO files (project_id, path, mtime, size) VALUES (?, ?, ?, ?)`,
			projectID, rel, mtime, size)
		if err != nil {
			return err
		}
		fileID, err = res.LastInsertId()
		if err != nil {
			return err
		}
	default:
		return err
	}

	for i, s := range sections {
		_, err := tx.Exec(`
			INSERT INTO sections (file_id, seq, kind, starred, title, preview, start, header_end, content_end)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, fileID, i, s.Kind.String(), boolToInt(s.Starred), s.Title, s.Preview, s.Start, s.HeaderEnd, s.ContentEnd)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
