package sqlite

import (
	"strings"

	"texmirror/internal/domain"
)

// SearchSections matches section titles and previews, case-insensitively,
// optionally scoped to one project. Results come back in project, path,
// document order.
func (idx *Index) SearchSections(query, projectID string, limit int) ([]domain.SectionHit, error) {
	pattern := "%" + escapeLike(query) + "%"

	q := `
		SELECT f.project_id, f.path, s.kind, s.title, s.preview
		FROM sections s
		JOIN files f ON f.id = s.file_id
		WHERE (s.title LIKE ? ESCAPE '\' OR s.preview LIKE ? ESCAPE '\')`
	args := []interface{}{pattern, pattern}

	if projectID != "" {
		q += ` AND f.project_id = ?`
		args = append(args, projectID)
	}
	q += ` ORDER BY f.project_id, f.path, s.seq LIMIT ?`
	args = append(args, limit)

	return idx.queryHits(q, args...)
}

// FileSections returns the indexed sections of one document in order
func (idx *Index) FileSections(projectID, path string) ([]domain.SectionHit, error) {
	return idx.queryHits(`
		SELECT f.project_id, f.path, s.kind, s.title, s.preview
		FROM sections s
		JOIN files f ON f.id = s.file_id
		WHERE f.project_id = ? AND f.path = ?
		ORDER BY s.seq
	`, projectID, path)
}

func (idx *Index) queryHits(query string, args ...interface{}) ([]domain.SectionHit, error) {
	rows, err := idx.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []domain.SectionHit
	for rows.Next() {
		var h domain.SectionHit
		if err := rows.Scan(&h.ProjectID, &h.Path, &h.Kind, &h.Title, &h.Preview); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// escapeLike escapes LIKE wildcards in user input
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
