package ports

import "texmirror/internal/domain"

// IndexStats summarizes one index sync pass
type IndexStats struct {
	FilesScanned  int
	FilesIndexed  int
	FilesRemoved  int
	SectionsFound int
}

// SectionIndex provides cached, queryable access to the section structure
// of every mirrored document. The index is derivative: mirrors remain the
// source of truth and the index is rebuilt from them at will.
type SectionIndex interface {
	// Lifecycle
	Open(cacheRoot string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() (bool, error)
	SyncProject(projectID, root string) (*IndexStats, error)
	DropProject(projectID string) error

	// Queries
	SearchSections(query, projectID string, limit int) ([]domain.SectionHit, error)
	FileSections(projectID, path string) ([]domain.SectionHit, error)
}
