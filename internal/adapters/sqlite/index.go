package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"texmirror/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Index implements ports.SectionIndex using SQLite. The database lives
// inside the mirror cache root, next to the clones it is derived from.
type Index struct {
	db        *sql.DB
	cacheRoot string
	dbPath    string
}

// Ensure Index implements SectionIndex
var _ ports.SectionIndex = (*Index)(nil)

// NewIndex creates a new SQLite section index
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index database under the given cache root. A
// stale schema or a cache root mismatch wipes the indexed data; it is
// rebuilt lazily by the next SyncProject.
func (idx *Index) Open(cacheRoot string) error {
	abs, err := filepath.Abs(cacheRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve cache root: %w", err)
	}
	idx.cacheRoot = abs
	idx.dbPath = filepath.Join(abs, "index.db")

	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite3", idx.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id TEXT NOT NULL,
			path TEXT NOT NULL,
			mtime INTEGER NOT NULL,
			size INTEGER NOT NULL,
			UNIQUE (project_id, path)
		);
		CREATE TABLE IF NOT EXISTS sections (
			file_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			starred INTEGER NOT NULL,
			title TEXT NOT NULL,
			preview TEXT NOT NULL,
			start INTEGER NOT NULL,
			header_end INTEGER NOT NULL,
			content_end INTEGER NOT NULL,
			PRIMARY KEY (file_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_files_project ON files(project_id);
		CREATE INDEX IF NOT EXISTS idx_sections_title ON sections(title);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	rebuild, err := idx.NeedsFullRebuild()
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to check index metadata: %w", err)
	}
	if rebuild {
		if _, err := db.Exec(`DELETE FROM sections; DELETE FROM files;`); err != nil {
			db.Close()
			return fmt.Errorf("failed to reset index: %w", err)
		}
	}

	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update index metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsFullRebuild reports whether the stored data predates the current
// schema or belongs to a different cache root.
func (idx *Index) NeedsFullRebuild() (bool, error) {
	var version, rootHash string

	err := idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	err = idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'cache_root_hash'`).Scan(&rootHash)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}

	return version != schemaVersion || rootHash != hashCacheRoot(idx.cacheRoot), nil
}

// updateMeta stores the schema version and cache root hash
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('cache_root_hash', ?);
	`, schemaVersion, hashCacheRoot(idx.cacheRoot))
	return err
}

// hashCacheRoot returns a short hash of the cache root path
func hashCacheRoot(root string) string {
	h := sha256.Sum256([]byte(root))
	return hex.EncodeToString(h[:8])
}
