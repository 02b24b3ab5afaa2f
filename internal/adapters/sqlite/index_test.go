package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex()
	if err := idx.Open(t.TempDir()); err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	t.Cleanup(func() {
		if err := idx.Close(); err != nil {
			t.Errorf("failed to close index: %v", err)
		}
	})
	return idx
}

func writeMirrorFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestSyncProject_IndexesSections(t *testing.T) {
	idx := openTestIndex(t)
	root := t.TempDir()
	writeMirrorFile(t, root, "main.tex", "\\section{Introduction}\nWe study mirrors.\n\\section{Methods}\nGit plumbing.\n")
	writeMirrorFile(t, root, "chapters/ch1.tex", "\\chapter{Background}\nHistory of collaborative editing.\n")
	writeMirrorFile(t, root, "refs.bib", "@article{smith2020}")

	stats, err := idx.SyncProject("abc123", root)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if stats.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, expected 2 (.bib excluded)", stats.FilesScanned)
	}
	if stats.FilesIndexed != 2 {
		t.Errorf("FilesIndexed = %d, expected 2", stats.FilesIndexed)
	}
	if stats.SectionsFound != 3 {
		t.Errorf("SectionsFound = %d, expected 3", stats.SectionsFound)
	}

	hits, err := idx.FileSections("abc123", "main.tex")
	if err != nil {
		t.Fatalf("file sections failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(hits))
	}
	if hits[0].Title != "Introduction" || hits[0].Kind != "section" {
		t.Errorf("first hit = %+v, expected Introduction section", hits[0])
	}
	if hits[1].Title != "Methods" {
		t.Errorf("second hit = %+v, expected Methods", hits[1])
	}
}

func TestSyncProject_SkipsUnchangedFiles(t *testing.T) {
	idx := openTestIndex(t)
	root := t.TempDir()
	writeMirrorFile(t, root, "main.tex", "\\section{One}\nbody\n")

	if _, err := idx.SyncProject("abc123", root); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	stats, err := idx.SyncProject("abc123", root)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if stats.FilesIndexed != 0 {
		t.Errorf("FilesIndexed = %d, expected 0 on unchanged mirror", stats.FilesIndexed)
	}
	if stats.SectionsFound != 1 {
		t.Errorf("SectionsFound = %d, expected existing section counted", stats.SectionsFound)
	}
}

func TestSyncProject_ReindexesModifiedFiles(t *testing.T) {
	idx := openTestIndex(t)
	root := t.TempDir()
	path := writeMirrorFile(t, root, "main.tex", "\\section{One}\nbody\n")

	if _, err := idx.SyncProject("abc123", root); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	writeMirrorFile(t, root, "main.tex", "\\section{One}\nbody\n\\section{Two}\nmore\n")
	// mtime granularity can hide same-second rewrites; force it forward
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("failed to bump mtime: %v", err)
	}

	stats, err := idx.SyncProject("abc123", root)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if stats.FilesIndexed != 1 {
		t.Errorf("FilesIndexed = %d, expected modified file reindexed", stats.FilesIndexed)
	}

	hits, err := idx.FileSections("abc123", "main.tex")
	if err != nil {
		t.Fatalf("file sections failed: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("expected 2 sections after reindex, got %d", len(hits))
	}
}

func TestSyncProject_DropsVanishedFiles(t *testing.T) {
	idx := openTestIndex(t)
	root := t.TempDir()
	path := writeMirrorFile(t, root, "old.tex", "\\section{Gone}\nbody\n")

	if _, err := idx.SyncProject("abc123", root); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove fixture: %v", err)
	}

	stats, err := idx.SyncProject("abc123", root)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if stats.FilesRemoved != 1 {
		t.Errorf("FilesRemoved = %d, expected 1", stats.FilesRemoved)
	}

	hits, err := idx.SearchSections("Gone", "abc123", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits for dropped file, got %v", hits)
	}
}

func TestSyncProject_SkipsDotDirectories(t *testing.T) {
	idx := openTestIndex(t)
	root := t.TempDir()
	writeMirrorFile(t, root, "main.tex", "\\section{Kept}\nbody\n")
	writeMirrorFile(t, root, ".git/objects/fake.tex", "\\section{Hidden}\nbody\n")

	if _, err := idx.SyncProject("abc123", root); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	hits, err := idx.SearchSections("Hidden", "", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("indexed a file under .git: %v", hits)
	}
}

func TestSearchSections_MatchesTitleAndPreview(t *testing.T) {
	idx := openTestIndex(t)
	root := t.TempDir()
	writeMirrorFile(t, root, "main.tex",
		"\\section{Introduction}\nThis work studies convergence.\n\\section{Results}\nThe gradient vanishes.\n")

	if _, err := idx.SyncProject("abc123", root); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	t.Run("title match is case-insensitive", func(t *testing.T) {
		hits, err := idx.SearchSections("introduction", "", 10)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(hits) != 1 || hits[0].Title != "Introduction" {
			t.Errorf("hits = %v, expected Introduction", hits)
		}
	})

	t.Run("preview text matches", func(t *testing.T) {
		hits, err := idx.SearchSections("gradient", "", 10)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(hits) != 1 || hits[0].Title != "Results" {
			t.Errorf("hits = %v, expected Results via preview", hits)
		}
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		hits, err := idx.SearchSections("%", "", 10)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("bare %% matched %d sections, expected none", len(hits))
		}
	})

	t.Run("limit respected", func(t *testing.T) {
		hits, err := idx.SearchSections("e", "", 1)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(hits) != 1 {
			t.Errorf("expected exactly 1 hit with limit 1, got %d", len(hits))
		}
	})
}

func TestSearchSections_ProjectScope(t *testing.T) {
	idx := openTestIndex(t)

	rootA := t.TempDir()
	writeMirrorFile(t, rootA, "a.tex", "\\section{Shared Topic}\nfrom project A\n")
	rootB := t.TempDir()
	writeMirrorFile(t, rootB, "b.tex", "\\section{Shared Topic}\nfrom project B\n")

	if _, err := idx.SyncProject("projA", rootA); err != nil {
		t.Fatalf("sync A failed: %v", err)
	}
	if _, err := idx.SyncProject("projB", rootB); err != nil {
		t.Fatalf("sync B failed: %v", err)
	}

	all, err := idx.SearchSections("Shared", "", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 hits across projects, got %d", len(all))
	}

	scoped, err := idx.SearchSections("Shared", "projB", 10)
	if err != nil {
		t.Fatalf("scoped search failed: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ProjectID != "projB" || scoped[0].Path != "b.tex" {
		t.Errorf("scoped hits = %v, expected only projB", scoped)
	}
}

func TestDropProject(t *testing.T) {
	idx := openTestIndex(t)
	root := t.TempDir()
	writeMirrorFile(t, root, "main.tex", "\\section{One}\nbody\n")

	if _, err := idx.SyncProject("abc123", root); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if err := idx.DropProject("abc123"); err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	hits, err := idx.SearchSections("One", "", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected empty index after drop, got %v", hits)
	}
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	cache := t.TempDir()
	root := t.TempDir()
	writeMirrorFile(t, root, "main.tex", "\\section{Persistent}\nbody\n")

	idx := NewIndex()
	if err := idx.Open(cache); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := idx.SyncProject("abc123", root); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened := NewIndex()
	if err := reopened.Open(cache); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	rebuild, err := reopened.NeedsFullRebuild()
	if err != nil {
		t.Fatalf("rebuild check failed: %v", err)
	}
	if rebuild {
		t.Error("matching schema and cache root should not require a rebuild")
	}

	hits, err := reopened.SearchSections("Persistent", "", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected data to survive reopen, got %v", hits)
	}
}
