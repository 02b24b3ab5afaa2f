package ports

import "texmirror/internal/domain"

// ProjectRegistry resolves logical project names to remote identities.
// Lookup with an empty name falls back to the configured default, or to
// the sole configured project when only one exists.
type ProjectRegistry interface {
	Lookup(name string) (domain.Project, error)
	List() []domain.Project
	DefaultKey() string
}
