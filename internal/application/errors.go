package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FileExistsError reports a create aimed at a path that already holds a
// file. Creates never overwrite; the message points the caller at the
// edit operation instead.
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("File '%s' already exists. Use edit_file to modify it.", e.Path)
}

func (e *FileExistsError) Is(target error) bool {
	return target == ErrConflict
}

// FileNotFoundError reports an operation aimed at a path with no file
// behind it. Hint, when set, names the verb that would succeed.
type FileNotFoundError struct {
	Path string
	Hint string
}

func (e *FileNotFoundError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("File '%s' not found. %s", e.Path, e.Hint)
	}
	return fmt.Sprintf("File '%s' not found", e.Path)
}

func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
