// Package repo locates the repository a command operates on.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Markers are the entries whose presence identifies a repository root.
var Markers = []string{".git", "Cargo.toml", "package.json", "pyproject.toml", "go.mod"}

// Context is the explicit repository context handed to every component.
type Context struct {
	// Root is the absolute repository root.
	Root string
	// Detected is false when no marker was found and Root fell back to the
	// starting directory.
	Detected bool
}

// New returns a context rooted at root without detection.
func New(root string) (Context, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Context{}, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	return Context{Root: abs, Detected: true}, nil
}

// Detect walks up from start looking for a directory containing one of
// Markers. When none is found the context falls back to start.
func Detect(start string) (Context, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return Context{}, fmt.Errorf("failed to resolve start path: %w", err)
	}

	cur := abs
	for {
		for _, marker := range Markers {
			_, err := os.Stat(filepath.Join(cur, marker))
			if err == nil {
				return Context{Root: cur, Detected: true}, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return Context{}, fmt.Errorf("stat %s: %w", filepath.Join(cur, marker), err)
			}
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	return Context{Root: abs, Detected: false}, nil
}

// Abs resolves a repository-relative path. Absolute paths are returned
// cleaned but otherwise unchanged.
func (c Context) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.Root, filepath.FromSlash(path))
}

// Rel returns path relative to the root with forward slashes.
func (c Context) Rel(path string) string {
	rel, err := filepath.Rel(c.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
