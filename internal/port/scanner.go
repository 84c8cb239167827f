package port

import "feat/internal/domain"

// Scanner extracts public API items from the text of one source file.
type Scanner interface {
	// Language returns the tag the scanner is registered under.
	Language() domain.Language

	// Extensions returns the file extensions handled, with leading dots.
	Extensions() []string

	// Scan returns the items declared in content, in line order.
	// path is recorded on the items and never opened.
	Scan(path, content string) ([]domain.Item, error)
}
