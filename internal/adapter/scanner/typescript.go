package scanner

import (
	"fmt"

	"feat/internal/domain"
)

// TypeScriptScanner claims TypeScript and JavaScript files so they are
// collected and counted, but cannot scan them yet.
type TypeScriptScanner struct{}

func NewTypeScriptScanner() *TypeScriptScanner {
	return &TypeScriptScanner{}
}

func (s *TypeScriptScanner) Language() domain.Language { return domain.LangTypeScript }

func (s *TypeScriptScanner) Extensions() []string {
	return []string{".ts", ".tsx", ".js", ".jsx"}
}

func (s *TypeScriptScanner) Scan(path, _ string) ([]domain.Item, error) {
	return nil, fmt.Errorf("%w: typescript (%s)", ErrNotSupported, path)
}
