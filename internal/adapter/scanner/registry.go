// Package scanner holds the line-oriented source scanners, one per language.
package scanner

import (
	"errors"
	"path/filepath"
	"strings"

	"feat/internal/domain"
	"feat/internal/port"
)

// ErrNotSupported is returned by scanners that have no implementation for
// their language yet.
var ErrNotSupported = errors.New("scanner not implemented for language")

// Registry maps language tags to scanners, remembering registration order.
type Registry struct {
	scanners map[domain.Language]port.Scanner
	order    []domain.Language
}

// NewRegistry returns a registry with every built-in scanner.
func NewRegistry() *Registry {
	r := &Registry{scanners: make(map[domain.Language]port.Scanner)}
	r.Register(NewRustScanner())
	r.Register(NewPythonScanner())
	r.Register(NewTypeScriptScanner())
	return r
}

// Register adds s, replacing any scanner already registered for its language.
func (r *Registry) Register(s port.Scanner) {
	lang := s.Language()
	if _, exists := r.scanners[lang]; !exists {
		r.order = append(r.order, lang)
	}
	r.scanners[lang] = s
}

func (r *Registry) Get(lang domain.Language) (port.Scanner, bool) {
	s, ok := r.scanners[lang]
	return s, ok
}

// Languages returns the registered tags in registration order.
func (r *Registry) Languages() []domain.Language {
	return append([]domain.Language(nil), r.order...)
}

// Extensions returns the extensions handled by the scanners of langs, in
// order and without duplicates. Unknown languages are ignored.
func (r *Registry) Extensions(langs []domain.Language) []string {
	seen := make(map[string]bool)
	var exts []string
	for _, lang := range langs {
		s, ok := r.scanners[lang]
		if !ok {
			continue
		}
		for _, ext := range s.Extensions() {
			if !seen[ext] {
				seen[ext] = true
				exts = append(exts, ext)
			}
		}
	}
	return exts
}

// LanguageFor returns the first registered language whose scanner handles
// the extension of path.
func (r *Registry) LanguageFor(path string) (domain.Language, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", false
	}
	for _, lang := range r.order {
		for _, e := range r.scanners[lang].Extensions() {
			if e == ext {
				return lang, true
			}
		}
	}
	return "", false
}

// splitLines splits content into lines, dropping a trailing "\r" so files
// with CRLF endings scan like LF files.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
