package scanner

import (
	"regexp"
	"strings"

	"feat/internal/domain"
)

var (
	pyClass    = regexp.MustCompile(`^\s*class\s+([A-Za-z0-9_]+)`)
	pyAsyncDef = regexp.MustCompile(`^\s*async\s+def\s+([A-Za-z0-9_]+)`)
	pyDef      = regexp.MustCompile(`^\s*def\s+([A-Za-z0-9_]+)`)
)

// PythonScanner finds classes and functions. Names with a leading
// underscore are private by convention and skipped.
type PythonScanner struct{}

func NewPythonScanner() *PythonScanner {
	return &PythonScanner{}
}

func (s *PythonScanner) Language() domain.Language { return domain.LangPython }

func (s *PythonScanner) Extensions() []string { return []string{".py"} }

func (s *PythonScanner) Scan(path, content string) ([]domain.Item, error) {
	patterns := []struct {
		kind domain.ItemKind
		re   *regexp.Regexp
	}{
		{domain.KindClass, pyClass},
		{domain.KindAsyncFunction, pyAsyncDef},
		{domain.KindFunction, pyDef},
	}

	var items []domain.Item
	for i, line := range splitLines(content) {
		for _, p := range patterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if name := m[1]; !strings.HasPrefix(name, "_") {
				items = append(items, domain.Item{
					Kind:     p.kind,
					Name:     name,
					Path:     path,
					Line:     i + 1,
					Language: domain.LangPython,
				})
			}
			break
		}
	}
	return items, nil
}
