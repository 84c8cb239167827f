package usecase

import (
	"path"
	"path/filepath"
	"strings"

	"feat/config"
	"feat/internal/adapter/fs"
	"feat/internal/repo"
)

const stubSuffix = ".stub.md"

// fallbackDocDirs are probed after the configured docs root.
var fallbackDocDirs = []string{"docs/features", "docs/tech/features", "docs"}

// Locator finds the documentation file of a feature.
type Locator struct {
	repo repo.Context
	cfg  *config.Config
}

func NewLocator(rc repo.Context, cfg *config.Config) *Locator {
	return &Locator{repo: rc, cfg: cfg}
}

// FileName expands the doc pattern for feature.
func (l *Locator) FileName(feature string) string {
	name := strings.ReplaceAll(l.cfg.DocPattern, config.FeatureToken, strings.ToUpper(feature))
	name = strings.ReplaceAll(name, config.LowerFeatureToken, strings.ToLower(feature))
	return strings.ReplaceAll(name, config.FeatToken, strings.ToLower(feature))
}

// StubName is FileName with ".stub" before the final extension.
func (l *Locator) StubName(feature string) string {
	name := l.FileName(feature)
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + ".stub" + ext
}

// Locate returns the first existing document for feature. Finished docs
// are preferred over stubs in every directory.
func (l *Locator) Locate(feature string, includeStubs bool) (string, bool) {
	names := []string{l.FileName(feature)}
	if includeStubs {
		names = append(names, l.StubName(feature))
	}

	dirs := l.probeDirs()
	for _, name := range names {
		for _, dir := range dirs {
			candidate := filepath.Join(l.repo.Abs(dir), name)
			if fs.IsFile(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

// StubPath is where a new stub for feature is created.
func (l *Locator) StubPath(feature string) string {
	return filepath.Join(l.repo.Abs(l.cfg.DocsRoot), l.StubName(feature))
}

func (l *Locator) probeDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, d := range append([]string{l.cfg.DocsRoot}, fallbackDocDirs...) {
		clean := path.Clean(filepath.ToSlash(d))
		if !seen[clean] {
			seen[clean] = true
			dirs = append(dirs, clean)
		}
	}
	return dirs
}

// IsStub reports whether docPath names a stub document.
func IsStub(docPath string) bool {
	return strings.HasSuffix(filepath.Base(docPath), stubSuffix)
}

// FinalName is the name a stub should be renamed to.
func FinalName(docPath string) string {
	return strings.TrimSuffix(filepath.Base(docPath), stubSuffix) + ".md"
}
