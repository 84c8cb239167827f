package usecase

import (
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"feat/config"
	"feat/internal/adapter/scanner"
	"feat/internal/domain"
	"feat/internal/port"
	"feat/internal/repo"
)

// Collection is the scanned surface of one feature.
type Collection struct {
	Feature  domain.Feature
	Files    []string
	Language domain.Language
	Items    []domain.Item
}

// Collector maps features to source files and runs the matching scanner
// over them.
type Collector struct {
	repo     repo.Context
	cfg      *config.Config
	registry *scanner.Registry
	walker   port.FileWalker
	reader   port.FileReader
	logger   *log.Logger
}

func NewCollector(
	rc repo.Context,
	cfg *config.Config,
	registry *scanner.Registry,
	walker port.FileWalker,
	reader port.FileReader,
	logger *log.Logger,
) *Collector {
	return &Collector{
		repo:     rc,
		cfg:      cfg,
		registry: registry,
		walker:   walker,
		reader:   reader,
		logger:   logger,
	}
}

// ResolveFiles expands the feature's paths into a sorted, duplicate-free
// list of absolute file paths. Missing paths are skipped with a warning.
func (c *Collector) ResolveFiles(f domain.Feature) []string {
	exts := c.registry.Extensions(c.languages())
	seen := make(map[string]bool)
	var files []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range f.Paths {
		abs := c.repo.Abs(p)
		info, err := os.Stat(abs)
		if err != nil {
			c.logger.Warn("feature path not found", "feature", f.Name, "path", abs)
			continue
		}
		if !info.IsDir() {
			add(abs)
			continue
		}
		found, err := c.walker.Walk(abs, exts)
		if err != nil {
			c.logger.Warn("failed to walk feature path", "feature", f.Name, "path", abs, "err", err)
			continue
		}
		for _, file := range found {
			add(file)
		}
	}

	sort.Strings(files)
	return files
}

// DetectLanguage returns the registered language claiming the most files.
// Ties go to the earlier configured language, then the earlier registered
// one. With no recognizable files the first configured language is used.
func (c *Collector) DetectLanguage(files []string) domain.Language {
	counts := make(map[domain.Language]int)
	for _, file := range files {
		if lang, ok := c.registry.LanguageFor(file); ok {
			counts[lang]++
		}
	}

	configured := c.languages()
	var order []domain.Language
	listed := make(map[domain.Language]bool)
	for _, lang := range append(configured, c.registry.Languages()...) {
		if !listed[lang] {
			listed[lang] = true
			order = append(order, lang)
		}
	}

	var best domain.Language
	bestCount := 0
	for _, lang := range order {
		if counts[lang] > bestCount {
			best = lang
			bestCount = counts[lang]
		}
	}
	if bestCount > 0 {
		return best
	}

	if len(configured) > 0 {
		return configured[0]
	}
	return domain.LangRust
}

// ParseAll scans each file independently. Files that cannot be read,
// decoded or scanned contribute no items. The result is ordered by path,
// line and name.
func (c *Collector) ParseAll(files []string, s port.Scanner) []domain.Item {
	var items []domain.Item
	for _, file := range files {
		content, err := c.reader.ReadFile(file)
		if err != nil {
			c.logger.Warn("failed to read source file", "path", c.repo.Rel(file), "err", err)
			continue
		}
		found, err := s.Scan(file, content)
		if err != nil {
			c.logger.Warn("failed to scan source file", "path", c.repo.Rel(file), "err", err)
			continue
		}
		items = append(items, found...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Name < b.Name
	})
	return items
}

// CollectItems resolves, detects and scans in one step.
func (c *Collector) CollectItems(f domain.Feature) *Collection {
	coll := &Collection{Feature: f}

	coll.Files = c.ResolveFiles(f)
	if len(coll.Files) == 0 {
		coll.Language = c.DetectLanguage(nil)
		return coll
	}

	coll.Language = c.DetectLanguage(coll.Files)
	s, ok := c.registry.Get(coll.Language)
	if !ok {
		c.logger.Warn("no scanner for language", "feature", f.Name, "language", coll.Language)
		return coll
	}

	c.logger.Debug("scanning feature", "feature", f.Name, "files", len(coll.Files), "language", coll.Language)
	coll.Items = c.ParseAll(coll.Files, s)
	return coll
}

func (c *Collector) languages() []domain.Language {
	langs := make([]domain.Language, 0, len(c.cfg.Languages))
	for _, l := range c.cfg.Languages {
		langs = append(langs, domain.Language(l))
	}
	return langs
}
