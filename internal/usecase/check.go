package usecase

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"feat/config"
	"feat/internal/adapter/markdown"
	"feat/internal/adapter/scanner"
	"feat/internal/domain"
	"feat/internal/port"
	"feat/internal/repo"
)

// PathIssue is a feature path that does not exist.
type PathIssue struct {
	Feature string
	Path    string
}

// DocRef points at a feature's document.
type DocRef struct {
	Feature string
	Path    string
}

// PlaceholderDoc is a finished document still carrying placeholder prose.
type PlaceholderDoc struct {
	Feature  string
	Path     string
	Sections []string
}

// CheckReport contains the results of a check.
type CheckReport struct {
	ConfigErrors []string
	MissingPaths []PathIssue
	MissingDocs  []string
	Stubs        []DocRef
	Placeholders []PlaceholderDoc
}

// Issues counts the problems that make a check fail. Stubs and
// placeholder prose are informational.
func (r *CheckReport) Issues() int {
	return len(r.ConfigErrors) + len(r.MissingPaths) + len(r.MissingDocs)
}

// CheckUseCase validates configuration, feature paths and documents.
type CheckUseCase struct {
	repo     repo.Context
	cfg      *config.Config
	registry *scanner.Registry
	resolver *Resolver
	locator  *Locator
	outliner *markdown.Outliner
	reader   port.FileReader
	logger   *log.Logger
}

func NewCheckUseCase(
	rc repo.Context,
	cfg *config.Config,
	registry *scanner.Registry,
	resolver *Resolver,
	locator *Locator,
	outliner *markdown.Outliner,
	reader port.FileReader,
	logger *log.Logger,
) *CheckUseCase {
	return &CheckUseCase{
		repo:     rc,
		cfg:      cfg,
		registry: registry,
		resolver: resolver,
		locator:  locator,
		outliner: outliner,
		reader:   reader,
		logger:   logger,
	}
}

// ValidateConfig returns the configuration problems, including language
// tags no scanner is registered for.
func (u *CheckUseCase) ValidateConfig() []string {
	errs := u.cfg.Validate()
	for _, lang := range u.cfg.Languages {
		if _, ok := u.registry.Get(domain.Language(lang)); !ok {
			errs = append(errs, fmt.Sprintf("unknown language %q", lang))
		}
	}
	return errs
}

// Check runs every validation. Configuration errors stop the check before
// features are resolved.
func (u *CheckUseCase) Check(missingDocs bool) (*CheckReport, error) {
	report := &CheckReport{ConfigErrors: u.ValidateConfig()}
	if len(report.ConfigErrors) > 0 {
		return report, nil
	}

	features, err := u.resolver.Resolve()
	if err != nil {
		return nil, err
	}
	names := Names(features)

	for _, name := range names {
		for _, p := range features[name].Paths {
			abs := u.repo.Abs(p)
			if _, err := os.Stat(abs); err != nil {
				report.MissingPaths = append(report.MissingPaths, PathIssue{Feature: name, Path: abs})
			}
		}
	}

	if !missingDocs {
		return report, nil
	}

	for _, name := range names {
		docPath, ok := u.locator.Locate(name, true)
		switch {
		case !ok:
			report.MissingDocs = append(report.MissingDocs, name)
		case IsStub(docPath):
			report.Stubs = append(report.Stubs, DocRef{Feature: name, Path: docPath})
		default:
			content, err := u.reader.ReadFile(docPath)
			if err != nil {
				u.logger.Warn("failed to read doc", "feature", name, "path", u.repo.Rel(docPath), "err", err)
				continue
			}
			if sections := u.outliner.Placeholders([]byte(content)); len(sections) > 0 {
				report.Placeholders = append(report.Placeholders, PlaceholderDoc{
					Feature:  name,
					Path:     docPath,
					Sections: sections,
				})
			}
		}
	}

	return report, nil
}
