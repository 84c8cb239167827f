package usecase

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"feat/config"
	"feat/internal/domain"
	"feat/internal/repo"
)

// ErrUnknownFeature is returned when a feature name is not configured or
// discovered.
var ErrUnknownFeature = errors.New("unknown feature")

// Resolver builds the feature map from auto-discovery and explicit
// configuration.
type Resolver struct {
	repo   repo.Context
	cfg    *config.Config
	logger *log.Logger
}

func NewResolver(rc repo.Context, cfg *config.Config, logger *log.Logger) *Resolver {
	return &Resolver{repo: rc, cfg: cfg, logger: logger}
}

// Resolve returns every feature keyed by name. Explicit features win over
// discovered ones sharing a name or a path.
func (r *Resolver) Resolve() (map[string]domain.Feature, error) {
	features := make(map[string]domain.Feature)

	if r.cfg.AutoDiscover {
		discovered, err := r.discover()
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			features[f.Name] = f
		}
	}

	explicitPaths := make(map[string]bool)
	for _, paths := range r.cfg.Features {
		for _, p := range paths {
			explicitPaths[path.Clean(p)] = true
		}
	}
	for name, f := range features {
		for _, p := range f.Paths {
			if explicitPaths[p] {
				r.logger.Debug("explicit mapping overrides discovered feature", "feature", name, "path", p)
				delete(features, name)
				break
			}
		}
	}

	for name, paths := range r.cfg.Features {
		cleaned := make([]string, 0, len(paths))
		for _, p := range paths {
			cleaned = append(cleaned, path.Clean(p))
		}
		features[name] = domain.Feature{
			Name:     name,
			Paths:    cleaned,
			Language: r.primaryLanguage(),
		}
	}

	return features, nil
}

// Lookup resolves the feature map and returns the named feature.
func (r *Resolver) Lookup(name string) (domain.Feature, error) {
	features, err := r.Resolve()
	if err != nil {
		return domain.Feature{}, err
	}
	f, ok := features[name]
	if !ok {
		return domain.Feature{}, fmt.Errorf("%w '%s'", ErrUnknownFeature, name)
	}
	return f, nil
}

func (r *Resolver) discover() ([]domain.Feature, error) {
	rootRel := path.Clean(strings.TrimSuffix(r.cfg.FeaturesRoot, "/"))
	dir := r.repo.Abs(rootRel)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Warn("features root not found", "path", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read features root: %w", err)
	}

	var features []domain.Feature
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		rel := path.Join(rootRel, e.Name())
		if pattern, ok := r.excluded(rel); ok {
			r.logger.Debug("excluded feature directory", "path", rel, "pattern", pattern)
			continue
		}
		features = append(features, domain.Feature{
			Name:     e.Name(),
			Paths:    []string{rel},
			Language: r.primaryLanguage(),
		})
	}

	return features, nil
}

// excluded applies the exclude patterns as plain substrings: wildcards are
// stripped and the remaining literal is searched for in rel. Patterns that
// reduce to nothing match nothing.
func (r *Resolver) excluded(rel string) (string, bool) {
	for _, pattern := range r.cfg.Exclude {
		literal := strings.ReplaceAll(strings.ReplaceAll(pattern, "**", ""), "*", "")
		if literal == "" {
			continue
		}
		if strings.Contains(rel, literal) {
			return pattern, true
		}
	}
	return "", false
}

func (r *Resolver) primaryLanguage() domain.Language {
	if len(r.cfg.Languages) > 0 {
		return domain.Language(r.cfg.Languages[0])
	}
	return domain.LangRust
}

// Names returns the feature names in lexicographic order.
func Names(features map[string]domain.Feature) []string {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
