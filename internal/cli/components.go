package cli

import (
	"fmt"
	"os"

	"feat/config"
	"feat/internal/adapter/fs"
	"feat/internal/adapter/scanner"
	"feat/internal/adapter/store"
	"feat/internal/port"
	"feat/internal/usecase"
)

// pipeline holds the components shared by the feature commands of one
// invocation.
type pipeline struct {
	registry  *scanner.Registry
	reader    *fs.Reader
	walker    *fs.Walker
	writer    *fs.Writer
	resolver  *usecase.Resolver
	collector *usecase.Collector
	locator   *usecase.Locator
	sync      *usecase.Synchronizer
}

func newPipeline() *pipeline {
	p := &pipeline{
		registry: scanner.NewRegistry(),
		reader:   fs.NewReader(),
		walker:   fs.NewWalker(),
		writer:   fs.NewWriter(),
	}
	p.resolver = usecase.NewResolver(repoCtx, cfg, logger)
	p.collector = usecase.NewCollector(repoCtx, cfg, p.registry, p.walker, p.reader, logger)
	p.locator = usecase.NewLocator(repoCtx, cfg)
	p.sync = usecase.NewSynchronizer(repoCtx, p.reader, p.writer, logger)
	return p
}

// openHistory opens the history database when record_history is enabled.
// A nil store means nothing is recorded.
func openHistory() (port.HistoryStore, error) {
	if !cfg.RecordHistory {
		return nil, nil
	}
	if err := config.EnsureFeatDir(repoCtx.Root); err != nil {
		return nil, fmt.Errorf("failed to create .feat directory: %w", err)
	}
	st, err := store.NewBoltStore(config.HistoryDBPath(repoCtx.Root))
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return st, nil
}

// openExistingHistory opens the history database if one was recorded.
func openExistingHistory() (port.HistoryStore, bool, error) {
	path := config.HistoryDBPath(repoCtx.Root)
	if _, err := os.Stat(path); err != nil {
		return nil, false, nil
	}
	st, err := store.NewBoltStore(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open history store: %w", err)
	}
	return st, true, nil
}
