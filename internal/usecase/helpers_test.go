package usecase

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"feat/config"
	"feat/internal/adapter/fs"
	"feat/internal/adapter/markdown"
	"feat/internal/adapter/memstore"
	"feat/internal/adapter/scanner"
	"feat/internal/repo"
)

type fixture struct {
	t        *testing.T
	root     string
	rc       repo.Context
	cfg      *config.Config
	logs     *bytes.Buffer
	logger   *log.Logger
	registry *scanner.Registry
	writer   *countingWriter
	history  *memstore.MemoryStore
}

// countingWriter records every document write.
type countingWriter struct {
	writes []string
}

func (w *countingWriter) WriteFile(path string, data []byte) error {
	w.writes = append(w.writes, path)
	return fs.AtomicWrite(path, data)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	rc, err := repo.New(root)
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	return &fixture{
		t:        t,
		root:     rc.Root,
		rc:       rc,
		cfg:      config.DefaultConfig(),
		logs:     logs,
		logger:   log.New(logs),
		registry: scanner.NewRegistry(),
		writer:   &countingWriter{},
		history:  memstore.NewMemoryStore(),
	}
}

func (fx *fixture) path(rel string) string {
	return filepath.Join(fx.root, filepath.FromSlash(rel))
}

func (fx *fixture) write(rel, content string) {
	fx.t.Helper()
	p := fx.path(rel)
	require.NoError(fx.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(fx.t, os.WriteFile(p, []byte(content), 0644))
}

func (fx *fixture) read(rel string) string {
	fx.t.Helper()
	data, err := os.ReadFile(fx.path(rel))
	require.NoError(fx.t, err)
	return string(data)
}

func (fx *fixture) mkdir(rel string) {
	fx.t.Helper()
	require.NoError(fx.t, os.MkdirAll(fx.path(rel), 0755))
}

func (fx *fixture) resolver() *Resolver {
	return NewResolver(fx.rc, fx.cfg, fx.logger)
}

func (fx *fixture) collector() *Collector {
	return NewCollector(fx.rc, fx.cfg, fx.registry, fs.NewWalker(), fs.NewReader(), fx.logger)
}

func (fx *fixture) locator() *Locator {
	return NewLocator(fx.rc, fx.cfg)
}

func (fx *fixture) synchronizer() *Synchronizer {
	return NewSynchronizer(fx.rc, fs.NewReader(), fx.writer, fx.logger)
}

func (fx *fixture) updater() *UpdateUseCase {
	return NewUpdateUseCase(fx.rc, fx.resolver(), fx.collector(), fx.locator(), fx.synchronizer(), fx.history, fx.logger)
}

func (fx *fixture) syncer() *SyncUseCase {
	return NewSyncUseCase(fx.rc, fx.resolver(), fx.collector(), fx.locator(), fx.synchronizer(), fx.history, fx.logger)
}

func (fx *fixture) checker() *CheckUseCase {
	return NewCheckUseCase(fx.rc, fx.cfg, fx.registry, fx.resolver(), fx.locator(), markdown.NewOutliner(), fs.NewReader(), fx.logger)
}
