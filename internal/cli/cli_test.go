package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feat/internal/usecase"
)

func resetFlags() {
	cfgFile, rootDir, verbose = "", "", false
	initForce = false
	listCounts = false
	scanFormat, scanPaths = "text", nil
	updateDoc = ""
	syncDryRun = false
	checkMissingDocs = false
	renderPretty = false
	historyLimit = 20
}

func run(t *testing.T, root string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--root", root}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func alphaRepo(t *testing.T) string {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "alpha", "a.rs"), "// alpha\n\npub fn go() {}\npub use crate::x::Y;\n")
	return root
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestScanText(t *testing.T) {
	root := alphaRepo(t)

	out, _, err := run(t, root, "scan", "alpha")
	require.NoError(t, err)

	assert.Contains(t, out, "== ALPHA ==")
	assert.Contains(t, out, "paths: src/alpha\n")
	assert.Contains(t, out, "Functions:")
	assert.Contains(t, out, "- go (src/alpha/a.rs:3)\n")
	assert.Contains(t, out, "Re-exports:")
	assert.Contains(t, out, "- pub use (src/alpha/a.rs:4) [crate::x::Y]\n")
}

func TestScanJSON(t *testing.T) {
	root := alphaRepo(t)

	out, _, err := run(t, root, "scan", "alpha", "--format", "json")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)

	assert.Equal(t, "fn", records[0]["kind"])
	assert.Equal(t, "go", records[0]["name"])
	assert.Equal(t, "src/alpha/a.rs", records[0]["location"])
	assert.Equal(t, float64(3), records[0]["line"])
	assert.Nil(t, records[0]["extra"])
	assert.Equal(t, "rust", records[0]["language"])
	assert.Equal(t, "crate::x::Y", records[1]["extra"])
}

func TestScanYAMLAndBadFormat(t *testing.T) {
	root := alphaRepo(t)

	out, _, err := run(t, root, "scan", "alpha", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "- kind: fn\n")
	assert.Contains(t, out, "  extra: null\n")

	_, _, err = run(t, root, "scan", "alpha", "--format", "xml")
	assert.Equal(t, 1, exitCode(err))
}

func TestScanUnknownFeature(t *testing.T) {
	root := alphaRepo(t)

	_, _, err := run(t, root, "scan", "omega")
	assert.Equal(t, 1, exitCode(err))
	assert.True(t, errors.Is(err, usecase.ErrUnknownFeature))
}

func TestListCounts(t *testing.T) {
	root := alphaRepo(t)

	out, _, err := run(t, root, "list", "--counts")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 feature(s):")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "files: 1, items: 2")
}

func TestUpdateThenSync(t *testing.T) {
	root := alphaRepo(t)

	out, _, err := run(t, root, "update", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "created stub documentation at docs/features/FEATURES_ALPHA.stub.md")
	assert.FileExists(t, filepath.Join(root, "docs", "features", "FEATURES_ALPHA.stub.md"))

	out, stderr, err := run(t, root, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "0 updated, 1 stubs")
	assert.Contains(t, stderr, "updating stub")

	writeFile(t, filepath.Join(root, "docs", "features", "FEATURES_BROKEN.md"), "<!-- /feat:broken -->\n<!-- feat:broken -->\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "broken"), 0755))

	out, _, err = run(t, root, "sync", "--dry-run")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "Summary (dry run):")
	assert.Contains(t, out, "1 failed")
}

func TestRender(t *testing.T) {
	root := alphaRepo(t)

	out, _, err := run(t, root, "render", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "<!-- feat:alpha -->\n")
	assert.Contains(t, out, "  - fn go (line 3)\n")
	assert.Contains(t, out, "  - pub use crate::x::Y (line 4)\n")
}

func TestCheck(t *testing.T) {
	root := alphaRepo(t)

	out, _, err := run(t, root, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration OK")

	out, _, err = run(t, root, "check", "--missing-docs")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "no doc file for 'alpha'")

	writeFile(t, filepath.Join(root, ".feat.toml"), "languages = [\"cobol\"]\n")
	out, _, err = run(t, root, "check")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, `unknown language "cobol"`)
}

func TestCorruptConfig(t *testing.T) {
	root := alphaRepo(t)
	writeFile(t, filepath.Join(root, ".feat.toml"), "languages = [\n")

	_, _, err := run(t, root, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestInit(t *testing.T) {
	root := alphaRepo(t)

	out, _, err := run(t, root, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "detected primary language: rust")
	assert.FileExists(t, filepath.Join(root, ".feat.toml"))

	_, _, err = run(t, root, "init")
	assert.Equal(t, 1, exitCode(err))
	assert.True(t, errors.Is(err, usecase.ErrConfigExists))

	_, _, err = run(t, root, "init", "--force")
	require.NoError(t, err)
}

func TestHistory(t *testing.T) {
	root := alphaRepo(t)

	out, _, err := run(t, root, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "no history recorded")

	writeFile(t, filepath.Join(root, ".feat.toml"), "record_history = true\n")
	_, _, err = run(t, root, "update", "alpha")
	require.NoError(t, err)
	_, _, err = run(t, root, "update", "alpha")
	require.NoError(t, err)

	out, _, err = run(t, root, "history", "alpha", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged")
	assert.NotContains(t, out, "created")
	assert.Contains(t, out, "docs/features/FEATURES_ALPHA.stub.md")
}
