package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestCatalogDumpAndValidate(t *testing.T) {
	isolate(t)
	out, err := run(t, "catalog", "dump")
	require.NoError(t, err)
	assert.Contains(t, out, "categories:")
	assert.Contains(t, out, "contraimatges")

	file := filepath.Join(t.TempDir(), "catalog.yaml")
	_, err = run(t, "catalog", "dump", "-o", file)
	require.NoError(t, err)

	out, err = run(t, "catalog", "validate", file)
	require.NoError(t, err)
	assert.Contains(t, out, "45 nodes, 4 categories")

	out, err = run(t, "--catalog", file, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Contraimatges")
}

func TestCatalogValidateRejectsBadFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("categories: []\nnodes: []\n"), 0o644))
	_, err := run(t, "catalog", "validate", file)
	assert.ErrorContains(t, err, "invalid catalog")
}

func TestLayoutShuffleShowReset(t *testing.T) {
	isolate(t)
	out, err := run(t, "layout", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "45 nodes, 0 moved")

	out, err = run(t, "layout", "shuffle", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "layout shuffled")

	out, err = run(t, "layout", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, " 0 moved")

	_, err = run(t, "layout", "reset")
	require.NoError(t, err)
	out, err = run(t, "layout", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "45 nodes, 0 moved")
}

func TestLayoutShuffleWithoutCache(t *testing.T) {
	isolate(t)
	out, err := run(t, "--no-cache", "layout", "shuffle")
	require.NoError(t, err)
	assert.Contains(t, out, "not kept")
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")

	out, err := run(t, "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, err = run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = run(t, "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")
	_, err = run(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestExportCommand(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "frame.png")
	out, err := run(t, "--no-cache", "export", "--focus", "27", "--width", "200", "--height", "120", "-o", file)
	require.NoError(t, err)
	assert.Contains(t, out, "exported")
	assert.FileExists(t, file)

	_, err = run(t, "--no-cache", "export", "--category", "nope", "-o", file)
	assert.Error(t, err)
}
