package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/page"
)

func TestExportSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")

	require.NoError(t, exportSite(dir, page.Must()))

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(index), "<!DOCTYPE html>"))
	assert.Contains(t, string(index), `data-sheet="page-globals"`)

	for _, name := range []string{"site.css", "toaster.js"} {
		_, err := os.Stat(filepath.Join(dir, "static", name))
		assert.NoError(t, err, name)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	t.Setenv("THEME_PRIMARY", "#2563eb")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"render", "--env-file", filepath.Join(dir, "none.env"), "--out", dir})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "wrote "+dir)
	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "--color-primary: #2563eb;")
}

func TestRenderCommandRejectsBadTheme(t *testing.T) {
	t.Setenv("THEME_BACKGROUND", "url(javascript:alert(1));")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "--env-file", filepath.Join(t.TempDir(), "none.env"), "--out", t.TempDir()})
	assert.Error(t, cmd.Execute())
}
