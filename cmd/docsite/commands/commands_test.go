package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/docs"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

func newProject(t *testing.T) (*CLI, *Global, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	root := &CLI{Config: filepath.Join(dir, "docsite.yaml")}
	buf := &bytes.Buffer{}
	g := &Global{Out: buf}

	require.NoError(t, (&InitCmd{}).Run(g, root))
	for _, name := range []string{"README", "getting-started", "models"} {
		path := filepath.Join(dir, "docs", "guide", name+".md")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("# "+name+"\n"), 0o600))
	}
	buf.Reset()
	return root, g, buf
}

func TestParseFlags(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("docsite"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"-c", "site.yaml", "--log-format", "json", "emit", "-f", "json", "-o", "out.json"})
	require.NoError(t, err)
	assert.Equal(t, "emit", ctx.Command())
	assert.Equal(t, "json", cli.Emit.Format)
	assert.True(t, filepath.IsAbs(cli.Config))

	_, err = parser.Parse([]string{"--log-format", "xml", "validate"})
	assert.Error(t, err)
}

func TestInitRefusesOverwrite(t *testing.T) {
	root, g, _ := newProject(t)
	err := (&InitCmd{}).Run(g, root)
	require.Error(t, err)
	assert.Equal(t, 7, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	require.NoError(t, (&InitCmd{Force: true}).Run(g, root))
}

func TestValidate(t *testing.T) {
	root, g, buf := newProject(t)
	docsRoot := filepath.Join(filepath.Dir(root.Config), "docs")

	require.NoError(t, (&ValidateCmd{}).Run(g, root))
	assert.Contains(t, buf.String(), "configuration is valid (1 sidebars)")
	assert.Contains(t, buf.String(), "8 documents referenced, 5 missing", "docs root defaults to docsDir next to the config")

	buf.Reset()
	require.NoError(t, (&ValidateCmd{Docs: docsRoot}).Run(g, root))
	assert.Contains(t, buf.String(), "8 documents referenced, 5 missing")
	assert.Contains(t, buf.String(), "missing: guide/hooks.md (/guide/hooks.html)")

	err := (&ValidateCmd{Docs: docsRoot, Strict: true}).Run(g, root)
	require.Error(t, err)
	assert.Equal(t, 2, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

	err = (&ValidateCmd{Strict: true}).Run(g, root)
	require.Error(t, err)
	assert.Equal(t, 2, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestEmit(t *testing.T) {
	root, g, buf := newProject(t)

	require.NoError(t, (&EmitCmd{Format: "json"}).Run(g, root))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/docs/", decoded["base"])

	out := filepath.Join(filepath.Dir(root.Config), ".vuepress", "config.js")
	require.NoError(t, (&EmitCmd{Output: out}).Run(g, root))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "module.exports = {")

	err = (&EmitCmd{Format: "toml"}).Run(g, root)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryEmit))
}

func TestResolve(t *testing.T) {
	root, g, buf := newProject(t)

	require.NoError(t, (&ResolveCmd{Format: "text"}).Run(g, root))
	text := buf.String()
	assert.Contains(t, text, "/guide/\n")
	assert.Contains(t, text, "guide/hooks.md (missing)")
	assert.Contains(t, text, "getting-started")

	buf.Reset()
	require.NoError(t, (&ResolveCmd{Format: "json"}).Run(g, root))
	var site docs.Site
	require.NoError(t, json.Unmarshal(buf.Bytes(), &site))
	require.Len(t, site.Sidebars, 1)
	assert.Len(t, site.Missing(), 5)

	err := (&ResolveCmd{Docs: filepath.Join(t.TempDir(), "nope")}).Run(g, root)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryFileSystem))
}
