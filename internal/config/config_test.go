package config

import (
	"os"
	"path/filepath"
	"testing"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orionYAML = `
base: /docs/
title: Laravel Orion
description: The simplest way to create REST API with Laravel
head:
  - [link, {rel: "shortcut icon", href: /favicon.ico}]
themeConfig:
  repo: laravel-orion/laravel-orion
  docsRepo: laravel-orion/docs
  docsDir: docs
  editLinks: true
  nav:
    - {text: Home, link: /}
    - {text: Guide, link: /guide/}
  sidebar:
    /guide/:
      - title: Guide
        collapsable: false
        children:
          - ''
          - getting-started
          - models
          - relationships
          - hooks
          - query-parameters
          - security
          - responses
  lastUpdated: Last Updated
`

// orionJSON is the same configuration written as JSON, as the generator's
// config object would serialize.
const orionJSON = `{
  "base": "/docs/",
  "title": "Laravel Orion",
  "description": "The simplest way to create REST API with Laravel",
  "head": [["link", {"rel": "shortcut icon", "href": "/favicon.ico"}]],
  "themeConfig": {
    "repo": "laravel-orion/laravel-orion",
    "docsRepo": "laravel-orion/docs",
    "docsDir": "docs",
    "editLinks": true,
    "nav": [{"text": "Home", "link": "/"}, {"text": "Guide", "link": "/guide/"}],
    "sidebar": {
      "/guide/": [{
        "title": "Guide",
        "collapsable": false,
        "children": ["", "getting-started", "models", "relationships", "hooks", "query-parameters", "security", "responses"]
      }]
    },
    "lastUpdated": "Last Updated"
  }
}`

func expectedOrion() *SiteConfig {
	cfg := Example()
	ApplyDefaults(cfg)
	return cfg
}

func TestParseOrionYAML(t *testing.T) {
	cfg, err := Parse([]byte(orionYAML))
	require.NoError(t, err)
	assert.Equal(t, expectedOrion(), cfg)

	assert.Equal(t, "master", cfg.ThemeConfig.DocsBranch)
	assert.Equal(t, "Edit this page", cfg.ThemeConfig.EditLinkText)
	assert.Equal(t, "Last Updated", cfg.ThemeConfig.LastUpdated.Label())
	href, ok := cfg.Head[0].Attrs.Get("href")
	require.True(t, ok)
	assert.Equal(t, "/favicon.ico", href)
}

func TestParseOrionJSON(t *testing.T) {
	cfg, err := Parse([]byte(orionJSON))
	require.NoError(t, err)
	assert.Equal(t, expectedOrion(), cfg)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Example())
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, expectedOrion(), cfg)
}

func TestSidebarOrderIsPreserved(t *testing.T) {
	cfg, err := Parse([]byte(`
themeConfig:
  sidebar:
    /guide/:
      - {title: Guide, children: ['']}
    /api/:
      - {title: API, children: [resources]}
    /:
      - {title: Home, children: ['']}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/guide/", "/api/", "/"}, cfg.ThemeConfig.Sidebar.Prefixes())

	sections, ok := cfg.ThemeConfig.Sidebar.Get("/api/")
	require.True(t, ok)
	assert.Equal(t, "API", sections[0].Title)

	_, ok = cfg.ThemeConfig.Sidebar.Get("/missing/")
	assert.False(t, ok)
}

func TestSidebarChildForms(t *testing.T) {
	cfg, err := Parse([]byte(`
themeConfig:
  sidebar:
    /guide/:
      - title: Guide
        children:
          - ''
          - [/changelog, Changelog]
          - title: Advanced
            collapsable: true
            children: [hooks, security]
`))
	require.NoError(t, err)

	sections, _ := cfg.ThemeConfig.Sidebar.Get("/guide/")
	require.Len(t, sections, 1)
	guide := sections[0]

	assert.True(t, guide.Collapsable, "collapsable defaults to true when omitted")
	require.Len(t, guide.Children, 3)
	assert.Equal(t, SidebarChild{Ref: ""}, guide.Children[0])
	assert.Equal(t, SidebarChild{Ref: "/changelog", Text: "Changelog"}, guide.Children[1])
	require.True(t, guide.Children[2].IsSection())
	assert.Equal(t, "Advanced", guide.Children[2].Section.Title)
	assert.Equal(t, []string{"", "/changelog", "hooks", "security"}, guide.Refs())
}

func TestHeadTagForms(t *testing.T) {
	cfg, err := Parse([]byte(`
head:
  - [meta, {name: theme-color, content: '#3eaf7c'}]
  - {tag: link, attrs: {rel: manifest, href: /manifest.json}}
  - [script, {}, "window.answer = 42"]
  - [noscript]
`))
	require.NoError(t, err)
	require.Len(t, cfg.Head, 4)

	assert.Equal(t, HeadTag{Tag: "meta", Attrs: Attributes{{"name", "theme-color"}, {"content", "#3eaf7c"}}}, cfg.Head[0])
	assert.Equal(t, "link", cfg.Head[1].Tag)
	assert.Equal(t, Attributes{{"rel", "manifest"}, {"href", "/manifest.json"}}, cfg.Head[1].Attrs)
	assert.Equal(t, "window.answer = 42", cfg.Head[2].Content)
	assert.Empty(t, cfg.Head[3].Attrs)
}

func TestLastUpdatedForms(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  LastUpdated
		label string
	}{
		{"label", `"Last Updated"`, LastUpdated{Enabled: true, Text: "Last Updated"}, "Last Updated"},
		{"custom label", `"Zuletzt aktualisiert"`, LastUpdated{Enabled: true, Text: "Zuletzt aktualisiert"}, "Zuletzt aktualisiert"},
		{"true", `true`, LastUpdated{Enabled: true}, DefaultLastUpdatedLabel},
		{"false", `false`, LastUpdated{}, DefaultLastUpdatedLabel},
		{"empty string", `""`, LastUpdated{}, DefaultLastUpdatedLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte("themeConfig:\n  lastUpdated: " + tt.value + "\n"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ThemeConfig.LastUpdated)
			assert.Equal(t, tt.label, cfg.ThemeConfig.LastUpdated.Label())
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty document", ""},
		{"unknown top-level key", "titel: typo\n"},
		{"unknown theme key", "themeConfig:\n  sidebars: {}\n"},
		{"misspelt collapsable", "themeConfig:\n  sidebar:\n    /g/:\n      - {title: G, collapsible: false, children: [a]}\n"},
		{"sidebar as list", "themeConfig:\n  sidebar: [a, b]\n"},
		{"null sidebar child", "themeConfig:\n  sidebar:\n    /g/:\n      - title: G\n        children:\n          -\n"},
		{"head tag too long", "head:\n  - [a, {}, x, y]\n"},
		{"lastUpdated as list", "themeConfig:\n  lastUpdated: [x]\n"},
		{"misspelt head tag key", "head:\n  - {tag: link, atrs: {rel: icon, href: /favicon.ico}}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig), "got %v", err)
		})
	}
}

func TestParseKeepsLiteralDollarSigns(t *testing.T) {
	t.Setenv("HOME", "/home/docs")
	t.Setenv("DOCSITE_TEST_TITLE", "Orion")

	cfg, err := Parse([]byte(`
title: ${DOCSITE_TEST_TITLE}
description: "Pricing starts at $5, see $HOME and ${DOCSITE_TEST_UNSET}"
head:
  - [script, {}, "window.$docsearch = 1"]
`))
	require.NoError(t, err)
	assert.Equal(t, "Orion", cfg.Title)
	assert.Equal(t, "Pricing starts at $5, see $HOME and ${DOCSITE_TEST_UNSET}", cfg.Description)
	require.Len(t, cfg.Head, 1)
	assert.Equal(t, "window.$docsearch = 1", cfg.Head[0].Content)
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
	})

	t.Run("expands environment variables", func(t *testing.T) {
		t.Setenv("DOCSITE_TEST_REPO", "laravel-orion/docs")
		path := filepath.Join(t.TempDir(), "docsite.yaml")
		require.NoError(t, os.WriteFile(path, []byte("themeConfig:\n  docsRepo: ${DOCSITE_TEST_REPO}\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "laravel-orion/docs", cfg.ThemeConfig.DocsRepo)
	})

	t.Run("reads .env from the working directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(".env", []byte("DOCSITE_ENV_TITLE=From Env\n"), 0o600))
		require.NoError(t, os.WriteFile("docsite.yaml", []byte("title: ${DOCSITE_ENV_TITLE}\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("DOCSITE_ENV_TITLE") })

		cfg, err := Load("docsite.yaml")
		require.NoError(t, err)
		assert.Equal(t, "From Env", cfg.Title)
	})

	t.Run("validation errors carry the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docsite.yaml")
		require.NoError(t, os.WriteFile(path, []byte("themeConfig:\n  nav:\n    - {text: Broken}\n"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		dse, ok := derrors.As(err)
		require.True(t, ok)
		assert.Equal(t, derrors.CategoryValidation, dse.Category)
		assert.Equal(t, path, dse.Context["path"])
	})
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, expectedOrion(), cfg)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))

	require.NoError(t, Init(path, true))
}
