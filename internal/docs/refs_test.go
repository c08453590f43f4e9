package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRef(t *testing.T) {
	tests := []struct {
		prefix string
		ref    string
		want   Target
	}{
		{"/guide/", "", Target{File: "guide/README.md", Route: "/guide/"}},
		{"/guide/", "getting-started", Target{File: "guide/getting-started.md", Route: "/guide/getting-started.html"}},
		{"/guide/", "advanced/", Target{File: "guide/advanced/README.md", Route: "/guide/advanced/"}},
		{"/guide/", "models.md", Target{File: "guide/models.md", Route: "/guide/models.html"}},
		{"/guide/", "hooks.html", Target{File: "guide/hooks.md", Route: "/guide/hooks.html"}},
		{"/guide/", "sub/README.md", Target{File: "guide/sub/README.md", Route: "/guide/sub/"}},
		{"/guide/", "/changelog", Target{File: "changelog.md", Route: "/changelog.html"}},
		{"/guide/", "security#policies", Target{File: "guide/security.md", Route: "/guide/security.html#policies"}},
		{"/", "", Target{File: "README.md", Route: "/"}},
		{"/", "/README.md", Target{File: "README.md", Route: "/"}},
		{"/guide/", "https://laravel.com/docs", Target{Route: "https://laravel.com/docs", External: true}},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRef(tt.prefix, tt.ref))
		})
	}
}

func TestSlugTitle(t *testing.T) {
	assert.Equal(t, "Query Parameters", SlugTitle("guide/query-parameters.md"))
	assert.Equal(t, "Getting Started", SlugTitle("guide/getting_started.md"))
	assert.Equal(t, "Guide", SlugTitle("guide/README.md"))
	assert.Equal(t, "Advanced", SlugTitle("guide/advanced/index.md"))
	assert.Equal(t, "", SlugTitle("README.md"))
}
