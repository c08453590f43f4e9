package docs

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// Target is where a sidebar reference points.
type Target struct {
	// File is the Markdown source relative to the docs root (forward slashes).
	// Empty for external links.
	File string
	// Route is the page path the generator serves, relative to the site base.
	Route    string
	External bool
}

// ResolveRef maps a sidebar reference to its source file and route the way
// the generator does: "" is the prefix's README, "x" is x.md, "x/" is
// x/README.md and a leading "/" resolves from the docs root. A "#fragment"
// is carried over to the route.
func ResolveRef(prefix, ref string) Target {
	if config.IsExternal(ref) {
		return Target{Route: ref, External: true}
	}

	ref, fragment, _ := strings.Cut(ref, "#")
	if fragment != "" {
		fragment = "#" + fragment
	}

	p := ref
	if !strings.HasPrefix(ref, "/") {
		p = prefix + ref
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	var file, route string
	switch {
	case strings.HasSuffix(p, "/"):
		file, route = p+"README.md", p
	case strings.EqualFold(path.Base(p), "README.md"):
		file, route = p, path.Dir(p)+"/"
	case strings.HasSuffix(p, ".md"):
		file, route = p, strings.TrimSuffix(p, ".md")+".html"
	case strings.HasSuffix(p, ".html"):
		file, route = strings.TrimSuffix(p, ".html")+".md", p
	default:
		file, route = p+".md", p+".html"
	}
	if route == "//" {
		route = "/"
	}
	return Target{File: strings.TrimPrefix(file, "/"), Route: route + fragment}
}

// SlugTitle turns a reference into a readable title: "query-parameters"
// becomes "Query Parameters" and a README takes its directory's name.
func SlugTitle(file string) string {
	name := strings.TrimSuffix(path.Base(file), path.Ext(file))
	if strings.EqualFold(name, "README") || strings.EqualFold(name, "index") {
		name = path.Base(path.Dir(file))
	}
	if name == "." || name == "/" || name == "" {
		return ""
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(name)
}
