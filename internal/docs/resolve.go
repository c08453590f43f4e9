// Package docs resolves sidebar references against the Markdown sources
// under the docs root.
package docs

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/forge"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
	"git.home.luguber.info/inful/docsite/internal/git"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/observability"
)

type resolver struct {
	theme     config.ThemeConfig
	root      string
	forgeType forge.Type
	history   *git.History
}

// Resolve walks every sidebar of cfg and resolves each reference against
// docsRoot. Missing documents are recorded on the returned Site, not
// reported as errors.
func Resolve(ctx context.Context, cfg *config.SiteConfig, docsRoot string) (*Site, error) {
	if cfg == nil {
		return nil, derrors.InternalError("resolve called without a configuration", nil)
	}
	info, err := os.Stat(docsRoot)
	if err != nil {
		return nil, derrors.FileSystemError("stat", docsRoot, err)
	}
	if !info.IsDir() {
		return nil, derrors.FileSystemError("stat", docsRoot, errors.New("docs root is not a directory"))
	}

	ctx = observability.WithStage(ctx, "resolve")
	r := &resolver{
		theme:     cfg.ThemeConfig,
		root:      docsRoot,
		forgeType: forge.DetectForgeType(cfg.ThemeConfig.EditRepo()),
	}
	if r.theme.LastUpdated.Enabled {
		r.history = openHistory(ctx, docsRoot)
	}

	site := &Site{DocsRoot: docsRoot, Sidebars: make([]Sidebar, 0, len(cfg.ThemeConfig.Sidebar))}
	for _, sb := range cfg.ThemeConfig.Sidebar {
		out := Sidebar{Prefix: sb.Prefix, Sections: make([]Section, 0, len(sb.Sections))}
		for _, sec := range sb.Sections {
			resolved, err := r.section(ctx, sb.Prefix, sec)
			if err != nil {
				return nil, err
			}
			out.Sections = append(out.Sections, resolved)
		}
		site.Sidebars = append(site.Sidebars, out)
	}

	if missing := site.Missing(); len(missing) > 0 {
		observability.WarnContext(ctx, "Sidebar references missing documents", logfields.Count(len(missing)))
	}
	return site, nil
}

func openHistory(ctx context.Context, docsRoot string) *git.History {
	h, err := git.OpenHistory(docsRoot)
	if err != nil {
		if errors.Is(err, git.ErrNotRepository) {
			observability.DebugContext(ctx, "Docs root is not in a git work tree; skipping last updated", logfields.Path(docsRoot))
		} else {
			observability.WarnContext(ctx, "Git history unavailable", logfields.Path(docsRoot), logfields.Error(err))
		}
		return nil
	}
	return h
}

func (r *resolver) section(ctx context.Context, prefix string, sec config.SidebarSection) (Section, error) {
	out := Section{Title: sec.Title, Collapsable: sec.Collapsable, Children: make([]Child, 0, len(sec.Children))}
	if sec.Path != "" {
		link := r.page(ctx, prefix, config.SidebarChild{Ref: sec.Path, Text: sec.Title})
		out.Link = &link
	}
	for _, c := range sec.Children {
		if err := ctx.Err(); err != nil {
			return Section{}, err
		}
		if c.Section != nil {
			nested, err := r.section(ctx, prefix, *c.Section)
			if err != nil {
				return Section{}, err
			}
			out.Children = append(out.Children, Child{Section: &nested})
			continue
		}
		page := r.page(ctx, prefix, c)
		out.Children = append(out.Children, Child{Page: &page})
	}
	return out, nil
}

func (r *resolver) page(ctx context.Context, prefix string, c config.SidebarChild) Page {
	target := ResolveRef(prefix, c.Ref)
	p := Page{Ref: c.Ref, Text: c.Text, Route: target.Route, External: target.External}
	if target.External {
		return p
	}

	file := r.locate(target.File)
	p.File = file
	abs := filepath.Join(r.root, filepath.FromSlash(file))
	content, err := os.ReadFile(abs) // #nosec G304 -- path is built from the configured docs root
	switch {
	case err == nil:
		p.Exists = true
		p.Title = pageTitle(ctx, file, content)
	case errors.Is(err, os.ErrNotExist):
		observability.DebugContext(ctx, "Document not found", logfields.Document(c.Ref), logfields.File(file))
		p.Title = SlugTitle(file)
	default:
		observability.WarnContext(ctx, "Document unreadable", logfields.File(file), logfields.Error(err))
		p.Title = SlugTitle(file)
	}

	if r.theme.EditLinks {
		p.EditURL = forge.GenerateEditURL(r.forgeType, r.theme.EditRepo(), r.theme.DocsBranch, r.theme.DocsDir, file)
	}
	if p.Exists && r.history != nil {
		p.LastUpdated = r.lastUpdated(ctx, abs)
	}
	return p
}

// locate falls back from README.md to index.md, which the generator
// accepts as a directory index as well.
func (r *resolver) locate(file string) string {
	if path.Base(file) != "README.md" {
		return file
	}
	if _, err := os.Stat(filepath.Join(r.root, filepath.FromSlash(file))); err == nil {
		return file
	}
	index := path.Join(path.Dir(file), "index.md")
	if _, err := os.Stat(filepath.Join(r.root, filepath.FromSlash(index))); err == nil {
		return index
	}
	return file
}

func (r *resolver) lastUpdated(ctx context.Context, abs string) *time.Time {
	when, ok, err := r.history.LastUpdated(abs)
	if err != nil {
		gerr := derrors.GitHistoryError(abs, err)
		observability.WarnContext(ctx, gerr.Message, logfields.File(abs), logfields.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	return &when
}

// pageTitle picks the frontmatter title, then the first level-1 heading,
// then the file's slug.
func pageTitle(ctx context.Context, file string, content []byte) string {
	fields, body, err := frontmatter.Parse(content)
	if err != nil {
		observability.WarnContext(ctx, "Ignoring unreadable frontmatter", logfields.File(file), logfields.Error(err))
		fields, body = nil, content
	}
	if title := frontmatter.String(fields, "title"); title != "" {
		return title
	}
	if title := markdown.Title(body); title != "" {
		return title
	}
	return SlugTitle(file)
}
