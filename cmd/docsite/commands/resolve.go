package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/docsite/internal/check"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Docs   string `help:"Docs root (default: docsDir next to the configuration file)" type:"path"`
	Format string `short:"f" help:"Output format" enum:"text,json" default:"text"`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	docsRoot := r.Docs
	if docsRoot == "" {
		docsRoot = check.DefaultDocsRoot(root.Config, cfg)
	}

	site, err := docs.Resolve(context.Background(), cfg, docsRoot)
	if err != nil {
		return err
	}

	if r.Format == "json" {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(site); err != nil {
			return derrors.EmitFailed("json", err)
		}
		return nil
	}
	return writeSiteText(g.out(), site)
}

func writeSiteText(w io.Writer, site *docs.Site) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, sb := range site.Sidebars {
		fmt.Fprintf(tw, "%s\n", sb.Prefix)
		for i := range sb.Sections {
			writeSectionText(tw, &sb.Sections[i], 1)
		}
	}
	return tw.Flush()
}

func writeSectionText(w io.Writer, s *docs.Section, depth int) {
	indent := strings.Repeat("  ", depth)
	if s.Link != nil {
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", indent, s.Title, s.Link.Route, pageStatus(s.Link))
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, s.Title)
	}
	for _, c := range s.Children {
		if c.Section != nil {
			writeSectionText(w, c.Section, depth+1)
			continue
		}
		p := c.Page
		fmt.Fprintf(w, "%s  %s\t%s\t%s\n", indent, p.Route, p.Label(), pageStatus(p))
	}
}

func pageStatus(p *docs.Page) string {
	switch {
	case p.External:
		return "external"
	case !p.Exists:
		return p.File + " (missing)"
	default:
		return p.File
	}
}
