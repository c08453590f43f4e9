package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/check"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Docs   string `help:"Docs root (default: docsDir next to the configuration file)" type:"path"`
	Strict bool   `help:"Fail when sidebar references point at missing documents"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	checker := check.NewChecker(check.Options{
		ConfigPath: root.Config,
		DocsRoot:   v.Docs,
		Strict:     v.Strict,
	}, nil)

	res, err := checker.Run(context.Background(), metrics.TriggerCLI)
	if err != nil {
		return err
	}

	out := g.out()
	fmt.Fprintf(out, "%s: configuration is valid (%d sidebars)\n", root.Config, len(res.Config.ThemeConfig.Sidebar))
	if res.Site != nil {
		fmt.Fprintf(out, "%d documents referenced, %d missing\n", len(res.Site.Pages()), len(res.Missing))
		for _, p := range res.Missing {
			fmt.Fprintf(out, "  missing: %s (%s)\n", p.File, p.Route)
		}
	}
	return nil
}
