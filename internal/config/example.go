package config

// Example returns the configuration of the Laravel Orion documentation site.
// It is written by `init` and doubles as the reference fixture in tests.
func Example() *SiteConfig {
	return &SiteConfig{
		Base:        "/docs/",
		Title:       "Laravel Orion",
		Description: "The simplest way to create REST API with Laravel",
		Head: []HeadTag{
			{Tag: "link", Attrs: Attributes{{Name: "rel", Value: "shortcut icon"}, {Name: "href", Value: "/favicon.ico"}}},
		},
		ThemeConfig: ThemeConfig{
			Repo:      "laravel-orion/laravel-orion",
			DocsRepo:  "laravel-orion/docs",
			DocsDir:   "docs",
			EditLinks: true,
			Nav: []NavItem{
				{Text: "Home", Link: "/"},
				{Text: "Guide", Link: "/guide/"},
			},
			Sidebar: Sidebars{
				{
					Prefix: "/guide/",
					Sections: []SidebarSection{
						{
							Title:       "Guide",
							Collapsable: false,
							Children: refs(
								"",
								"getting-started",
								"models",
								"relationships",
								"hooks",
								"query-parameters",
								"security",
								"responses",
							),
						},
					},
				},
			},
			LastUpdated: LastUpdated{Enabled: true, Text: "Last Updated"},
		},
	}
}

func refs(paths ...string) []SidebarChild {
	out := make([]SidebarChild, 0, len(paths))
	for _, p := range paths {
		out = append(out, SidebarChild{Ref: p})
	}
	return out
}
