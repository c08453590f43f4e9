package docs

import "time"

// Site is the resolved view of every sidebar in a configuration.
type Site struct {
	DocsRoot string    `json:"docsRoot"`
	Sidebars []Sidebar `json:"sidebars"`
}

// Sidebar holds the resolved sections for one path prefix.
type Sidebar struct {
	Prefix   string    `json:"prefix"`
	Sections []Section `json:"sections"`
}

// Section mirrors config.SidebarSection with resolved children. Link is the
// section's own page when the title is clickable (config path).
type Section struct {
	Title       string  `json:"title"`
	Link        *Page   `json:"link,omitempty"`
	Collapsable bool    `json:"collapsable"`
	Children    []Child `json:"children"`
}

// Child is a resolved page or a nested section.
type Child struct {
	Page    *Page    `json:"page,omitempty"`
	Section *Section `json:"section,omitempty"`
}

// Page is a single sidebar entry.
type Page struct {
	Ref         string     `json:"ref"`
	Text        string     `json:"text,omitempty"`
	Route       string     `json:"route"`
	File        string     `json:"file,omitempty"`
	External    bool       `json:"external,omitempty"`
	Exists      bool       `json:"exists"`
	Title       string     `json:"title,omitempty"`
	EditURL     string     `json:"editUrl,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// Label is the text the sidebar shows for the page.
func (p Page) Label() string {
	if p.Text != "" {
		return p.Text
	}
	if p.Title != "" {
		return p.Title
	}
	return p.Route
}

// Pages returns every page in sidebar order, depth first. A section's link
// comes before its children.
func (s *Site) Pages() []Page {
	var out []Page
	for _, sb := range s.Sidebars {
		for i := range sb.Sections {
			out = sb.Sections[i].appendPages(out)
		}
	}
	return out
}

func (s *Section) appendPages(out []Page) []Page {
	if s.Link != nil {
		out = append(out, *s.Link)
	}
	for _, c := range s.Children {
		switch {
		case c.Page != nil:
			out = append(out, *c.Page)
		case c.Section != nil:
			out = c.Section.appendPages(out)
		}
	}
	return out
}

// Missing returns the local pages whose source file does not exist.
func (s *Site) Missing() []Page {
	var out []Page
	for _, p := range s.Pages() {
		if !p.External && !p.Exists {
			out = append(out, p)
		}
	}
	return out
}
