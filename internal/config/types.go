package config

// SiteConfig is the configuration object consumed by the documentation-site
// generator. Key names follow the generator's own contract so existing
// configurations can be transcribed one to one.
type SiteConfig struct {
	Base        string      `yaml:"base,omitempty"`
	Title       string      `yaml:"title,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Head        []HeadTag   `yaml:"head,omitempty"`
	ThemeConfig ThemeConfig `yaml:"themeConfig"`
}

// HeadTag is an extra tag injected into every page's <head>.
// In YAML it is written as [tag, {attr: value}] with an optional third
// element holding the tag's inner content, or as a {tag, attrs, content}
// mapping.
type HeadTag struct {
	Tag     string
	Attrs   Attributes
	Content string
}

// Attr is a single HTML attribute.
type Attr struct {
	Name  string
	Value string
}

// Attributes is an ordered attribute list; order is preserved from the source.
type Attributes []Attr

// Get returns the value of the named attribute.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// ThemeConfig holds the default theme's settings.
type ThemeConfig struct {
	Repo         string      `yaml:"repo,omitempty"`
	RepoLabel    string      `yaml:"repoLabel,omitempty"`
	DocsRepo     string      `yaml:"docsRepo,omitempty"`
	DocsDir      string      `yaml:"docsDir,omitempty"`
	DocsBranch   string      `yaml:"docsBranch,omitempty"`
	EditLinks    bool        `yaml:"editLinks,omitempty"`
	EditLinkText string      `yaml:"editLinkText,omitempty"`
	Nav          []NavItem   `yaml:"nav,omitempty"`
	Sidebar      Sidebars    `yaml:"sidebar,omitempty"`
	LastUpdated  LastUpdated `yaml:"lastUpdated,omitempty"`
}

// EditRepo is the repository edit links point at: docsRepo when set, repo otherwise.
func (t ThemeConfig) EditRepo() string {
	if t.DocsRepo != "" {
		return t.DocsRepo
	}
	return t.Repo
}

// NavItem is a header navigation entry. Exactly one of Link or Items is set:
// a link entry, or a dropdown (e.g. a version switcher).
type NavItem struct {
	Text  string    `yaml:"text"`
	Link  string    `yaml:"link,omitempty"`
	Items []NavItem `yaml:"items,omitempty"`
}

// IsDropdown reports whether the item groups child items instead of linking.
func (n NavItem) IsDropdown() bool { return len(n.Items) > 0 }

// Sidebar maps one URL path prefix to its ordered sections.
type Sidebar struct {
	Prefix   string
	Sections []SidebarSection
}

// Sidebars keeps sidebars in declaration order. In YAML it is a mapping from
// path prefix to a list of sections.
type Sidebars []Sidebar

// Get returns the sections declared for prefix.
func (s Sidebars) Get(prefix string) ([]SidebarSection, bool) {
	for _, sb := range s {
		if sb.Prefix == prefix {
			return sb.Sections, true
		}
	}
	return nil, false
}

// Prefixes returns the declared prefixes in order.
func (s Sidebars) Prefixes() []string {
	out := make([]string, 0, len(s))
	for _, sb := range s {
		out = append(out, sb.Prefix)
	}
	return out
}

// SidebarSection is a titled group of document references.
// Collapsable defaults to true when omitted, as in the generator.
type SidebarSection struct {
	Title       string
	Path        string
	Collapsable bool
	Children    []SidebarChild
}

// SidebarChild is either a document reference (optionally with an explicit
// link text) or a nested section.
type SidebarChild struct {
	Ref     string
	Text    string
	Section *SidebarSection
}

// IsSection reports whether the child is a nested section.
func (c SidebarChild) IsSection() bool { return c.Section != nil }

// Refs returns every document reference in the section, depth first, in
// presentation order.
func (s SidebarSection) Refs() []string {
	var refs []string
	for _, child := range s.Children {
		if child.Section != nil {
			refs = append(refs, child.Section.Refs()...)
			continue
		}
		refs = append(refs, child.Ref)
	}
	return refs
}

// LastUpdated is either a boolean flag or a label. A non-empty label implies
// the feature is enabled.
type LastUpdated struct {
	Enabled bool
	Text    string
}

// DefaultLastUpdatedLabel is the label the generator shows when lastUpdated is true.
const DefaultLastUpdatedLabel = "Last Updated"

// Label returns the label shown next to the timestamp.
func (l LastUpdated) Label() string {
	if l.Text != "" {
		return l.Text
	}
	return DefaultLastUpdatedLabel
}

// IsZero lets yaml omitempty drop a disabled flag.
func (l LastUpdated) IsZero() bool { return !l.Enabled && l.Text == "" }
