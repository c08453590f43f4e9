package config

// Generator defaults made explicit so emitted configurations and resolved
// edit links agree.
const (
	DefaultBase         = "/"
	DefaultDocsBranch   = "master"
	DefaultEditLinkText = "Edit this page"
)

// ApplyDefaults fills unset fields with the generator's defaults.
// Edit-link settings are only defaulted when edit links are enabled.
func ApplyDefaults(c *SiteConfig) {
	if c == nil {
		return
	}
	if c.Base == "" {
		c.Base = DefaultBase
	}
	t := &c.ThemeConfig
	if t.EditLinks {
		if t.DocsBranch == "" {
			t.DocsBranch = DefaultDocsBranch
		}
		if t.EditLinkText == "" {
			t.EditLinkText = DefaultEditLinkText
		}
	}
}
