package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments made during normalization.
type NormalizationResult struct{ Warnings []string }

// Normalize canonicalizes path-like fields in place and reports every
// coercion. It runs before defaults and validation.
func Normalize(c *SiteConfig) *NormalizationResult {
	res := &NormalizationResult{}
	if c == nil {
		return res
	}

	if c.Base != "" {
		c.Base = res.slashed("base", c.Base)
	}

	t := &c.ThemeConfig
	if d := strings.Trim(strings.TrimSpace(t.DocsDir), "/"); d != t.DocsDir {
		res.changed("themeConfig.docsDir", t.DocsDir, d)
		t.DocsDir = d
	}

	normalizeNav(t.Nav, "themeConfig.nav", res)

	for i := range t.Sidebar {
		sb := &t.Sidebar[i]
		sb.Prefix = res.slashed(fmt.Sprintf("themeConfig.sidebar[%d]", i), sb.Prefix)
	}
	return res
}

func normalizeNav(items []NavItem, field string, res *NormalizationResult) {
	for i := range items {
		item := &items[i]
		f := fmt.Sprintf("%s[%d]", field, i)
		if l := strings.TrimSpace(item.Link); l != item.Link {
			res.changed(f+".link", item.Link, l)
			item.Link = l
		}
		normalizeNav(item.Items, f+".items", res)
	}
}

// slashed trims v and makes it start and end with a slash.
func (r *NormalizationResult) slashed(field, v string) string {
	n := strings.TrimSpace(v)
	if !strings.HasPrefix(n, "/") {
		n = "/" + n
	}
	if !strings.HasSuffix(n, "/") {
		n += "/"
	}
	if n != v {
		r.changed(field, v, n)
	}
	return n
}

func (r *NormalizationResult) changed(field string, from, to any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to))
}
