package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// FieldError is one structural problem found by Validate.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

var tagNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// Validate checks the structural properties of a configuration and reports
// every violation at once as a validation DocsiteError wrapping the joined
// FieldErrors.
func Validate(c *SiteConfig) error {
	if c == nil {
		return derrors.ValidationFailed(errors.New("configuration is nil"))
	}
	v := &validator{}
	v.validateBase(c.Base)
	v.validateHead(c.Head)
	v.validateTheme(&c.ThemeConfig)
	if len(v.issues) == 0 {
		return nil
	}
	return derrors.ValidationFailed(errors.Join(v.issues...))
}

// Issues returns the individual FieldErrors carried by a Validate error.
func Issues(err error) []*FieldError {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		var fe *FieldError
		if errors.As(err, &fe) {
			return []*FieldError{fe}
		}
		return nil
	}
	var out []*FieldError
	for _, e := range joined.Unwrap() {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, fe)
		}
	}
	return out
}

type validator struct {
	issues []error
}

func (v *validator) fail(field, format string, args ...any) {
	v.issues = append(v.issues, &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

func (v *validator) validateBase(base string) {
	if base == "" {
		return
	}
	if !strings.HasPrefix(base, "/") || !strings.HasSuffix(base, "/") {
		v.fail("base", "must start and end with '/', got %q", base)
	}
	if strings.Contains(base, "://") || strings.ContainsAny(base, " \t?#") {
		v.fail("base", "must be a URL path, got %q", base)
	}
}

func (v *validator) validateHead(head []HeadTag) {
	for i, tag := range head {
		field := fmt.Sprintf("head[%d]", i)
		if !tagNamePattern.MatchString(tag.Tag) {
			v.fail(field, "invalid tag name %q", tag.Tag)
		}
		seen := make(map[string]bool, len(tag.Attrs))
		for _, attr := range tag.Attrs {
			if strings.TrimSpace(attr.Name) == "" {
				v.fail(field, "attribute name cannot be empty")
				continue
			}
			if seen[attr.Name] {
				v.fail(field, "duplicate attribute %q", attr.Name)
			}
			seen[attr.Name] = true
		}
	}
}

func (v *validator) validateTheme(t *ThemeConfig) {
	if t.EditLinks && t.EditRepo() == "" {
		v.fail("themeConfig.editLinks", "requires repo or docsRepo")
	}
	v.validateNav(t.Nav, "themeConfig.nav")
	v.validateSidebars(t.Sidebar)
}

// validateNav enforces that every item carries exactly one of link or items.
func (v *validator) validateNav(items []NavItem, field string) {
	for i, item := range items {
		f := fmt.Sprintf("%s[%d]", field, i)
		if strings.TrimSpace(item.Text) == "" {
			v.fail(f, "text is required")
		}
		hasLink, hasItems := item.Link != "", len(item.Items) > 0
		switch {
		case hasLink && hasItems:
			v.fail(f, "link and items are mutually exclusive")
		case !hasLink && !hasItems:
			v.fail(f, "one of link or items is required")
		}
		v.validateNav(item.Items, f+".items")
	}
}

func (v *validator) validateSidebars(sidebars Sidebars) {
	seen := make(map[string]bool, len(sidebars))
	for i, sb := range sidebars {
		field := fmt.Sprintf("themeConfig.sidebar[%q]", sb.Prefix)
		if !strings.HasPrefix(sb.Prefix, "/") || !strings.HasSuffix(sb.Prefix, "/") {
			v.fail(fmt.Sprintf("themeConfig.sidebar[%d]", i), "prefix must start and end with '/', got %q", sb.Prefix)
		}
		if seen[sb.Prefix] {
			v.fail(field, "duplicate prefix")
		}
		seen[sb.Prefix] = true
		if len(sb.Sections) == 0 {
			v.fail(field, "at least one section is required")
		}
		for j, section := range sb.Sections {
			v.validateSection(section, fmt.Sprintf("%s[%d]", field, j))
		}
	}
}

func (v *validator) validateSection(s SidebarSection, field string) {
	if strings.TrimSpace(s.Title) == "" {
		v.fail(field, "title is required")
	}
	if len(s.Children) == 0 {
		v.fail(field, "children must not be empty")
	}
	for i, child := range s.Children {
		f := fmt.Sprintf("%s.children[%d]", field, i)
		if child.Section != nil {
			v.validateSection(*child.Section, f)
			continue
		}
		if child.Ref != strings.TrimSpace(child.Ref) {
			v.fail(f, "reference %q has surrounding whitespace", child.Ref)
		}
		if IsExternal(child.Ref) {
			continue
		}
		for _, seg := range strings.Split(child.Ref, "/") {
			if seg == ".." {
				v.fail(f, "reference %q escapes the sidebar prefix", child.Ref)
				break
			}
		}
	}
}

// IsExternal reports whether a sidebar reference points outside the site.
func IsExternal(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "mailto:")
}
