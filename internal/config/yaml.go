package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

var headTagKeys = map[string]bool{"tag": true, "attrs": true, "content": true}

// UnmarshalYAML accepts [tag, {attrs}, content?] or {tag, attrs, content}.
func (h *HeadTag) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) == 0 || len(node.Content) > 3 {
			return fmt.Errorf("line %d: head tag must have 1 to 3 elements, got %d", node.Line, len(node.Content))
		}
		if node.Content[0].Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: head tag name must be a string", node.Line)
		}
		h.Tag = node.Content[0].Value
		if len(node.Content) > 1 {
			if err := node.Content[1].Decode(&h.Attrs); err != nil {
				return err
			}
		}
		if len(node.Content) > 2 {
			if node.Content[2].Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: head tag content must be a string", node.Line)
			}
			h.Content = node.Content[2].Value
		}
		return nil
	case yaml.MappingNode:
		if err := checkKeys(node, headTagKeys, "head tag"); err != nil {
			return err
		}
		var aux struct {
			Tag     string     `yaml:"tag"`
			Attrs   Attributes `yaml:"attrs"`
			Content string     `yaml:"content"`
		}
		if err := node.Decode(&aux); err != nil {
			return err
		}
		h.Tag, h.Attrs, h.Content = aux.Tag, aux.Attrs, aux.Content
		return nil
	default:
		return fmt.Errorf("line %d: head tag must be a list or a mapping", node.Line)
	}
}

// MarshalYAML writes the compact [tag, {attrs}] form.
func (h HeadTag) MarshalYAML() (any, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	seq.Content = append(seq.Content, strNode(h.Tag), h.Attrs.node())
	if h.Content != "" {
		seq.Content = append(seq.Content, strNode(h.Content))
	}
	return seq, nil
}

// UnmarshalYAML reads a mapping while keeping attribute order.
func (a *Attributes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*a = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: attributes must be a mapping", node.Line)
	}
	attrs := make(Attributes, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: attribute %q must have a scalar value", val.Line, key.Value)
		}
		attrs = append(attrs, Attr{Name: key.Value, Value: val.Value})
	}
	*a = attrs
	return nil
}

// MarshalYAML writes the attributes as a flow mapping.
func (a Attributes) MarshalYAML() (any, error) {
	return a.node(), nil
}

func (a Attributes) node() *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	for _, attr := range a {
		m.Content = append(m.Content, strNode(attr.Name), strNode(attr.Value))
	}
	return m
}

// UnmarshalYAML reads the prefix -> sections mapping in declaration order.
func (s *Sidebars) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*s = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sidebar must be a mapping from path prefix to sections", node.Line)
	}
	out := make(Sidebars, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var sections []SidebarSection
		if err := val.Decode(&sections); err != nil {
			return fmt.Errorf("sidebar %q: %w", key.Value, err)
		}
		out = append(out, Sidebar{Prefix: key.Value, Sections: sections})
	}
	*s = out
	return nil
}

// MarshalYAML writes the sidebars as a mapping, keeping order.
func (s Sidebars) MarshalYAML() (any, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, sb := range s {
		var val yaml.Node
		if err := val.Encode(sb.Sections); err != nil {
			return nil, err
		}
		m.Content = append(m.Content, strNode(sb.Prefix), &val)
	}
	return m, nil
}

type sectionYAML struct {
	Title       string         `yaml:"title"`
	Path        string         `yaml:"path,omitempty"`
	Collapsable bool           `yaml:"collapsable"`
	Children    []SidebarChild `yaml:"children"`
}

var sectionKeys = map[string]bool{"title": true, "path": true, "collapsable": true, "children": true}

// UnmarshalYAML rejects unknown keys (a misspelt "collapsible" is silently
// ignored by the generator) and defaults collapsable to true.
func (s *SidebarSection) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sidebar section must be a mapping", node.Line)
	}
	if err := checkKeys(node, sectionKeys, "sidebar section"); err != nil {
		return err
	}
	var aux struct {
		Title       string         `yaml:"title"`
		Path        string         `yaml:"path"`
		Collapsable *bool          `yaml:"collapsable"`
		Children    []SidebarChild `yaml:"children"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	s.Title, s.Path, s.Children = aux.Title, aux.Path, aux.Children
	s.Collapsable = aux.Collapsable == nil || *aux.Collapsable
	return nil
}

// MarshalYAML always writes collapsable explicitly.
func (s SidebarSection) MarshalYAML() (any, error) {
	return sectionYAML{Title: s.Title, Path: s.Path, Collapsable: s.Collapsable, Children: s.Children}, nil
}

// UnmarshalYAML accepts "ref", [ref, text] or a nested section mapping.
func (c *SidebarChild) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return fmt.Errorf("line %d: empty sidebar child (use '' for the section README)", node.Line)
		}
		c.Ref = node.Value
		return nil
	case yaml.SequenceNode:
		if len(node.Content) != 2 || node.Content[0].Kind != yaml.ScalarNode || node.Content[1].Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: sidebar link must be [path, text]", node.Line)
		}
		c.Ref, c.Text = node.Content[0].Value, node.Content[1].Value
		return nil
	case yaml.MappingNode:
		var section SidebarSection
		if err := node.Decode(&section); err != nil {
			return err
		}
		c.Section = &section
		return nil
	default:
		return fmt.Errorf("line %d: unsupported sidebar child", node.Line)
	}
}

// MarshalYAML mirrors UnmarshalYAML.
func (c SidebarChild) MarshalYAML() (any, error) {
	switch {
	case c.Section != nil:
		return *c.Section, nil
	case c.Text != "":
		return &yaml.Node{
			Kind:    yaml.SequenceNode,
			Style:   yaml.FlowStyle,
			Content: []*yaml.Node{strNode(c.Ref), strNode(c.Text)},
		}, nil
	default:
		return strNode(c.Ref), nil
	}
}

// UnmarshalYAML accepts a boolean or a label string.
func (l *LastUpdated) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: lastUpdated must be a boolean or a label", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*l = LastUpdated{}
	case "!!bool":
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return err
		}
		*l = LastUpdated{Enabled: enabled}
	default:
		*l = LastUpdated{Enabled: node.Value != "", Text: node.Value}
	}
	return nil
}

// MarshalYAML writes the label when one is set, the flag otherwise.
func (l LastUpdated) MarshalYAML() (any, error) {
	if l.Enabled && l.Text != "" {
		return strNode(l.Text), nil
	}
	return l.Enabled, nil
}

// checkKeys rejects mapping keys outside known. Custom unmarshalers decode
// through node.Decode, which does not inherit the strict decoder setting.
func checkKeys(node *yaml.Node, known map[string]bool, what string) error {
	for i := 0; i < len(node.Content); i += 2 {
		if k := node.Content[i].Value; !known[k] {
			return fmt.Errorf("line %d: unknown %s key %q", node.Content[i].Line, what, k)
		}
	}
	return nil
}

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
