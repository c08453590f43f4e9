package emit

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// renderHead writes the head tags as an HTML fragment, one element per line.
func renderHead(tags []config.HeadTag) ([]byte, error) {
	var buf bytes.Buffer
	for i, tag := range tags {
		if err := html.Render(&buf, headNode(tag)); err != nil {
			return nil, fmt.Errorf("head[%d]: %w", i, err)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func headNode(tag config.HeadTag) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag.Tag,
		DataAtom: atom.Lookup([]byte(tag.Tag)),
	}
	for _, a := range tag.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Name, Val: a.Value})
	}
	if tag.Content != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: tag.Content})
	}
	return n
}
