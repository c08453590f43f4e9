// Package markdown extracts page metadata from Markdown bodies.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a section heading found in a document.
type Heading struct {
	Level int
	Text  string
}

// Headings parses a Markdown body (frontmatter already removed) and returns
// its headings in document order.
func Headings(body []byte) []Heading {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var out []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		out = append(out, Heading{Level: h.Level, Text: plainText(h, body)})
		return gmast.WalkSkipChildren, nil
	})
	return out
}

// Title returns the text of the first level-1 heading, or "".
func Title(body []byte) string {
	for _, h := range Headings(body) {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// plainText concatenates the text segments below n, dropping inline markup.
func plainText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
