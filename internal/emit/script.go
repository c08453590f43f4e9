package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	indentUnit = "  "
	lineWidth  = 80
)

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// scriptWriter prints a yaml node tree as JSON or as a CommonJS module.
// Collections of scalars that fit the line width stay on one line.
type scriptWriter struct {
	buf bytes.Buffer
	js  bool
}

func renderScript(node *yaml.Node, format Format) ([]byte, error) {
	w := &scriptWriter{js: format == FormatJS}
	if w.js {
		w.buf.WriteString("module.exports = ")
	}
	if err := w.value(node, 0); err != nil {
		return nil, err
	}
	w.buf.WriteString("\n")
	return w.buf.Bytes(), nil
}

func (w *scriptWriter) value(n *yaml.Node, depth int) error {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind == yaml.ScalarNode {
		w.buf.WriteString(w.scalar(n))
		return nil
	}

	if flat, ok := w.inline(n); ok && len(flat)+depth*len(indentUnit) <= lineWidth {
		w.buf.WriteString(flat)
		return nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		w.buf.WriteString("{\n")
		for i := 0; i+1 < len(n.Content); i += 2 {
			w.indent(depth + 1)
			w.buf.WriteString(w.key(n.Content[i].Value))
			w.buf.WriteString(": ")
			if err := w.value(n.Content[i+1], depth+1); err != nil {
				return err
			}
			w.separator(i+2 < len(n.Content))
		}
		w.indent(depth)
		w.buf.WriteString("}")
	case yaml.SequenceNode:
		w.buf.WriteString("[\n")
		for i, c := range n.Content {
			w.indent(depth + 1)
			if err := w.value(c, depth+1); err != nil {
				return err
			}
			w.separator(i+1 < len(n.Content))
		}
		w.indent(depth)
		w.buf.WriteString("]")
	default:
		return fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
	return nil
}

// inline renders n on one line when it holds only scalars, or collections
// of scalars.
func (w *scriptWriter) inline(n *yaml.Node) (string, bool) {
	return w.flat(n, 2)
}

func (w *scriptWriter) flat(n *yaml.Node, budget int) (string, bool) {
	if n.Kind == yaml.ScalarNode {
		return w.scalar(n), true
	}
	if budget == 0 {
		return "", false
	}
	var parts []string
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, ok := w.flat(n.Content[i+1], budget-1)
			if !ok {
				return "", false
			}
			parts = append(parts, w.key(n.Content[i].Value)+": "+v)
		}
		if len(parts) == 0 {
			return "{}", true
		}
		if w.js {
			return "{ " + strings.Join(parts, ", ") + " }", true
		}
		return "{" + strings.Join(parts, ", ") + "}", true
	case yaml.SequenceNode:
		for _, c := range n.Content {
			v, ok := w.flat(c, budget-1)
			if !ok {
				return "", false
			}
			parts = append(parts, v)
		}
		return "[" + strings.Join(parts, ", ") + "]", true
	default:
		return "", false
	}
}

func (w *scriptWriter) scalar(n *yaml.Node) string {
	switch n.ShortTag() {
	case "!!bool", "!!int", "!!float":
		return n.Value
	case "!!null":
		return "null"
	default:
		return w.str(n.Value)
	}
}

func (w *scriptWriter) key(k string) string {
	if w.js && identRe.MatchString(k) {
		return k
	}
	return w.str(k)
}

func (w *scriptWriter) str(s string) string {
	if w.js {
		return jsQuote(s)
	}
	return jsonQuote(s)
}

func (w *scriptWriter) indent(depth int) {
	w.buf.WriteString(strings.Repeat(indentUnit, depth))
}

func (w *scriptWriter) separator(more bool) {
	if more {
		w.buf.WriteString(",")
	}
	w.buf.WriteString("\n")
}

func jsonQuote(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

func jsQuote(s string) string {
	return "'" + jsEscaper.Replace(s) + "'"
}
