// Package frontmatter splits YAML frontmatter from Markdown documents.
package frontmatter

import (
	"bytes"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter, had is false and body is
// the full input. Both LF and CRLF documents are handled.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := newline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes the frontmatter into a map. Documents
// without frontmatter yield an empty map.
func Parse(content []byte) (fields map[string]any, body []byte, err error) {
	fm, body, _, err := Split(content)
	if err != nil {
		return nil, nil, err
	}
	fields = map[string]any{}
	if len(fm) == 0 {
		return fields, body, nil
	}
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, body, nil
}

// String returns a trimmed string field, or "" when absent or not a string.
func String(fields map[string]any, key string) string {
	v, _ := fields[key].(string)
	return strings.TrimSpace(v)
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
