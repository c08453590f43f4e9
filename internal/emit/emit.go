// Package emit writes a site configuration in the formats the documentation
// generator reads.
package emit

import (
	"fmt"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// Format selects the emitted representation.
type Format string

const (
	FormatJS   Format = "js"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHead Format = "head"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJS, FormatJSON, FormatYAML, FormatHead}

// ParseFormat accepts a format name or a file extension (".mjs", ".yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "js", "cjs", "mjs":
		return FormatJS, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "head", "html":
		return FormatHead, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Output is a rendered configuration.
type Output struct {
	Format      Format
	Body        []byte
	Fingerprint string
}

// Bytes returns the body preceded by the fingerprint line, for formats that
// allow comments.
func (o *Output) Bytes() []byte {
	prefix := commentPrefix(o.Format)
	if prefix == "" || o.Fingerprint == "" {
		return o.Body
	}
	header := fmt.Sprintf("%s %s: %s\n", prefix, mdfp.FingerprintField, o.Fingerprint)
	return append([]byte(header), o.Body...)
}

func commentPrefix(f Format) string {
	switch f {
	case FormatJS:
		return "//"
	case FormatYAML:
		return "#"
	default:
		return ""
	}
}

// Render encodes cfg in the requested format. Key order, sidebar order and
// attribute order follow the configuration.
func Render(cfg *config.SiteConfig, format Format) (*Output, error) {
	if cfg == nil {
		return nil, derrors.InternalError("render called without a configuration", nil)
	}

	var (
		body []byte
		err  error
	)
	switch format {
	case FormatYAML:
		body, err = config.Marshal(cfg)
	case FormatJSON, FormatJS:
		var node yaml.Node
		if err = node.Encode(cfg); err == nil {
			body, err = renderScript(&node, format)
		}
	case FormatHead:
		body, err = renderHead(cfg.Head)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return nil, derrors.EmitFailed(string(format), err)
	}

	out := &Output{Format: format, Body: body}
	if format != FormatHead {
		out.Fingerprint = fingerprint(format, body)
	}
	return out, nil
}

func fingerprint(format Format, body []byte) string {
	return mdfp.CalculateFingerprintFromParts(string(format), string(body))
}
