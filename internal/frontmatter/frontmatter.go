// Package frontmatter splits `---` delimited YAML headers from Markdown
// documents and computes content fingerprints over both parts.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a YAML header
// but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter opening delimiter found but closing delimiter is missing")

// Document is a Markdown source separated into its header and body.
type Document struct {
	// Raw is the YAML header without delimiters. Nil when HasHeader is false.
	Raw       []byte
	Fields    map[string]any
	Body      []byte
	HasHeader bool
}

// Title returns the string "title" field, or "" when absent.
func (d Document) Title() string {
	if t, ok := d.Fields["title"].(string); ok {
		return t
	}
	return ""
}

// Parse splits content and decodes the header into Fields. Documents
// without a header get an empty, non-nil Fields map.
func Parse(content []byte) (Document, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Document{}, err
	}
	fields, err := ParseYAML(raw)
	if err != nil {
		return Document{}, fmt.Errorf("decode frontmatter: %w", err)
	}
	return Document{Raw: raw, Fields: fields, Body: body, HasHeader: had}, nil
}

// Split separates the YAML header from the Markdown body. Both LF and CRLF
// line endings are recognized; the style of the first line break wins.
func Split(content []byte) (header []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closing)
	if idx < 0 {
		// A closing delimiter on the final line has no trailing newline.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(content[start:], tail) {
			end := len(content) - len(tail)
			return content[start : end+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closing):], true, nil
}

// ParseYAML decodes a raw header into a map. An empty header yields an
// empty map.
func ParseYAML(header []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(header)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
