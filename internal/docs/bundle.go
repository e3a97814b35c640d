// Package docs turns a directory of Markdown files into rendered bundles
// served next to the API reference.
package docs

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	derrors "git.home.luguber.info/inful/apisite/internal/docs/errors"
	"git.home.luguber.info/inful/apisite/internal/frontmatter"
)

// Bundle is one rendered document.
type Bundle struct {
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Frontmatter map[string]any `json:"frontmatter"`
	HTML        string         `json:"html"`
	Fingerprint string         `json:"fingerprint"`
}

// Bundler renders a document source. Slug and Name are filled in by the
// caller when the bundler cannot know them.
type Bundler interface {
	Bundle(source []byte) (Bundle, error)
}

// GoldmarkBundler renders GitHub-flavoured Markdown with goldmark.
type GoldmarkBundler struct {
	md goldmark.Markdown
}

// NewGoldmarkBundler returns a bundler with the GFM extension and automatic
// heading IDs enabled.
func NewGoldmarkBundler() *GoldmarkBundler {
	return &GoldmarkBundler{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Bundle splits the header, renders the body and fingerprints the result.
func (b *GoldmarkBundler) Bundle(source []byte) (Bundle, error) {
	doc, err := frontmatter.Parse(source)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", derrors.ErrInvalidFrontmatter, err)
	}

	var out bytes.Buffer
	if err := b.md.Convert(doc.Body, &out); err != nil {
		return Bundle{}, fmt.Errorf("render markdown: %w", err)
	}

	fp, err := frontmatter.Fingerprint(doc.Fields, doc.Body)
	if err != nil {
		return Bundle{}, fmt.Errorf("fingerprint: %w", err)
	}

	return Bundle{
		Name:        doc.Title(),
		Frontmatter: doc.Fields,
		HTML:        out.String(),
		Fingerprint: fp,
	}, nil
}
