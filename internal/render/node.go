// Package render transforms parsed documentation comments into serializable
// render nodes for the presentation layer.
package render

import (
	"encoding/json"
	"strings"
)

// NodeKind discriminates render nodes.
type NodeKind string

const (
	KindText       NodeKind = "Text"
	KindCodeSpan   NodeKind = "CodeSpan"
	KindFencedCode NodeKind = "FencedCode"
	KindLinkTag    NodeKind = "LinkTag"
)

// Sentinel link values used when a link cannot be resolved.
const (
	SentinelURL  = "about:blank"
	SentinelText = "unknown"
)

// Node is one render node. Only the fields of its kind are meaningful.
type Node struct {
	Kind     NodeKind
	Text     string
	Code     string
	Language string
	LinkURL  string
	LinkText string
}

// Text returns a text run.
func Text(s string) Node { return Node{Kind: KindText, Text: s} }

// CodeSpan returns an inline code node.
func CodeSpan(code string) Node { return Node{Kind: KindCodeSpan, Code: code} }

// FencedCode returns a code block node.
func FencedCode(language, code string) Node {
	return Node{Kind: KindFencedCode, Language: language, Code: code}
}

// Link returns a link node.
func Link(url, text string) Node { return Node{Kind: KindLinkTag, LinkURL: url, LinkText: text} }

type codeSpanJSON struct {
	Kind NodeKind `json:"kind"`
	Code string   `json:"code"`
}

type fencedCodeJSON struct {
	Kind     NodeKind `json:"kind"`
	Language string   `json:"language"`
	Code     string   `json:"code"`
}

type linkTagJSON struct {
	Kind     NodeKind `json:"kind"`
	LinkURL  string   `json:"linkUrl"`
	LinkText string   `json:"linkText"`
}

// MarshalJSON encodes text runs as bare strings and other nodes as tagged objects.
func (n Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case KindCodeSpan:
		return json.Marshal(codeSpanJSON{Kind: n.Kind, Code: n.Code})
	case KindFencedCode:
		return json.Marshal(fencedCodeJSON{Kind: n.Kind, Language: n.Language, Code: n.Code})
	case KindLinkTag:
		return json.Marshal(linkTagJSON{Kind: n.Kind, LinkURL: n.LinkURL, LinkText: n.LinkText})
	default:
		return json.Marshal(n.Text)
	}
}

// Content is a transformed node sequence.
type Content []Node

// MarshalJSON encodes a single text run as a bare string and anything else
// as an array.
func (c Content) MarshalJSON() ([]byte, error) {
	if len(c) == 1 && c[0].Kind == KindText {
		return json.Marshal(c[0].Text)
	}
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Node(c))
}

// String flattens the content to Markdown-flavored text.
func (c Content) String() string {
	var b strings.Builder
	for _, n := range c {
		writeMarkdown(&b, n)
	}
	return b.String()
}

// PlainText concatenates text runs and the visible text of other nodes,
// dropping all markup.
func (c Content) PlainText() string {
	var b strings.Builder
	for _, n := range c {
		switch n.Kind {
		case KindText:
			b.WriteString(n.Text)
		case KindCodeSpan, KindFencedCode:
			b.WriteString(n.Code)
		case KindLinkTag:
			b.WriteString(n.LinkText)
		}
	}
	return b.String()
}

func writeMarkdown(b *strings.Builder, n Node) {
	switch n.Kind {
	case KindCodeSpan:
		b.WriteString("`")
		b.WriteString(n.Code)
		b.WriteString("`")
	case KindFencedCode:
		b.WriteString("```")
		b.WriteString(n.Language)
		b.WriteString("\n")
		b.WriteString(n.Code)
		if !strings.HasSuffix(n.Code, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	case KindLinkTag:
		b.WriteString("[")
		b.WriteString(n.LinkText)
		b.WriteString("](")
		b.WriteString(n.LinkURL)
		b.WriteString(")")
	default:
		b.WriteString(n.Text)
	}
}
