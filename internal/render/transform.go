package render

import (
	"strings"

	"git.home.luguber.info/inful/apisite/internal/resolver"
	"git.home.luguber.info/inful/apisite/internal/tsdoc"
)

// Mode selects the transformer output shape.
type Mode string

const (
	// ModeSequence emits typed nodes, with paragraphs bracketed by "\n\n" text markers.
	ModeSequence Mode = "sequence"
	// ModeString emits one Markdown text run per transformed node.
	ModeString Mode = "string"
)

const paragraphMarker = "\n\n"

// Resolver resolves declaration references for link tags.
type Resolver interface {
	Resolve(ref *tsdoc.DeclarationReference) resolver.Result
}

// Transformer converts documentation nodes into render content.
// The zero value is a sequence-mode transformer without a resolver.
type Transformer struct {
	mode     Mode
	resolver Resolver
}

// New returns a Transformer. res may be nil, in which case code links keep
// their sentinel destination.
func New(mode Mode, res Resolver) *Transformer {
	if mode == "" {
		mode = ModeSequence
	}
	return &Transformer{mode: mode, resolver: res}
}

// Transform converts one node.
func (t *Transformer) Transform(node tsdoc.Node) Content {
	out := t.sequence(node)
	if t.mode == ModeString {
		return Content{Text(out.String())}
	}
	return out
}

// TransformContainer converts nodes in document order and joins the results.
func (t *Transformer) TransformContainer(nodes []tsdoc.Node) Content {
	out := t.sequenceAll(nodes)
	if t.mode == ModeString {
		return Content{Text(out.String())}
	}
	return out
}

// TransformSection converts the children of s. A nil section yields nil.
func (t *Transformer) TransformSection(s *tsdoc.Section) Content {
	if s == nil {
		return nil
	}
	return t.TransformContainer(s.Nodes)
}

func (t *Transformer) sequenceAll(nodes []tsdoc.Node) Content {
	out := Content{}
	for _, n := range nodes {
		out = append(out, t.sequence(n)...)
	}
	return out
}

func (t *Transformer) sequence(node tsdoc.Node) Content {
	switch n := node.(type) {
	case *tsdoc.PlainText:
		return Content{Text(n.Text)}
	case *tsdoc.EscapedText:
		return Content{Text(n.DecodedText)}
	case *tsdoc.ErrorText:
		return Content{Text(n.Text)}
	case *tsdoc.SoftBreak:
		return Content{Text(" ")}
	case *tsdoc.CodeSpan:
		return Content{CodeSpan(n.Code)}
	case *tsdoc.FencedCode:
		return Content{FencedCode(n.Language, n.Code)}
	case *tsdoc.LinkTag:
		return Content{t.link(n)}
	case *tsdoc.Paragraph:
		out := Content{Text(paragraphMarker)}
		out = append(out, t.sequenceAll(n.Nodes)...)
		return append(out, Text(paragraphMarker))
	case nil:
		return Content{Text("<nil>")}
	default:
		return Content{Text("<" + string(node.Kind()) + ">")}
	}
}

// link applies the sentinel, override and resolution rules in that order.
func (t *Transformer) link(n *tsdoc.LinkTag) Node {
	url, text := SentinelURL, SentinelText

	switch {
	case n.CodeDestination != nil:
		text = strings.Join(n.CodeDestination.Identifiers(), ",")
		if n.LinkText != "" {
			text = n.LinkText
		}
		if t.resolver != nil {
			if res := t.resolver.Resolve(n.CodeDestination); res.OK() {
				url = res.URL
				if n.LinkText == "" {
					text = res.Text
				}
			}
		}
	case n.URLDestination != "":
		url = n.URLDestination
		text = n.URLDestination
		if n.LinkText != "" {
			text = n.LinkText
		}
	}
	return Link(url, text)
}
