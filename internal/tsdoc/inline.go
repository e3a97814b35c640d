package tsdoc

import (
	"regexp"
	"strings"
)

var urlSchemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)

// linkTags are the inline tags that produce LinkTag nodes.
var linkTags = map[string]bool{
	"@link":      true,
	"@linkcode":  true,
	"@linkplain": true,
}

// inlineParser turns paragraph text into inline nodes.
type inlineParser struct {
	nodes []Node
	plain strings.Builder
}

func (p *inlineParser) flushPlain() {
	if p.plain.Len() == 0 {
		return
	}
	p.nodes = append(p.nodes, &PlainText{Text: p.plain.String()})
	p.plain.Reset()
}

func (p *inlineParser) emit(n Node) {
	p.flushPlain()
	p.nodes = append(p.nodes, n)
}

func parseInline(text string) []Node {
	p := &inlineParser{}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\\' && i+1 < len(text) && isASCIIPunct(text[i+1]):
			p.emit(&EscapedText{EncodedText: text[i : i+2], DecodedText: text[i+1 : i+2]})
			i++
		case c == '`':
			end := strings.IndexAny(text[i+1:], "`\n")
			if end < 0 || text[i+1+end] != '`' {
				p.emit(&ErrorText{Text: "`", Message: "code span is missing its closing backtick"})
				continue
			}
			p.emit(&CodeSpan{Code: text[i+1 : i+1+end]})
			i += end + 1
		case c == '{' && strings.HasPrefix(text[i:], "{@"):
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				p.emit(&ErrorText{Text: "{", Message: "inline tag is missing its closing brace"})
				continue
			}
			p.emit(parseInlineTag(text[i : i+end+1]))
			i += end
		case c == '\n':
			p.emit(&SoftBreak{})
		default:
			p.plain.WriteByte(c)
		}
	}
	p.flushPlain()
	return p.nodes
}

// parseInlineTag parses "{@tag content}".
func parseInlineTag(src string) Node {
	body := strings.ReplaceAll(src[1:len(src)-1], "\n", " ")
	nameEnd := 1
	for nameEnd < len(body) && isTagChar(body[nameEnd]) {
		nameEnd++
	}
	name := body[:nameEnd]
	content := strings.TrimSpace(body[nameEnd:])

	if !linkTags[name] {
		return &InlineTag{TagName: name, TagContent: content}
	}

	dest, text, _ := strings.Cut(content, "|")
	dest = strings.TrimSpace(dest)
	link := &LinkTag{TagName: name, LinkText: strings.TrimSpace(text)}
	switch {
	case dest == "":
		// neither destination kind; consumers fall back to their defaults
	case urlSchemePattern.MatchString(dest):
		link.URLDestination = dest
	default:
		ref, err := ParseDeclarationReference(dest)
		if err != nil {
			return &ErrorText{Text: src, Message: err.Error()}
		}
		link.CodeDestination = ref
	}
	return link
}

func isASCIIPunct(c byte) bool {
	return c >= '!' && c <= '/' || c >= ':' && c <= '@' || c >= '[' && c <= '`' || c >= '{' && c <= '~'
}
