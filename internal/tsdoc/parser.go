package tsdoc

import (
	"strings"
)

// Standard modifier tags. They carry no content and are reported verbatim.
var modifierTags = map[string]bool{
	"@public":               true,
	"@beta":                 true,
	"@alpha":                true,
	"@internal":             true,
	"@experimental":         true,
	"@virtual":              true,
	"@override":             true,
	"@sealed":               true,
	"@readonly":             true,
	"@packageDocumentation": true,
	"@eventProperty":        true,
}

// Block tags without a dedicated Comment field. Other "@word" tokens are
// left in the text of the current section.
var customBlockTags = map[string]bool{
	"@example":        true,
	"@see":            true,
	"@throws":         true,
	"@defaultValue":   true,
	"@privateRemarks": true,
	"@decorator":      true,
}

const (
	tagRemarks    = "@remarks"
	tagReturns    = "@returns"
	tagDeprecated = "@deprecated"
	tagParam      = "@param"
	tagTypeParam  = "@typeParam"
)

// sectionBuffer accumulates the raw text of one section while splitting blocks.
type sectionBuffer struct {
	text strings.Builder
	// exactly one of these is set for non-summary sections
	block      *Block
	paramBlock *ParamBlock
}

// Parse parses a raw documentation comment, with or without its /** */ framing.
func Parse(raw string) *Comment {
	p := &commentParser{comment: &Comment{}}
	summary := &sectionBuffer{}
	p.sections = []*sectionBuffer{summary}
	p.current = summary

	inFence := false
	for _, line := range stripFraming(raw) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			p.writeLine(line)
			continue
		}
		if inFence {
			p.writeLine(line)
			continue
		}
		p.scanLine(line)
	}

	p.comment.SummarySection = parseSection(summary.text.String())
	for _, s := range p.sections[1:] {
		content := parseSection(s.text.String())
		switch {
		case s.paramBlock != nil:
			s.paramBlock.Content = content
		case s.block != nil:
			s.block.Content = content
		}
	}
	return p.comment
}

type commentParser struct {
	comment  *Comment
	sections []*sectionBuffer
	current  *sectionBuffer
}

func (p *commentParser) writeLine(line string) {
	p.current.text.WriteString(line)
	p.current.text.WriteByte('\n')
}

// scanLine copies line into the current section, switching sections at block
// tags found outside code spans and inline tags.
func (p *commentParser) scanLine(line string) {
	var out strings.Builder
	depth := 0
	inTick := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			out.WriteByte(c)
			out.WriteByte(line[i+1])
			i++
			continue
		case c == '`':
			inTick = !inTick
		case inTick:
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == '@' && depth == 0 && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t'):
			name, end := readTagName(line, i)
			if !isKnownTag(name) {
				break
			}
			if out.Len() > 0 {
				p.writeLine(out.String())
				out.Reset()
			}
			i = p.startTag(name, line, end) - 1
			continue
		}
		out.WriteByte(c)
	}
	p.writeLine(out.String())
}

// readTagName returns "@name" starting at line[at] and the index after it, or
// "" when the '@' does not start a tag.
func readTagName(line string, at int) (string, int) {
	j := at + 1
	for j < len(line) && isTagChar(line[j]) {
		j++
	}
	if j == at+1 || (j < len(line) && line[j] != ' ' && line[j] != '\t') {
		return "", at
	}
	return line[at:j], j
}

func isKnownTag(name string) bool {
	switch name {
	case "":
		return false
	case tagRemarks, tagReturns, tagDeprecated, tagParam, tagTypeParam:
		return true
	}
	return modifierTags[name] || customBlockTags[name]
}

func isTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// startTag handles a block or modifier tag and returns where scanning resumes.
func (p *commentParser) startTag(name, line string, end int) int {
	if modifierTags[name] {
		p.comment.ModifierTags = append(p.comment.ModifierTags, name)
		return end
	}

	if name == tagParam || name == tagTypeParam {
		paramName, resume := readParamName(line, end)
		pb := &ParamBlock{Block: Block{TagName: name}, ParameterName: paramName}
		if name == tagParam {
			p.comment.ParamBlocks = append(p.comment.ParamBlocks, pb)
		} else {
			p.comment.TypeParamBlocks = append(p.comment.TypeParamBlocks, pb)
		}
		p.push(&sectionBuffer{paramBlock: pb})
		return resume
	}

	block := &Block{TagName: name}
	switch name {
	case tagRemarks:
		p.comment.RemarksBlock = block
	case tagReturns:
		p.comment.ReturnsBlock = block
	case tagDeprecated:
		p.comment.DeprecatedBlock = block
	default:
		p.comment.CustomBlocks = append(p.comment.CustomBlocks, block)
	}
	p.push(&sectionBuffer{block: block})
	return end
}

func (p *commentParser) push(s *sectionBuffer) {
	p.sections = append(p.sections, s)
	p.current = s
}

// readParamName reads "name -" after a @param tag. JSDoc-style "[name]" is accepted.
func readParamName(line string, at int) (string, int) {
	i := skipSpaces(line, at)
	start := i
	for i < len(line) && line[i] != ' ' && line[i] != '\t' {
		i++
	}
	name := strings.TrimSuffix(line[start:i], "-")
	name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	i = skipSpaces(line, i)
	if i < len(line) && line[i] == '-' {
		i = skipSpaces(line, i+1)
	}
	return name, i
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// stripFraming removes the /** */ delimiters and the leading "*" gutter.
func stripFraming(raw string) []string {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimSuffix(s, "*/")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		t := strings.TrimLeft(line, " \t")
		if rest, ok := strings.CutPrefix(t, "*"); ok {
			line = strings.TrimPrefix(rest, " ")
		}
		lines[i] = strings.TrimRight(line, " \t")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseSection splits section text into paragraphs and fenced code.
func parseSection(text string) *Section {
	section := &Section{}
	var para []string
	flush := func() {
		if len(para) == 0 {
			return
		}
		section.Nodes = append(section.Nodes, &Paragraph{Nodes: parseInline(strings.Join(para, "\n"))})
		para = nil
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(trimmed, "```"):
			flush()
			fence, next := readFence(lines, i)
			section.Nodes = append(section.Nodes, fence)
			i = next
		case trimmed == "":
			flush()
		default:
			para = append(para, trimmed)
		}
	}
	flush()
	return section
}

// readFence reads a fenced code block opening at lines[open] and returns the
// node and the index of its closing line.
func readFence(lines []string, open int) (Node, int) {
	language := strings.TrimSpace(strings.TrimSpace(lines[open])[3:])
	var code strings.Builder
	for i := open + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
			return &FencedCode{Language: language, Code: code.String()}, i
		}
		code.WriteString(lines[i])
		code.WriteByte('\n')
	}
	return &Paragraph{Nodes: []Node{&ErrorText{
		Text:    strings.Join(lines[open:], "\n"),
		Message: "fenced code block is missing its closing delimiter",
	}}}, len(lines) - 1
}
