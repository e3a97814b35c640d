// Package tsdoc models and parses the documentation comments carried by API
// model package descriptors.
//
// A comment is split into a summary section, standard blocks (@remarks,
// @returns, @deprecated, @param, ...) and modifier tags. Section content is a
// tree of Nodes: paragraphs holding inline text, code spans and link tags,
// with fenced code as paragraph siblings. Parsing never fails; malformed
// constructs become ErrorText nodes so they can be shown verbatim.
package tsdoc

// Kind discriminates Node variants.
type Kind string

const (
	KindPlainText   Kind = "PlainText"
	KindEscapedText Kind = "EscapedText"
	KindErrorText   Kind = "ErrorText"
	KindSoftBreak   Kind = "SoftBreak"
	KindCodeSpan    Kind = "CodeSpan"
	KindFencedCode  Kind = "FencedCode"
	KindLinkTag     Kind = "LinkTag"
	KindParagraph   Kind = "Paragraph"
	KindSection     Kind = "Section"
	KindBlock       Kind = "Block"
	KindParamBlock  Kind = "ParamBlock"
	KindInlineTag   Kind = "InlineTag"
)

// Node is a node of a parsed documentation comment.
type Node interface {
	Kind() Kind
}

type PlainText struct {
	Text string
}

// EscapedText is a backslash escape; DecodedText is what it stands for.
type EscapedText struct {
	EncodedText string
	DecodedText string
}

// ErrorText is source text the parser could not interpret.
type ErrorText struct {
	Text    string
	Message string
}

type SoftBreak struct{}

type CodeSpan struct {
	Code string
}

type FencedCode struct {
	Language string
	Code     string
}

// LinkTag is an {@link} inline tag. At most one of CodeDestination and
// URLDestination is set. An empty LinkText means no override was authored.
type LinkTag struct {
	TagName         string
	CodeDestination *DeclarationReference
	URLDestination  string
	LinkText        string
}

type Paragraph struct {
	Nodes []Node
}

// Section is the body of the summary or of a block.
type Section struct {
	Nodes []Node
}

// Block is a block tag (such as @remarks) and the section it introduces.
type Block struct {
	TagName string
	Content *Section
}

// ParamBlock is a @param or @typeParam block.
type ParamBlock struct {
	Block
	ParameterName string
}

// InlineTag is any inline tag other than the link family, e.g. {@inheritDoc}.
type InlineTag struct {
	TagName    string
	TagContent string
}

func (*PlainText) Kind() Kind   { return KindPlainText }
func (*EscapedText) Kind() Kind { return KindEscapedText }
func (*ErrorText) Kind() Kind   { return KindErrorText }
func (*SoftBreak) Kind() Kind   { return KindSoftBreak }
func (*CodeSpan) Kind() Kind    { return KindCodeSpan }
func (*FencedCode) Kind() Kind  { return KindFencedCode }
func (*LinkTag) Kind() Kind     { return KindLinkTag }
func (*Paragraph) Kind() Kind   { return KindParagraph }
func (*Section) Kind() Kind     { return KindSection }
func (*Block) Kind() Kind       { return KindBlock }
func (*ParamBlock) Kind() Kind  { return KindParamBlock }
func (*InlineTag) Kind() Kind   { return KindInlineTag }


// Comment is a parsed documentation comment.
type Comment struct {
	SummarySection  *Section
	RemarksBlock    *Block
	ReturnsBlock    *Block
	DeprecatedBlock *Block
	ParamBlocks     []*ParamBlock
	TypeParamBlocks []*ParamBlock
	CustomBlocks    []*Block
	// ModifierTags holds modifier tag names (e.g. "@beta") in authored order.
	ModifierTags []string
}

// ParamBlock returns the @param block documenting name, or nil.
func (c *Comment) ParamBlock(name string) *ParamBlock {
	if c == nil {
		return nil
	}
	for _, pb := range c.ParamBlocks {
		if pb.ParameterName == name {
			return pb
		}
	}
	return nil
}

// HasModifier reports whether the modifier tag (with its leading '@') is present.
func (c *Comment) HasModifier(tag string) bool {
	if c == nil {
		return false
	}
	for _, m := range c.ModifierTags {
		if m == tag {
			return true
		}
	}
	return false
}
