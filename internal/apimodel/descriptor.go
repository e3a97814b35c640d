package apimodel

import "strings"

// descriptor mirrors the api-extractor *.api.json item schema. Only the fields
// this model uses are decoded.
type descriptor struct {
	Metadata               *descriptorMetadata   `json:"metadata,omitempty"`
	Kind                   string                `json:"kind"`
	DocComment             string                `json:"docComment"`
	Name                   string                `json:"name"`
	ReleaseTag             string                `json:"releaseTag"`
	IsStatic               bool                  `json:"isStatic"`
	IsOptional             bool                  `json:"isOptional"`
	OverloadIndex          int                   `json:"overloadIndex"`
	ExcerptTokens          []excerptToken        `json:"excerptTokens"`
	TypeTokenRange         *tokenRange           `json:"typeTokenRange"`
	VariableTypeTokenRange *tokenRange           `json:"variableTypeTokenRange"`
	PropertyTypeTokenRange *tokenRange           `json:"propertyTypeTokenRange"`
	Parameters             []parameterDescriptor `json:"parameters"`
	Members                []*descriptor         `json:"members"`
}

type descriptorMetadata struct {
	ToolPackage   string `json:"toolPackage"`
	ToolVersion   string `json:"toolVersion"`
	SchemaVersion int    `json:"schemaVersion"`
}

type excerptToken struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type tokenRange struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

type parameterDescriptor struct {
	ParameterName           string      `json:"parameterName"`
	ParameterTypeTokenRange *tokenRange `json:"parameterTypeTokenRange"`
	IsOptional              bool        `json:"isOptional"`
}

// excerpt joins the tokens spanned by r. A nil or out-of-range span yields "".
func excerpt(tokens []excerptToken, r *tokenRange) string {
	if r == nil || r.StartIndex < 0 || r.EndIndex > len(tokens) || r.StartIndex >= r.EndIndex {
		return ""
	}
	var b strings.Builder
	for _, t := range tokens[r.StartIndex:r.EndIndex] {
		b.WriteString(t.Text)
	}
	return strings.TrimSpace(b.String())
}

// typeRange picks the token range holding the declared type for the kind.
func (d *descriptor) typeRange() *tokenRange {
	switch {
	case d.TypeTokenRange != nil:
		return d.TypeTokenRange
	case d.VariableTypeTokenRange != nil:
		return d.VariableTypeTokenRange
	default:
		return d.PropertyTypeTokenRange
	}
}
