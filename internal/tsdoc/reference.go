package tsdoc

import (
	"errors"
	"fmt"
	"strings"
)

// DeclarationReference is the code destination of a link tag:
//
//	[package][/importPath]#Member.(member:selector)
//
// The package part is optional; without it the reference is resolved
// relative to the package of the linking declaration.
type DeclarationReference struct {
	PackageName      string
	ImportPath       string
	MemberReferences []MemberReference
}

// MemberReference is one dotted step of a declaration reference.
type MemberReference struct {
	Identifier string
	// Selector disambiguates overloads or merged declarations: a system
	// selector ("class", "function", "static", ...) or an overload index.
	Selector string
}

var (
	errEmptyReference   = errors.New("declaration reference is empty")
	errEmptyMember      = errors.New("member reference is empty")
	errUnbalancedParens = errors.New("unbalanced parentheses in member reference")
	errUnclosedQuote    = errors.New("unclosed quote in member reference")
)

// Identifiers returns the member-path identifiers in order.
func (r *DeclarationReference) Identifiers() []string {
	ids := make([]string, len(r.MemberReferences))
	for i, m := range r.MemberReferences {
		ids[i] = m.Identifier
	}
	return ids
}

// String renders the reference in its canonical source form.
func (r *DeclarationReference) String() string {
	var b strings.Builder
	if r.PackageName != "" {
		b.WriteString(r.PackageName)
		if r.ImportPath != "" {
			b.WriteString("/")
			b.WriteString(r.ImportPath)
		}
		b.WriteString("#")
	}
	for i, m := range r.MemberReferences {
		if i > 0 {
			b.WriteString(".")
		}
		if m.Selector != "" {
			fmt.Fprintf(&b, "(%s:%s)", m.Identifier, m.Selector)
			continue
		}
		b.WriteString(m.Identifier)
	}
	return b.String()
}

// ParseDeclarationReference parses the destination part of a link tag.
func ParseDeclarationReference(src string) (*DeclarationReference, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, errEmptyReference
	}

	ref := &DeclarationReference{}
	memberPath := src
	if pkgPart, rest, ok := strings.Cut(src, "#"); ok {
		memberPath = rest
		ref.PackageName, ref.ImportPath = splitPackagePart(pkgPart)
	}

	if strings.TrimSpace(memberPath) == "" {
		if ref.PackageName == "" {
			return nil, errEmptyReference
		}
		return ref, nil
	}

	parts, err := splitMemberPath(memberPath)
	if err != nil {
		return nil, err
	}
	for _, part := range parts {
		m, err := parseMemberReference(part)
		if err != nil {
			return nil, err
		}
		ref.MemberReferences = append(ref.MemberReferences, m)
	}
	return ref, nil
}

// splitPackagePart separates "@scope/pkg/sub/path" into ("@scope/pkg", "sub/path").
func splitPackagePart(s string) (string, string) {
	s = strings.TrimSpace(s)
	segments := strings.Split(s, "/")
	n := 1
	if strings.HasPrefix(s, "@") && len(segments) > 1 {
		n = 2
	}
	if len(segments) <= n {
		return s, ""
	}
	return strings.Join(segments[:n], "/"), strings.Join(segments[n:], "/")
}

// splitMemberPath splits on dots outside parentheses and quotes.
func splitMemberPath(s string) ([]string, error) {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, errUnbalancedParens
			}
		case c == '.' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if inQuote {
		return nil, errUnclosedQuote
	}
	if depth != 0 {
		return nil, errUnbalancedParens
	}
	return append(parts, s[start:]), nil
}

func parseMemberReference(part string) (MemberReference, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return MemberReference{}, errEmptyMember
	}
	if strings.HasPrefix(part, "(") && strings.HasSuffix(part, ")") {
		part = part[1 : len(part)-1]
	}

	var m MemberReference
	if strings.HasPrefix(part, `"`) {
		end := strings.Index(part[1:], `"`)
		if end < 0 {
			return MemberReference{}, errUnclosedQuote
		}
		m.Identifier = part[1 : end+1]
		part = part[end+2:]
		if sel, ok := strings.CutPrefix(part, ":"); ok {
			m.Selector = strings.TrimSpace(sel)
		}
		return m, nil
	}

	ident, sel, _ := strings.Cut(part, ":")
	m.Identifier = strings.TrimSpace(ident)
	m.Selector = strings.TrimSpace(sel)
	if m.Identifier == "" && m.Selector == "" {
		return MemberReference{}, errEmptyMember
	}
	if strings.ContainsAny(m.Identifier, " \t\n{}|") {
		return MemberReference{}, fmt.Errorf("invalid identifier %q in member reference", m.Identifier)
	}
	return m, nil
}
