// Package routes builds and parses the navigable paths of API members:
//
//	/<prefix>/<package>/<kind>/<name>
//
// Package and name segments are path-escaped byte for byte, so a built path
// always parses back to the same triple.
package routes

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/apisite/internal/apimodel"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
)

// DefaultPrefix is the path prefix of API member pages.
const DefaultPrefix = "/api-docs"

// KindStyle controls how the kind segment is spelled.
type KindStyle string

const (
	// KindStyleVerbatim keeps the kind name as is, e.g. "TypeAlias".
	KindStyleVerbatim KindStyle = "verbatim"
	// KindStyleSlug lower-cases the kind name, e.g. "typealias".
	KindStyleSlug KindStyle = "slug"
)

// Route is a decoded member path.
type Route struct {
	Package string
	Kind    apimodel.Kind
	Name    string
}

// Builder turns (package, kind, name) triples into paths and back.
type Builder struct {
	prefix string
	style  KindStyle
}

// NewBuilder returns a Builder for prefix. An empty prefix means DefaultPrefix
// and an empty style means KindStyleVerbatim.
func NewBuilder(prefix string, style KindStyle) Builder {
	prefix = "/" + strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "/" {
		prefix = DefaultPrefix
	}
	if style == "" {
		style = KindStyleVerbatim
	}
	return Builder{prefix: prefix, style: style}
}

// Prefix returns the normalized path prefix.
func (b Builder) Prefix() string { return b.prefix }

// KindStyle returns how kind segments are spelled.
func (b Builder) KindStyle() KindStyle { return b.style }

// EscapeSegment escapes s for use as one path segment.
func EscapeSegment(s string) string {
	return url.PathEscape(s)
}

// SameName reports whether a and b are the same name once both are in Unicode
// NFC form. Clients may send a path segment in a different normalization form
// than the one stored in the model.
func SameName(a, b string) bool {
	return a == b || norm.NFC.String(a) == norm.NFC.String(b)
}

// KindSegment spells kind according to the builder's style.
func (b Builder) KindSegment(kind apimodel.Kind) string {
	if b.style == KindStyleSlug {
		return strings.ToLower(string(kind))
	}
	return string(kind)
}

// PackagePath returns the path of a package's overview page.
func (b Builder) PackagePath(pkg string) string {
	return b.prefix + "/" + EscapeSegment(pkg)
}

// MemberPath returns the navigable path of a member.
func (b Builder) MemberPath(pkg string, kind apimodel.Kind, name string) string {
	return b.PackagePath(pkg) + "/" + b.KindSegment(kind) + "/" + EscapeSegment(name)
}

// ParseKind maps a kind segment back to a Kind, accepting either style.
func ParseKind(segment string) (apimodel.Kind, bool) {
	if k := apimodel.ParseKind(segment); k != apimodel.KindNone {
		return k, true
	}
	for _, k := range apimodel.Kinds() {
		if strings.EqualFold(string(k), segment) {
			return k, true
		}
	}
	return apimodel.KindNone, false
}

// Parse decodes a member path built by MemberPath.
func (b Builder) Parse(path string) (Route, error) {
	rest, ok := strings.CutPrefix(path, b.prefix+"/")
	if !ok {
		return Route{}, notRoute(path, "path is outside the API prefix")
	}
	segments := strings.Split(rest, "/")
	if len(segments) != 3 {
		return Route{}, notRoute(path, "expected package, kind and name segments")
	}

	pkg, err := url.PathUnescape(segments[0])
	if err != nil {
		return Route{}, notRoute(path, "package segment is not valid escaping")
	}
	name, err := url.PathUnescape(segments[2])
	if err != nil {
		return Route{}, notRoute(path, "name segment is not valid escaping")
	}
	kind, ok := ParseKind(segments[1])
	if !ok {
		return Route{}, notRoute(path, "unknown kind segment")
	}
	if pkg == "" || name == "" {
		return Route{}, notRoute(path, "empty package or name segment")
	}
	return Route{Package: pkg, Kind: kind, Name: name}, nil
}

func notRoute(path, reason string) error {
	return ferrors.NotFoundError("not an API member path: " + reason).
		WithContext("path", path).
		Build()
}
