package site

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/apisite/internal/aggregate"
	"git.home.luguber.info/inful/apisite/internal/apimodel"
)

var kindDisplayNames = map[apimodel.Kind]string{
	apimodel.KindCallSignature:      "Call Signatures",
	apimodel.KindClass:              "Classes",
	apimodel.KindConstructSignature: "Construct Signatures",
	apimodel.KindConstructor:        "Constructors",
	apimodel.KindEntryPoint:         "Entry Points",
	apimodel.KindEnum:               "Enums",
	apimodel.KindEnumMember:         "Enum Members",
	apimodel.KindFunction:           "Functions",
	apimodel.KindIndexSignature:     "Index Signatures",
	apimodel.KindInterface:          "Interfaces",
	apimodel.KindMethod:             "Methods",
	apimodel.KindMethodSignature:    "Method Signatures",
	apimodel.KindModel:              "Models",
	apimodel.KindModule:             "Modules",
	apimodel.KindNamespace:          "Namespaces",
	apimodel.KindPackage:            "Packages",
	apimodel.KindProperty:           "Properties",
	apimodel.KindPropertySignature:  "Property Signatures",
	apimodel.KindTypeAlias:          "Types",
	apimodel.KindVariable:           "Variables",
	apimodel.KindNone:               "None",
}

// KindDisplayName returns the plural heading used for a kind in navigation.
func KindDisplayName(kind apimodel.Kind) string {
	if name, ok := kindDisplayNames[kind]; ok {
		return name
	}
	return string(kind)
}

// NavEntry is one link in a kind group.
type NavEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// KindGroup lists the members of one kind.
type KindGroup struct {
	Kind        apimodel.Kind `json:"kind"`
	DisplayName string        `json:"displayName"`
	Members     []NavEntry    `json:"members"`
}

// GroupByKind groups members by kind. Groups appear in first-seen order and
// members keep their input order; overloads sharing a path are listed once.
func GroupByKind(members []aggregate.MemberSummary) []KindGroup {
	groups := []KindGroup{}
	index := map[apimodel.Kind]int{}
	seen := map[string]bool{}
	for _, m := range members {
		if seen[m.Path] {
			continue
		}
		seen[m.Path] = true

		i, ok := index[m.Kind]
		if !ok {
			i = len(groups)
			index[m.Kind] = i
			groups = append(groups, KindGroup{Kind: m.Kind, DisplayName: KindDisplayName(m.Kind)})
		}
		groups[i].Members = append(groups[i].Members, NavEntry{Name: m.Name, Path: m.Path})
	}
	return groups
}

// stabilityTags are the modifiers that earn a warning on a member page.
var stabilityTags = []string{"@alpha", "@beta", "@internal", "@deprecated", "@experimental"}

// StabilityNotice builds the warning shown for unstable members, e.g.
// "This item is beta and experimental". It returns "" when no modifier
// qualifies.
func StabilityNotice(modifiers []string) string {
	var labels []string
	for _, m := range modifiers {
		if slices.Contains(stabilityTags, m) {
			labels = append(labels, strings.TrimPrefix(m, "@"))
		}
	}
	if len(labels) == 0 {
		return ""
	}
	return "This item is " + joinLabels(labels)
}

// MemberNotice is StabilityNotice for a member, counting a @deprecated
// block as a modifier.
func MemberNotice(m aggregate.MemberSummary) string {
	mods := m.Modifiers
	if m.Deprecated != nil && !slices.Contains(mods, "@deprecated") {
		mods = append(slices.Clone(mods), "@deprecated")
	}
	return StabilityNotice(mods)
}

func joinLabels(labels []string) string {
	if len(labels) == 1 {
		return labels[0]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
}
