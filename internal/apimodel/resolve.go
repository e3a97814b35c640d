package apimodel

import (
	"fmt"
	"strconv"

	"git.home.luguber.info/inful/apisite/internal/tsdoc"
)

// ResolutionResult is the outcome of resolving a declaration reference.
// Exactly one of ResolvedItem and ErrorMessage is set.
type ResolutionResult struct {
	ResolvedItem *Item
	ErrorMessage string
}

func unresolved(format string, args ...any) ResolutionResult {
	return ResolutionResult{ErrorMessage: fmt.Sprintf(format, args...)}
}

// ResolveDeclarationReference finds the item ref points at. A reference
// without a package part is resolved in the package owning contextItem.
func (m *Model) ResolveDeclarationReference(ref *tsdoc.DeclarationReference, contextItem *Item) ResolutionResult {
	if ref == nil {
		return unresolved("declaration reference is nil")
	}

	var pkg *Item
	if ref.PackageName != "" {
		pkg = m.FindPackage(ref.PackageName)
		if pkg == nil {
			return unresolved("package %q was not found", ref.PackageName)
		}
	} else {
		if contextItem != nil {
			pkg = contextItem.Package()
		}
		if pkg == nil {
			return unresolved("reference %q has no package and no context package", ref.String())
		}
	}

	ep := pkg.FindEntryPoint(ref.ImportPath)
	if ep == nil {
		return unresolved("entry point %q was not found in package %q", ref.ImportPath, pkg.Name)
	}
	if len(ref.MemberReferences) == 0 {
		return ResolutionResult{ResolvedItem: pkg}
	}

	current := ep
	for _, mr := range ref.MemberReferences {
		candidates, err := selectMembers(current, mr)
		if err != nil {
			return unresolved("%s", err.Error())
		}
		switch len(candidates) {
		case 0:
			return unresolved("member %q was not found in %q", memberLabel(mr), current.DisplayName())
		case 1:
			current = candidates[0]
		default:
			return unresolved("member reference %q is ambiguous in %q", memberLabel(mr), current.DisplayName())
		}
	}
	return ResolutionResult{ResolvedItem: current}
}

func memberLabel(mr tsdoc.MemberReference) string {
	if mr.Selector == "" {
		return mr.Identifier
	}
	return mr.Identifier + ":" + mr.Selector
}

var selectorKinds = map[string][]Kind{
	"class":       {KindClass},
	"interface":   {KindInterface},
	"enum":        {KindEnum},
	"namespace":   {KindNamespace, KindModule},
	"type":        {KindTypeAlias},
	"variable":    {KindVariable},
	"function":    {KindFunction, KindMethod, KindMethodSignature},
	"constructor": {KindConstructor},
	"index":       {KindIndexSignature},
	"call":        {KindCallSignature},
	"new":         {KindConstructSignature},
}

// selectMembers applies one member reference to the members of parent.
func selectMembers(parent *Item, mr tsdoc.MemberReference) ([]*Item, error) {
	var candidates []*Item
	if mr.Identifier == "" {
		kinds, ok := selectorKinds[mr.Selector]
		if !ok {
			return nil, fmt.Errorf("selector %q needs an identifier", mr.Selector)
		}
		for _, member := range parent.Members {
			if kindIn(member.Kind, kinds) {
				candidates = append(candidates, member)
			}
		}
		return candidates, nil
	}

	candidates = parent.FindMembersByName(mr.Identifier)
	if mr.Selector == "" {
		return candidates, nil
	}

	var keep func(*Item) bool
	if n, err := strconv.Atoi(mr.Selector); err == nil {
		keep = func(i *Item) bool { return i.OverloadIndex == n }
	} else {
		switch mr.Selector {
		case "static":
			keep = func(i *Item) bool { return i.IsStatic }
		case "instance":
			keep = func(i *Item) bool { return !i.IsStatic }
		default:
			kinds, ok := selectorKinds[mr.Selector]
			if !ok {
				return nil, fmt.Errorf("unknown selector %q", mr.Selector)
			}
			keep = func(i *Item) bool { return kindIn(i.Kind, kinds) }
		}
	}

	filtered := candidates[:0:0]
	for _, c := range candidates {
		if keep(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func kindIn(k Kind, kinds []Kind) bool {
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
