// Package apimodel holds the in-memory API model built from api-extractor
// package descriptors: Model → Package → EntryPoint → members.
//
// The graph is built once by the loader and treated as read-only afterwards,
// so it can be shared by concurrent readers without locking.
package apimodel

import (
	"git.home.luguber.info/inful/apisite/internal/tsdoc"
)

// Item is a node of the API model: the model root, a package, an entry point
// or a declaration.
type Item struct {
	Kind          Kind
	Name          string
	ReleaseTag    string
	IsStatic      bool
	IsOptional    bool
	OverloadIndex int

	// DocComment is nil when the declaration has no documentation comment.
	DocComment *tsdoc.Comment

	// Excerpt is the full declaration text.
	Excerpt string
	// TypeExcerpt is the declared type of type aliases, variables and properties.
	TypeExcerpt string

	// Parameters is non-nil for callable kinds only.
	Parameters []*Parameter

	Members []*Item
	Parent  *Item

	model *Model
}

// Parameter is one parameter of a callable declaration.
type Parameter struct {
	Name        string
	IsOptional  bool
	TypeExcerpt string
	// Doc is the matching @param block of the owning declaration, or nil.
	Doc *tsdoc.ParamBlock
}

// DisplayName is the name shown to readers and used in navigable paths.
func (i *Item) DisplayName() string {
	switch i.Kind {
	case KindConstructor:
		return "constructor"
	case KindConstructSignature:
		return "(new)"
	case KindCallSignature:
		return "(call)"
	case KindIndexSignature:
		return "(indexer)"
	case KindModel:
		return "(model)"
	case KindEntryPoint:
		if i.Name == "" {
			return "(main)"
		}
	}
	return i.Name
}

// Hierarchy returns the ownership chain from the model root down to i.
func (i *Item) Hierarchy() []*Item {
	var chain []*Item
	for cur := i; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
		chain[l], chain[r] = chain[r], chain[l]
	}
	return chain
}

// Model returns the model owning i, or nil for a detached item.
func (i *Item) Model() *Model {
	for cur := i; cur != nil; cur = cur.Parent {
		if cur.model != nil {
			return cur.model
		}
	}
	return nil
}

// Package returns the package owning i (i itself for a package), or nil.
func (i *Item) Package() *Item {
	for cur := i; cur != nil; cur = cur.Parent {
		if cur.Kind == KindPackage {
			return cur
		}
	}
	return nil
}

// EntryPoints returns the entry points of a package.
func (i *Item) EntryPoints() []*Item {
	var eps []*Item
	for _, m := range i.Members {
		if m.Kind == KindEntryPoint {
			eps = append(eps, m)
		}
	}
	return eps
}

// FindEntryPoint returns the entry point with the given import path ("" is the main one).
func (i *Item) FindEntryPoint(importPath string) *Item {
	for _, ep := range i.EntryPoints() {
		if ep.Name == importPath {
			return ep
		}
	}
	return nil
}

// FindMembersByName returns the direct members named name.
func (i *Item) FindMembersByName(name string) []*Item {
	var found []*Item
	for _, m := range i.Members {
		if m.Name == name {
			found = append(found, m)
		}
	}
	return found
}

// Model is the root of the loaded API model.
type Model struct {
	root *Item
}

// NewModel returns an empty model.
func NewModel() *Model {
	m := &Model{}
	m.root = &Item{Kind: KindModel, model: m}
	return m
}

// Root returns the model's root item.
func (m *Model) Root() *Item { return m.root }

// Packages returns the loaded packages in load order.
func (m *Model) Packages() []*Item { return m.root.Members }

// FindPackage returns the package with the given name, or nil.
func (m *Model) FindPackage(name string) *Item {
	for _, p := range m.root.Members {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// AddPackage attaches pkg to the model.
func (m *Model) AddPackage(pkg *Item) {
	pkg.Parent = m.root
	m.root.Members = append(m.root.Members, pkg)
}
