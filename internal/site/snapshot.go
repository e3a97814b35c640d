package site

import (
	"time"

	"git.home.luguber.info/inful/apisite/internal/aggregate"
	"git.home.luguber.info/inful/apisite/internal/apimodel"
	"git.home.luguber.info/inful/apisite/internal/docs"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/routes"
)

// Snapshot is the immutable output of one generation pass.
type Snapshot struct {
	GenerationID string
	GeneratedAt  time.Time
	Model        *apimodel.Model
	Packages     []aggregate.PackageSummary
	Docs         *docs.Library
}

// MemberCount sums the members of every summary.
func (s *Snapshot) MemberCount() int {
	n := 0
	for _, p := range s.Packages {
		n += len(p.Members)
	}
	return n
}

// Package returns the summary of the named package. Members of all entry
// points are concatenated in entry point order; the package summary comes
// from the first entry point.
func (s *Snapshot) Package(name string) (aggregate.PackageSummary, error) {
	var (
		out   aggregate.PackageSummary
		found bool
	)
	for _, p := range s.Packages {
		if p.Name != name {
			continue
		}
		if !found {
			out = aggregate.PackageSummary{Name: p.Name, EntryPoint: p.EntryPoint, Summary: p.Summary}
			found = true
		}
		out.Members = append(out.Members, p.Members...)
	}
	if !found {
		return aggregate.PackageSummary{}, ferrors.NotFoundError("package not found").
			WithContext("package", name).
			Build()
	}
	if out.Members == nil {
		out.Members = []aggregate.MemberSummary{}
	}
	return out, nil
}

// Lookup returns the first member of pkg with the given kind and name.
// Overloads share a path, so the first overload stands for all of them. An
// exact name match wins over one that only matches in NFC form.
func (s *Snapshot) Lookup(pkg string, kind apimodel.Kind, name string) (aggregate.MemberSummary, error) {
	p, err := s.Package(pkg)
	if err != nil {
		return aggregate.MemberSummary{}, err
	}
	fallback := -1
	for i, m := range p.Members {
		if m.Kind != kind {
			continue
		}
		if m.Name == name {
			return m, nil
		}
		if fallback < 0 && routes.SameName(m.Name, name) {
			fallback = i
		}
	}
	if fallback >= 0 {
		return p.Members[fallback], nil
	}
	return aggregate.MemberSummary{}, ferrors.NotFoundError("member not found").
		WithContext("package", pkg).
		WithContext("kind", string(kind)).
		WithContext("name", name).
		Build()
}
