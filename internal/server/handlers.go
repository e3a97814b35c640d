package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"git.home.luguber.info/inful/apisite/internal/aggregate"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/routes"
	"git.home.luguber.info/inful/apisite/internal/site"
)

// HealthResponse reports whether a snapshot is being served. DocsHash changes
// whenever a long-form document is added, removed or edited.
type HealthResponse struct {
	Status       string    `json:"status"`
	GenerationID string    `json:"generationId,omitempty"`
	GeneratedAt  time.Time `json:"generatedAt,omitzero"`
	DocsHash     string    `json:"docsHash,omitempty"`
}

// PackageResponse is a package overview with its navigation groups.
type PackageResponse struct {
	Package aggregate.PackageSummary `json:"package"`
	Groups  []site.KindGroup         `json:"groups"`
}

// MemberResponse is one member page.
type MemberResponse struct {
	Package string                  `json:"package"`
	Member  aggregate.MemberSummary `json:"member"`
	Notice  string                  `json:"notice,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.site.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "starting"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "healthy",
		GenerationID: snap.GenerationID,
		GeneratedAt:  snap.GeneratedAt,
		DocsHash:     snap.Docs.Hash(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap, err := s.site.Current()
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Packages)
}

func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	snap, err := s.site.Current()
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	name, err := pathParam(r, "pkg")
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	pkg, err := snap.Package(name)
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PackageResponse{Package: pkg, Groups: site.GroupByKind(pkg.Members)})
}

func (s *Server) handleMember(w http.ResponseWriter, r *http.Request) {
	snap, err := s.site.Current()
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	pkg, err := pathParam(r, "pkg")
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	name, err := pathParam(r, "name")
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	kind, ok := routes.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		s.errors.WriteErrorResponse(w, r, ferrors.NotFoundError("unknown kind").
			WithContext("kind", chi.URLParam(r, "kind")).
			Build())
		return
	}

	m, err := snap.Lookup(pkg, kind, name)
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MemberResponse{Package: pkg, Member: m, Notice: site.MemberNotice(m)})
}

func (s *Server) handleDocsList(w http.ResponseWriter, r *http.Request) {
	snap, err := s.site.Current()
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Docs.List())
}

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	snap, err := s.site.Current()
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	slug, err := pathParam(r, "*")
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	b, err := snap.Docs.Get(slug)
	if err != nil {
		s.errors.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// pathParam returns the decoded value of a route parameter. chi matches
// against the escaped path when the request has one, so those values still
// need unescaping.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", ferrors.NotFoundError("malformed path segment").WithContext("segment", v).Build()
	}
	return decoded, nil
}
