// Package resolver turns declaration references found in a member's
// documentation into navigable links.
package resolver

import (
	"log/slog"

	"git.home.luguber.info/inful/apisite/internal/apimodel"
	"git.home.luguber.info/inful/apisite/internal/logfields"
	"git.home.luguber.info/inful/apisite/internal/routes"
	"git.home.luguber.info/inful/apisite/internal/tsdoc"
)

// Resolution outcomes reported to a Recorder.
const (
	ResultResolved   = "resolved"
	ResultUnresolved = "unresolved"
)

// Result of resolving a reference. URL and Text are both set on success and
// both empty when the reference could not be resolved.
type Result struct {
	URL  string
	Text string
}

// OK reports whether the reference resolved.
func (r Result) OK() bool { return r.URL != "" }

// Recorder observes resolution outcomes.
type Recorder interface {
	IncReferenceResolution(result string)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRecorder reports every resolution outcome to rec.
func WithRecorder(rec Recorder) Option {
	return func(r *Resolver) { r.recorder = rec }
}

// WithLogger sets the logger used for unresolved references.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// Resolver resolves references relative to one context member.
type Resolver struct {
	context  *apimodel.Item
	model    *apimodel.Model
	pkg      *apimodel.Item
	routes   routes.Builder
	recorder Recorder
	logger   *slog.Logger
}

// New returns a Resolver for references written in the documentation of item.
func New(item *apimodel.Item, b routes.Builder, opts ...Option) *Resolver {
	r := &Resolver{
		context: item,
		routes:  b,
		logger:  slog.Default(),
	}
	chain := item.Hierarchy()
	if len(chain) > 0 {
		r.model = chain[0].Model()
	}
	for _, it := range chain {
		if it.Kind == apimodel.KindPackage {
			r.pkg = it
			break
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps ref to the path and display name of the item it names.
func (r *Resolver) Resolve(ref *tsdoc.DeclarationReference) Result {
	if r.model == nil || ref == nil {
		r.observe(false)
		return Result{}
	}
	res := r.model.ResolveDeclarationReference(ref, r.context)
	if res.ResolvedItem == nil {
		r.observe(false)
		r.logger.Debug("Unresolved declaration reference",
			logfields.Reference(ref.String()),
			logfields.Package(r.packageName()),
			logfields.Member(r.context.DisplayName()),
			slog.String("reason", res.ErrorMessage))
		return Result{}
	}

	target := res.ResolvedItem
	pkgName := ""
	if pkg := target.Package(); pkg != nil {
		pkgName = pkg.Name
	}
	r.observe(true)
	if target.Kind == apimodel.KindPackage {
		return Result{URL: r.routes.PackagePath(pkgName), Text: target.DisplayName()}
	}
	return Result{
		URL:  r.routes.MemberPath(pkgName, target.Kind, target.DisplayName()),
		Text: target.DisplayName(),
	}
}

func (r *Resolver) packageName() string {
	if r.pkg == nil {
		return ""
	}
	return r.pkg.Name
}

func (r *Resolver) observe(ok bool) {
	if r.recorder == nil {
		return
	}
	if ok {
		r.recorder.IncReferenceResolution(ResultResolved)
		return
	}
	r.recorder.IncReferenceResolution(ResultUnresolved)
}
