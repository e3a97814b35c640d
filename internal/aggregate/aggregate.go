// Package aggregate turns a loaded API model into the package summaries
// consumed by the website.
package aggregate

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/apisite/internal/apimodel"
	"git.home.luguber.info/inful/apisite/internal/logfields"
	"git.home.luguber.info/inful/apisite/internal/render"
	"git.home.luguber.info/inful/apisite/internal/resolver"
	"git.home.luguber.info/inful/apisite/internal/routes"
)

// NoDescription is the summary of parameters without a @param block.
const NoDescription = "No Description"

// PackageSummary describes one entry point of a package.
type PackageSummary struct {
	Name       string          `json:"name"`
	EntryPoint string          `json:"entryPoint,omitempty"`
	Summary    render.Content  `json:"summary,omitempty"`
	Members    []MemberSummary `json:"members"`
}

// MemberSummary describes one documented declaration.
type MemberSummary struct {
	Name       string             `json:"name"`
	Kind       apimodel.Kind      `json:"kind"`
	Path       string             `json:"path"`
	Summary    render.Content     `json:"summary,omitempty"`
	Remarks    render.Content     `json:"remarks,omitempty"`
	Modifiers  []string           `json:"modifiers,omitempty"`
	Signature  string             `json:"signature,omitempty"`
	Type       string             `json:"type,omitempty"`
	ReturnType render.Content     `json:"returnType,omitempty"`
	Deprecated render.Content     `json:"deprecated,omitempty"`
	ReleaseTag string             `json:"releaseTag,omitempty"`
	Parameters []ParameterSummary `json:"parameters,omitempty"`
}

// ParameterSummary describes one parameter of a callable member.
type ParameterSummary struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	IsOptional bool           `json:"isOptional"`
	Summary    render.Content `json:"summary"`
}

// Options configures an Aggregator.
type Options struct {
	Mode   render.Mode
	Routes routes.Builder
	// Concurrency bounds the member fan-out; <= 0 means GOMAXPROCS.
	Concurrency int
	Recorder    resolver.Recorder
	Logger      *slog.Logger
}

// Aggregator builds package summaries.
type Aggregator struct {
	opts Options
}

// New returns an Aggregator.
func New(opts Options) *Aggregator {
	if opts.Mode == "" {
		opts.Mode = render.ModeSequence
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Routes == (routes.Builder{}) {
		opts.Routes = routes.NewBuilder("", "")
	}
	return &Aggregator{opts: opts}
}

// Aggregate summarizes every entry point of every package in m. Members keep
// flatten order, so repeated runs over the same model produce identical output.
func (a *Aggregator) Aggregate(ctx context.Context, m *apimodel.Model) ([]PackageSummary, error) {
	start := time.Now()
	var out []PackageSummary
	for _, pkg := range m.Packages() {
		for _, ep := range pkg.EntryPoints() {
			summary, err := a.entryPoint(ctx, pkg, ep)
			if err != nil {
				return nil, err
			}
			out = append(out, summary)
		}
	}
	if out == nil {
		out = []PackageSummary{}
	}
	a.opts.Logger.Debug("Aggregated API model",
		slog.Int("summaries", len(out)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return out, nil
}

func (a *Aggregator) entryPoint(ctx context.Context, pkg, ep *apimodel.Item) (PackageSummary, error) {
	s := PackageSummary{Name: pkg.Name, EntryPoint: ep.Name}
	if pkg.DocComment != nil {
		tr := render.New(a.opts.Mode, a.resolverFor(pkg))
		s.Summary = tr.TransformSection(pkg.DocComment.SummarySection)
	}

	items := apimodel.Descendants(ep)
	members := make([]MemberSummary, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			members[i] = a.member(pkg, item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PackageSummary{}, err
	}

	s.Members = members
	a.opts.Logger.Debug("Aggregated entry point",
		logfields.Package(pkg.Name),
		logfields.EntryPoint(ep.DisplayName()),
		slog.Int("members", len(members)))
	return s, nil
}

func (a *Aggregator) resolverFor(item *apimodel.Item) *resolver.Resolver {
	return resolver.New(item, a.opts.Routes,
		resolver.WithRecorder(a.opts.Recorder),
		resolver.WithLogger(a.opts.Logger))
}

// member builds the summary of one item with a resolver bound to that item.
func (a *Aggregator) member(pkg, item *apimodel.Item) MemberSummary {
	tr := render.New(a.opts.Mode, a.resolverFor(item))
	ms := MemberSummary{
		Name:       item.DisplayName(),
		Kind:       item.Kind,
		Path:       a.opts.Routes.MemberPath(pkg.Name, item.Kind, item.DisplayName()),
		Signature:  item.Excerpt,
		ReleaseTag: item.ReleaseTag,
	}

	doc := item.DocComment
	if doc != nil {
		ms.Summary = tr.TransformSection(doc.SummarySection)
		if doc.RemarksBlock != nil {
			ms.Remarks = tr.TransformSection(doc.RemarksBlock.Content)
		}
		if doc.DeprecatedBlock != nil {
			ms.Deprecated = tr.TransformSection(doc.DeprecatedBlock.Content)
		}
		if len(doc.ModifierTags) > 0 {
			ms.Modifiers = append([]string(nil), doc.ModifierTags...)
		}
	}

	switch {
	case item.Kind.HasTypeExcerpt():
		ms.Type = item.TypeExcerpt
	case doc != nil && doc.ReturnsBlock != nil:
		ms.ReturnType = tr.TransformSection(doc.ReturnsBlock.Content)
	}

	if item.Kind.IsCallable() {
		ms.Parameters = make([]ParameterSummary, 0, len(item.Parameters))
		for _, p := range item.Parameters {
			ps := ParameterSummary{
				Name:       p.Name,
				Type:       p.TypeExcerpt,
				IsOptional: p.IsOptional,
				Summary:    render.Content{render.Text(NoDescription)},
			}
			if p.Doc != nil && p.Doc.Content != nil {
				ps.Summary = tr.TransformSection(p.Doc.Content)
			}
			ms.Parameters = append(ms.Parameters, ps)
		}
	}
	return ms
}
