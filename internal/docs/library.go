package docs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	derrors "git.home.luguber.info/inful/apisite/internal/docs/errors"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/logfields"
)

// DefaultExtensions are the file suffixes treated as documents.
var DefaultExtensions = []string{".md", ".mdx"}

// Options tunes library loading.
type Options struct {
	Extensions []string
	Bundler    Bundler
	Logger     *slog.Logger
}

// Library is an immutable, slug-ordered set of rendered documents.
type Library struct {
	bundles []Bundle
	bySlug  map[string]int
}

// LoadDir renders every document below dir. A missing directory yields an
// empty library.
func LoadDir(ctx context.Context, dir string, opts Options) (*Library, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		logger(opts).Debug("Documents directory absent", logfields.Path(dir))
		return Empty(), nil
	}
	return LoadFS(ctx, os.DirFS(dir), opts)
}

// LoadFS renders every document in fsys. Slugs are slash-separated paths
// relative to the root with the extension removed; dot-files and
// dot-directories are skipped.
func LoadFS(ctx context.Context, fsys fs.FS, opts Options) (*Library, error) {
	log := logger(opts)
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	bundler := opts.Bundler
	if bundler == nil {
		bundler = NewGoldmarkBundler()
	}

	sources := map[string]string{}
	var bundles []Bundle
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return ferrors.WrapError(errors.Join(derrors.ErrDocsDirWalkFailed, err), ferrors.CategoryDocs, "failed to walk documents directory").
				WithContext("path", p).
				Build()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := matchExtension(p, exts)
		if ext == "" {
			return nil
		}

		slug := strings.TrimSuffix(p, ext)
		if prev, dup := sources[slug]; dup {
			return ferrors.WrapError(derrors.ErrSlugCollision, ferrors.CategoryDocs, "two documents share a slug").
				WithContext("slug", slug).
				WithContext("first", prev).
				WithContext("second", p).
				Build()
		}
		sources[slug] = p

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return ferrors.WrapError(errors.Join(derrors.ErrFileReadFailed, err), ferrors.CategoryDocs, "failed to read document").
				WithContext("path", p).
				Build()
		}
		b, err := bundler.Bundle(data)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryDocs, "failed to render document").
				WithContext("path", p).
				Build()
		}
		b.Slug = slug
		if b.Name == "" {
			b.Name = path.Base(slug)
		}
		bundles = append(bundles, b)
		log.Debug("Rendered document", logfields.Slug(slug), logfields.Path(p))
		return nil
	})
	if err != nil {
		return nil, err
	}

	lib := newLibrary(bundles)
	log.Info("Documents loaded", slog.Int("documents", lib.Len()))
	return lib, nil
}

// Empty returns a library without documents.
func Empty() *Library { return newLibrary(nil) }

func newLibrary(bundles []Bundle) *Library {
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Slug < bundles[j].Slug })
	idx := make(map[string]int, len(bundles))
	for i, b := range bundles {
		idx[b.Slug] = i
	}
	return &Library{bundles: bundles, bySlug: idx}
}

// List returns every bundle in slug order. The result is never nil.
func (l *Library) List() []Bundle {
	out := make([]Bundle, len(l.bundles))
	copy(out, l.bundles)
	return out
}

// Get returns the bundle for slug or a not_found error.
func (l *Library) Get(slug string) (Bundle, error) {
	i, ok := l.bySlug[slug]
	if !ok {
		return Bundle{}, ferrors.NotFoundError("document not found").WithContext("slug", slug).Build()
	}
	return l.bundles[i], nil
}

// Len reports the number of documents.
func (l *Library) Len() int { return len(l.bundles) }

// Hash identifies the library contents: it changes when any slug or
// fingerprint changes.
func (l *Library) Hash() string {
	h := sha256.New()
	for _, b := range l.bundles {
		h.Write([]byte(b.Slug))
		h.Write([]byte{0})
		h.Write([]byte(b.Fingerprint))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func matchExtension(p string, exts []string) string {
	ext := path.Ext(p)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return ext
		}
	}
	return ""
}

func logger(opts Options) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return slog.Default()
}
