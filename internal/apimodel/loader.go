package apimodel

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/logfields"
	"git.home.luguber.info/inful/apisite/internal/tsdoc"
)

// DefaultMaxDepth bounds member nesting in a package descriptor.
const DefaultMaxDepth = 64

// LoadOptions tunes model loading.
type LoadOptions struct {
	// MaxDepth is the deepest member nesting accepted; <= 0 means DefaultMaxDepth.
	MaxDepth int
	Logger   *slog.Logger
}

// LoadDir loads every package descriptor in dir into a new Model.
func LoadDir(dir string, opts LoadOptions) (*Model, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "API model directory is not accessible").
			Fatal().
			WithContext("dir", dir).
			Build()
	}
	if !info.IsDir() {
		return nil, ferrors.FileSystemError("API model path is not a directory").WithContext("dir", dir).Build()
	}
	return LoadFS(os.DirFS(dir), ".", opts)
}

// LoadFS loads every package descriptor in dir of fsys.
//
// Files are read in name order. Sub-directories and dot-files are skipped;
// every other file must be a valid descriptor, and any failure aborts the
// whole load.
func LoadFS(fsys fs.FS, dir string, opts LoadOptions) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to list API model directory").
			Fatal().
			WithContext("dir", dir).
			Build()
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	model := NewModel()
	var totalBytes uint64
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		file := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryModel, "failed to read package descriptor").
				Fatal().
				WithContext("file", file).
				Build()
		}
		pkg, err := decodePackage(data, maxDepth)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryModel, "failed to load package descriptor").
				Fatal().
				WithContext("file", file).
				Build()
		}
		if model.FindPackage(pkg.Name) != nil {
			return nil, ferrors.ModelError("duplicate package in API model directory").
				WithContext("file", file).
				WithContext("package", pkg.Name).
				Build()
		}
		model.AddPackage(pkg)
		totalBytes += uint64(len(data))
		logger.Debug("Loaded package descriptor",
			logfields.Package(pkg.Name),
			logfields.Path(file),
			slog.String("size", humanize.Bytes(uint64(len(data)))))
	}

	logger.Info("API model loaded",
		slog.Int("packages", len(model.Packages())),
		slog.String("size", humanize.Bytes(totalBytes)))
	return model, nil
}

// decodePackage decodes one descriptor file into a package item.
func decodePackage(data []byte, maxDepth int) (*Item, error) {
	var root descriptor
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != string(KindPackage) {
		return nil, fmt.Errorf("descriptor root kind is %q, want %q", root.Kind, KindPackage)
	}
	if root.Name == "" {
		return nil, fmt.Errorf("package descriptor has no name")
	}
	return buildItem(&root, nil, 0, maxDepth)
}

// buildItem converts a descriptor subtree. depth counts nesting below the package.
func buildItem(d *descriptor, parent *Item, depth, maxDepth int) (*Item, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("member nesting exceeds maximum depth %d at %q", maxDepth, d.Name)
	}

	item := &Item{
		Kind:          ParseKind(d.Kind),
		Name:          d.Name,
		ReleaseTag:    d.ReleaseTag,
		IsStatic:      d.IsStatic,
		IsOptional:    d.IsOptional,
		OverloadIndex: d.OverloadIndex,
		Excerpt:       excerpt(d.ExcerptTokens, &tokenRange{StartIndex: 0, EndIndex: len(d.ExcerptTokens)}),
		TypeExcerpt:   excerpt(d.ExcerptTokens, d.typeRange()),
		Parent:        parent,
	}
	if strings.TrimSpace(d.DocComment) != "" {
		item.DocComment = tsdoc.Parse(d.DocComment)
	}
	if item.ReleaseTag == "" || item.ReleaseTag == releaseTagNone {
		item.ReleaseTag = releaseTagFromModifiers(item.DocComment)
	}

	if item.Kind.IsCallable() {
		item.Parameters = make([]*Parameter, 0, len(d.Parameters))
		for _, p := range d.Parameters {
			item.Parameters = append(item.Parameters, &Parameter{
				Name:        p.ParameterName,
				IsOptional:  p.IsOptional,
				TypeExcerpt: excerpt(d.ExcerptTokens, p.ParameterTypeTokenRange),
				Doc:         item.DocComment.ParamBlock(p.ParameterName),
			})
		}
	}

	for _, md := range d.Members {
		if md == nil {
			continue
		}
		child, err := buildItem(md, item, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		item.Members = append(item.Members, child)
	}
	return item, nil
}

const releaseTagNone = "None"

// releaseTagFromModifiers derives the release tag of a declaration whose
// descriptor does not carry one. The most restrictive modifier wins.
func releaseTagFromModifiers(doc *tsdoc.Comment) string {
	switch {
	case doc.HasModifier("@internal"):
		return "Internal"
	case doc.HasModifier("@alpha"):
		return "Alpha"
	case doc.HasModifier("@beta"):
		return "Beta"
	case doc.HasModifier("@public"):
		return "Public"
	}
	return ""
}
