package site

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/apisite/internal/apimodel"
	"git.home.luguber.info/inful/apisite/internal/config"
	"git.home.luguber.info/inful/apisite/internal/docs"
)

// Source supplies the inputs of one generation pass.
type Source interface {
	LoadModel(ctx context.Context) (*apimodel.Model, error)
	LoadDocs(ctx context.Context) (*docs.Library, error)
}

// DirSource reads the API model and documents from local directories.
type DirSource struct {
	ModelDir      string
	MaxDepth      int
	DocsDir       string
	DocExtensions []string
	Logger        *slog.Logger
}

// NewDirSource returns a DirSource for the model and docs sections of cfg.
func NewDirSource(cfg *config.Config, logger *slog.Logger) *DirSource {
	return &DirSource{
		ModelDir:      cfg.Model.Dir,
		MaxDepth:      cfg.Model.MaxDepth,
		DocsDir:       cfg.Docs.Dir,
		DocExtensions: cfg.Docs.Extensions,
		Logger:        logger,
	}
}

func (s *DirSource) LoadModel(_ context.Context) (*apimodel.Model, error) {
	return apimodel.LoadDir(s.ModelDir, apimodel.LoadOptions{MaxDepth: s.MaxDepth, Logger: s.Logger})
}

func (s *DirSource) LoadDocs(ctx context.Context) (*docs.Library, error) {
	if s.DocsDir == "" {
		return docs.Empty(), nil
	}
	return docs.LoadDir(ctx, s.DocsDir, docs.Options{Extensions: s.DocExtensions, Logger: s.Logger})
}

// WatchDirs returns the directories whose changes should trigger a refresh.
func (s *DirSource) WatchDirs() []string {
	dirs := []string{s.ModelDir}
	if s.DocsDir != "" {
		dirs = append(dirs, s.DocsDir)
	}
	return dirs
}
