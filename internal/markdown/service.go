package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-postadmin/internal/posts"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

// Config controls how the Markdown service discovers and parses files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// Service wires the loader, parser, and importer into a single entry point
// for filesystem-backed markdown imports.
type Service struct {
	cfg      Config
	parser   interfaces.MarkdownParser
	loader   *Loader
	importer *Importer
}

// NewService constructs a Markdown service. When parser is nil, a goldmark
// parser with the configured default options is created.
func NewService(cfg Config, postService posts.Service, parser interfaces.MarkdownParser, logger interfaces.Logger) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	importer := NewImporter(ImporterConfig{
		Posts:  postService,
		Parser: parser,
		Logger: logger,
	})

	return &Service{
		cfg:      cfg,
		parser:   parser,
		loader:   loader,
		importer: importer,
	}, nil
}

// Load reads a single Markdown document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string) (*interfaces.Document, error) {
	doc, err := s.loader.LoadFile(ctx, s.normalisePath(path))
	if err != nil {
		return nil, err
	}
	if err := s.renderDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadDirectory reads every Markdown document within the supplied directory.
func (s *Service) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	docs, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir))
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if err := s.renderDocument(ctx, doc); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// Render parses Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's Markdown body into HTML using the configured parser.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, err
	}
	doc.BodyHTML = html
	return html, nil
}

// Import stages the document at path as a post draft.
func (s *Service) Import(ctx context.Context, path string, opts ImportOptions) (*interfaces.MarkdownImportResult, error) {
	doc, err := s.loader.LoadFile(ctx, s.normalisePath(path))
	if err != nil {
		return nil, err
	}
	return s.importer.ImportDocument(ctx, doc, opts)
}

// ImportDirectory stages every markdown document under dir as post drafts.
func (s *Service) ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*interfaces.MarkdownImportResult, error) {
	docs, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir))
	if err != nil {
		return nil, err
	}
	return s.importer.ImportDocuments(ctx, docs, opts)
}

func (s *Service) renderDocument(ctx context.Context, doc *interfaces.Document) error {
	if doc == nil {
		return nil
	}
	html, err := s.Render(ctx, doc.Body, interfaces.ParseOptions{})
	if err != nil {
		return fmt.Errorf("markdown render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
