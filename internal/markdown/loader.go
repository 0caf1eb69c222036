package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

// LoaderConfig configures how Markdown files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where Markdown documents live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into Markdown documents with metadata.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads and parses a single Markdown document.
func (l *Loader) LoadFile(ctx context.Context, path string) (*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	return doc, nil
}

// LoadDirectory discovers Markdown files under dir and returns parsed
// documents sorted by file path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	var docs []*interfaces.Document

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel) {
			return nil
		}

		doc, err := l.LoadFile(ctx, rel)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})

	return docs, nil
}

func (l *Loader) shouldRecurse(root, current string) bool {
	if l.recursive {
		return true
	}
	// With recursion disabled only the root directory is walked.
	return filepath.Clean(root) == filepath.Clean(current)
}

func (l *Loader) matchesPattern(path string) bool {
	// fs.WalkDir yields slash-separated paths for DirFS.
	pattern := filepath.ToSlash(l.pattern)
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", path, err)
	}
	return rel, nil
}
