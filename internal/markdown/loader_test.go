package markdown

import (
	"context"
	"testing"
	"testing/fstest"
	"time"
)

func testContentFS() fstest.MapFS {
	modTime := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return fstest.MapFS{
		"posts/hello.md": &fstest.MapFile{
			Data:    []byte("---\ntitle: Hello\n---\nHello body."),
			ModTime: modTime,
		},
		"posts/zed.md": &fstest.MapFile{
			Data:    []byte("---\ntitle: Zed\n---\nZed body."),
			ModTime: modTime,
		},
		"posts/nested/deep.md": &fstest.MapFile{
			Data:    []byte("---\ntitle: Deep\n---\nDeep body."),
			ModTime: modTime,
		},
		"posts/notes.txt": &fstest.MapFile{
			Data:    []byte("not markdown"),
			ModTime: modTime,
		},
	}
}

func TestLoaderLoadFile(t *testing.T) {
	loader := NewLoader(testContentFS(), LoaderConfig{})

	doc, err := loader.LoadFile(context.Background(), "posts/hello.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.FrontMatter.Title != "Hello" {
		t.Fatalf("frontmatter not parsed: %+v", doc.FrontMatter)
	}
	if doc.FilePath != "posts/hello.md" {
		t.Fatalf("unexpected path %q", doc.FilePath)
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("checksum missing")
	}
	if doc.LastModified.IsZero() {
		t.Fatalf("modification time missing")
	}
}

func TestLoaderLoadDirectoryNonRecursive(t *testing.T) {
	loader := NewLoader(testContentFS(), LoaderConfig{})

	docs, err := loader.LoadDirectory(context.Background(), "posts")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	// Sorted by path, non-md files skipped, nested dir not traversed.
	if docs[0].FilePath != "posts/hello.md" || docs[1].FilePath != "posts/zed.md" {
		t.Fatalf("unexpected order: %s, %s", docs[0].FilePath, docs[1].FilePath)
	}
}

func TestLoaderLoadDirectoryRecursive(t *testing.T) {
	loader := NewLoader(testContentFS(), LoaderConfig{Recursive: true})

	docs, err := loader.LoadDirectory(context.Background(), "posts")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
}

func TestLoaderPatternFilter(t *testing.T) {
	loader := NewLoader(testContentFS(), LoaderConfig{Pattern: "*.txt"})

	docs, err := loader.LoadDirectory(context.Background(), "posts")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 1 || docs[0].FilePath != "posts/notes.txt" {
		t.Fatalf("pattern ignored: %v", docs)
	}
}

func TestLoaderCancelledContext(t *testing.T) {
	loader := NewLoader(testContentFS(), LoaderConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadFile(ctx, "posts/hello.md"); err == nil {
		t.Fatalf("expected context error")
	}
	if _, err := loader.LoadDirectory(ctx, "posts"); err == nil {
		t.Fatalf("expected context error")
	}
}
