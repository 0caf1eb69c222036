package markdown

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-postadmin/internal/posts"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

func newServiceFixture(t *testing.T) (*Service, posts.Service, string) {
	t.Helper()
	base := t.TempDir()
	writeContent(t, base, "alpha.md", "---\ntitle: Alpha\nslug: alpha\n---\n# Alpha\n\nIntro paragraph.")
	writeContent(t, base, "beta.md", "---\ntitle: Beta\nslug: beta\ndate: 2026-02-12T00:00:00Z\n---\nBeta body.")
	writeContent(t, base, "ignore.txt", "not markdown")

	store := posts.NewMemoryStore()
	postService := posts.NewService(store, posts.NewCollection())
	service, err := NewService(Config{BasePath: base}, postService, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service, postService, base
}

func writeContent(t *testing.T, base, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(base, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestServiceRequiresExistingBasePath(t *testing.T) {
	store := posts.NewMemoryStore()
	postService := posts.NewService(store, posts.NewCollection())
	if _, err := NewService(Config{BasePath: "/nonexistent/path"}, postService, nil, nil); err == nil {
		t.Fatalf("expected stat error for missing base path")
	}
}

func TestServiceLoadRendersBody(t *testing.T) {
	service, _, _ := newServiceFixture(t)

	doc, err := service.Load(context.Background(), "alpha.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.FrontMatter.Title != "Alpha" {
		t.Fatalf("frontmatter missing: %+v", doc.FrontMatter)
	}
	if !strings.Contains(string(doc.BodyHTML), "<h1") {
		t.Fatalf("body not rendered: %s", doc.BodyHTML)
	}
}

func TestServiceLoadDirectory(t *testing.T) {
	service, _, _ := newServiceFixture(t)

	docs, err := service.LoadDirectory(context.Background(), "")
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 markdown documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if len(doc.BodyHTML) == 0 {
			t.Fatalf("document %s not rendered", doc.FilePath)
		}
	}
}

func TestServiceImportDirectory(t *testing.T) {
	service, postService, _ := newServiceFixture(t)

	result, err := service.ImportDirectory(context.Background(), "", ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.CreatedIDs) != 2 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	staged := postService.StagedDrafts()
	if len(staged) != 2 {
		t.Fatalf("expected 2 staged drafts, got %d", len(staged))
	}
	for _, draft := range staged {
		if draft.Slug != "alpha" && draft.Slug != "beta" {
			t.Fatalf("unexpected slug %q", draft.Slug)
		}
		if draft.Slug == "beta" && draft.PublishedAt != "2026-02-12" {
			t.Fatalf("frontmatter date lost: %q", draft.PublishedAt)
		}
	}
}

func TestServiceRenderMergesOptions(t *testing.T) {
	base := t.TempDir()
	store := posts.NewMemoryStore()
	postService := posts.NewService(store, posts.NewCollection())
	service, err := NewService(Config{
		BasePath: base,
		Parser:   interfaces.ParseOptions{SafeMode: true},
	}, postService, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	out, err := service.Render(context.Background(), []byte("<b>raw</b>"), interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<b>raw</b>") {
		t.Fatalf("configured safe mode must carry into render: %s", out)
	}
}
