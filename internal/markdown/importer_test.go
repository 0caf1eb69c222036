package markdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-postadmin/internal/identity"
	"github.com/goliatone/go-postadmin/internal/posts"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

func newImporterFixture(t *testing.T) (*Importer, posts.Service) {
	t.Helper()
	store := posts.NewMemoryStore()
	service := posts.NewService(store, posts.NewCollection())
	importer := NewImporter(ImporterConfig{Posts: service})
	return importer, service
}

func testDocument(path, title, slugValue string) *interfaces.Document {
	return &interfaces.Document{
		FilePath: path,
		FrontMatter: interfaces.FrontMatter{
			Title: title,
			Slug:  slugValue,
		},
		Body:         []byte("Some **markdown** body."),
		LastModified: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestImporterRequiresPostService(t *testing.T) {
	importer := NewImporter(ImporterConfig{})
	if _, err := importer.ImportDocuments(context.Background(), nil, ImportOptions{}); !errors.Is(err, ErrPostServiceRequired) {
		t.Fatalf("expected ErrPostServiceRequired, got %v", err)
	}
}

func TestImporterRequiresDocument(t *testing.T) {
	importer, _ := newImporterFixture(t)
	if _, err := importer.ImportDocument(context.Background(), nil, ImportOptions{}); !errors.Is(err, ErrDocumentMissing) {
		t.Fatalf("expected ErrDocumentMissing, got %v", err)
	}
}

func TestImporterStagesDocuments(t *testing.T) {
	importer, service := newImporterFixture(t)
	docs := []*interfaces.Document{
		testDocument("content/alpha.md", "Alpha", "alpha"),
		testDocument("content/beta.md", "Beta", "beta"),
	}

	result, err := importer.ImportDocuments(context.Background(), docs, ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.CreatedIDs) != 2 || len(result.SkippedIDs) != 0 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	staged := service.StagedDrafts()
	if len(staged) != 2 {
		t.Fatalf("expected 2 staged drafts, got %d", len(staged))
	}
	for i, draft := range staged {
		if draft.Order != i+1 {
			t.Fatalf("orders must extend the set: %d at %d", draft.Order, i)
		}
		if draft.Status != "draft" {
			t.Fatalf("imported documents enter as drafts, got %q", draft.Status)
		}
		if draft.Excerpt == "" {
			t.Fatalf("excerpt must derive from the body")
		}
	}
}

func TestImporterDeterministicIDsSkipDuplicates(t *testing.T) {
	importer, _ := newImporterFixture(t)
	doc := testDocument("content/alpha.md", "Alpha", "alpha")

	first, err := importer.ImportDocument(context.Background(), doc, ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(first.CreatedIDs) != 1 || first.CreatedIDs[0] != identity.DocumentUUID("alpha") {
		t.Fatalf("id must derive from the slug: %+v", first)
	}

	second, err := importer.ImportDocument(context.Background(), doc, ImportOptions{})
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if len(second.CreatedIDs) != 0 || len(second.SkippedIDs) != 1 {
		t.Fatalf("reimport must skip, got %+v", second)
	}
}

func TestImporterFrontmatterFallbacks(t *testing.T) {
	importer, service := newImporterFixture(t)
	doc := &interfaces.Document{
		FilePath:     "content/my-first-post.md",
		Body:         []byte("body"),
		LastModified: time.Now(),
	}

	if _, err := importer.ImportDocument(context.Background(), doc, ImportOptions{}); err != nil {
		t.Fatalf("import: %v", err)
	}
	staged := service.StagedDrafts()
	if len(staged) != 1 {
		t.Fatalf("expected 1 staged draft")
	}
	if staged[0].Slug != "my-first-post" {
		t.Fatalf("slug must derive from the file name, got %q", staged[0].Slug)
	}
	if staged[0].Title != "My First Post" {
		t.Fatalf("title must derive from the slug, got %q", staged[0].Title)
	}
}

func TestImporterStatusResolution(t *testing.T) {
	cases := []struct {
		name string
		meta interfaces.FrontMatter
		opts ImportOptions
		want string
	}{
		{"draft flag wins", interfaces.FrontMatter{Status: "published", Draft: true}, ImportOptions{}, "draft"},
		{"explicit status", interfaces.FrontMatter{Status: "published"}, ImportOptions{}, "published"},
		{"default status", interfaces.FrontMatter{}, ImportOptions{DefaultStatus: "published"}, "published"},
		{"blank defaults to draft", interfaces.FrontMatter{}, ImportOptions{}, "draft"},
		{"unknown demotes to draft", interfaces.FrontMatter{Status: "archived"}, ImportOptions{}, "draft"},
		{"scheduled demotes without timestamp", interfaces.FrontMatter{Status: "scheduled"}, ImportOptions{}, "draft"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveStatus(tc.meta, tc.opts); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestImporterCommitPersists(t *testing.T) {
	importer, service := newImporterFixture(t)
	doc := testDocument("content/alpha.md", "Alpha", "alpha")
	doc.FrontMatter.Date = time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	result, err := importer.ImportDocument(context.Background(), doc, ImportOptions{Commit: true})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected commit errors: %v", result.Errors)
	}
	if len(service.StagedDrafts()) != 0 {
		t.Fatalf("committed drafts must leave staging")
	}
	snapshot := service.Collection().Snapshot()
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 held record, got %d", len(snapshot))
	}
	if snapshot[0].PublishedAt != "2026-01-20" {
		t.Fatalf("frontmatter date lost: %q", snapshot[0].PublishedAt)
	}
}

func TestExcerptFromHTML(t *testing.T) {
	short := excerptFromHTML([]byte("<p>Hello <strong>world</strong></p>"))
	if short != "Hello world" {
		t.Fatalf("tags not stripped: %q", short)
	}

	long := make([]byte, 0, 600)
	for i := 0; i < 60; i++ {
		long = append(long, []byte("wordiness ")...)
	}
	got := excerptFromHTML(long)
	if len(got) > excerptLimit+len("…") {
		t.Fatalf("excerpt too long: %d", len(got))
	}
	if got[len(got)-len("…"):] != "…" {
		t.Fatalf("truncated excerpt must end with ellipsis: %q", got)
	}
}
