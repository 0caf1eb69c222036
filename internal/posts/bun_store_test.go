package posts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-postadmin/pkg/testsupport"
)

func newBunFixture(t *testing.T) (*BunStore, *bun.DB) {
	t.Helper()
	sqldb, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})

	if _, err := db.NewCreateTable().Model((*Post)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create table: %v", err)
	}
	// The shared in-memory database persists across fixtures in one process.
	if _, err := db.NewDelete().Model((*Post)(nil)).Where("1 = 1").Exec(context.Background()); err != nil {
		t.Fatalf("reset table: %v", err)
	}
	return NewBunStore(db), db
}

func TestBunStoreCreateAndList(t *testing.T) {
	store, _ := newBunFixture(t)
	ctx := context.Background()

	for i, title := range []string{"second", "first"} {
		if _, err := store.Create(ctx, &Post{
			Title:  title,
			Slug:   title,
			Status: "draft",
			Tags:   []string{"seed"},
			Order:  2 - i,
		}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Listed in display order, not insertion order.
	if records[0].Title != "first" || records[1].Title != "second" {
		t.Fatalf("unexpected order: %q, %q", records[0].Title, records[1].Title)
	}
	if len(records[0].Tags) != 1 || records[0].Tags[0] != "seed" {
		t.Fatalf("tags lost through the database: %v", records[0].Tags)
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit ignored: %d", len(limited))
	}
}

func TestBunStoreUpdate(t *testing.T) {
	store, _ := newBunFixture(t)
	ctx := context.Background()

	created, err := store.Create(ctx, &Post{Title: "original", Slug: "original", Status: "draft", Order: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "renamed"
	updated, err := store.Update(ctx, created.ID, Patch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "renamed" {
		t.Fatalf("patch not applied: %q", updated.Title)
	}

	var notFound *NotFoundError
	if _, err := store.Update(ctx, uuid.New(), Patch{Title: &title}); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestBunStoreDelete(t *testing.T) {
	store, _ := newBunFixture(t)
	ctx := context.Background()

	created, err := store.Create(ctx, &Post{Title: "doomed", Slug: "doomed", Status: "draft", Order: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("record survived delete")
	}
}
