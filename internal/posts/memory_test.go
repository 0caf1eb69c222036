package posts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryStoreCRUD(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, &Post{Title: "first", Order: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("create must assign an id")
	}

	title := "renamed"
	updated, err := store.Update(ctx, created.ID, Patch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "renamed" {
		t.Fatalf("patch not applied")
	}

	records, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Title != "renamed" {
		t.Fatalf("unexpected list %v", records)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var notFound *NotFoundError
	if err := store.Delete(ctx, created.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if _, err := store.Update(ctx, created.ID, Patch{Title: &title}); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestMemoryStoreListOrderAndLimit(t *testing.T) {
	store := NewMemoryStore()
	store.Seed(&Post{ID: uuid.New(), Title: "third", Order: 3})
	store.Seed(&Post{ID: uuid.New(), Title: "first", Order: 1})
	store.Seed(&Post{ID: uuid.New(), Title: "second", Order: 2})

	records, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	want := []string{"first", "second", "third"}
	for i, title := range want {
		if records[i].Title != title {
			t.Fatalf("expected %v, got position %d = %q", want, i, records[i].Title)
		}
	}

	limited, err := store.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit ignored, got %d", len(limited))
	}
}

func TestMemoryStoreReturnsClones(t *testing.T) {
	store := NewMemoryStore()
	created, err := store.Create(context.Background(), &Post{Title: "guarded", Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Title = "mutated"
	created.Tags[0] = "mutated"

	records, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if records[0].Title != "guarded" || records[0].Tags[0] != "a" {
		t.Fatalf("caller mutation leaked into the store")
	}
}
