package postscmd

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-postadmin/internal/posts"
)

type fixture struct {
	store      *posts.MemoryStore
	service    posts.Service
	selection  *posts.Selection
	bulk       *posts.BulkCoordinator
	reorder    *posts.ReorderCoordinator
	codec      *posts.Codec
	collection *posts.Collection
}

func newFixture(t *testing.T, seed int) *fixture {
	t.Helper()
	store := posts.NewMemoryStore()
	for i := 0; i < seed; i++ {
		store.Seed(&posts.Post{
			ID:     uuid.New(),
			Title:  "post " + string(rune('a'+i)),
			Slug:   "post-" + string(rune('a'+i)),
			Status: "draft",
			Order:  i + 1,
		})
	}

	collection := posts.NewCollection()
	service := posts.NewService(store, collection)
	if _, err := service.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	selection := posts.NewSelection()
	codec, err := posts.NewCodec()
	if err != nil {
		t.Fatalf("codec: %v", err)
	}

	return &fixture{
		store:      store,
		service:    service,
		selection:  selection,
		bulk:       posts.NewBulkCoordinator(store, collection, selection),
		reorder:    posts.NewReorderCoordinator(store, collection),
		codec:      codec,
		collection: collection,
	}
}

func (f *fixture) selectAll() {
	for _, record := range f.collection.Snapshot() {
		f.selection.Toggle(record.ID)
	}
}

func TestBulkUpdateCommandValidate(t *testing.T) {
	if err := (BulkUpdateCommand{}).Validate(); err == nil {
		t.Fatalf("empty patch must fail validation")
	}
	featured := true
	if err := (BulkUpdateCommand{Patch: posts.Patch{Featured: &featured}}).Validate(); err != nil {
		t.Fatalf("valid patch rejected: %v", err)
	}
}

func TestBulkUpdateHandler(t *testing.T) {
	f := newFixture(t, 2)
	f.selectAll()
	handler := NewBulkUpdateHandler(f.bulk, nil)

	featured := true
	if err := handler.Execute(context.Background(), BulkUpdateCommand{Patch: posts.Patch{Featured: &featured}}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, record := range f.collection.Snapshot() {
		if !record.Featured {
			t.Fatalf("patch not applied to %s", record.ID)
		}
	}
}

func TestBulkStatusCommandValidate(t *testing.T) {
	if err := (BulkStatusCommand{Status: "archived"}).Validate(); err == nil {
		t.Fatalf("unknown status must fail validation")
	}
	if err := (BulkStatusCommand{Status: "scheduled"}).Validate(); err == nil {
		t.Fatalf("scheduled without timestamp must fail validation")
	}
	ts := "2026-04-01T09:00:00Z"
	if err := (BulkStatusCommand{Status: "scheduled", ScheduledFor: &ts}).Validate(); err != nil {
		t.Fatalf("valid scheduled transition rejected: %v", err)
	}
	if err := (BulkStatusCommand{Status: "published"}).Validate(); err != nil {
		t.Fatalf("valid publish rejected: %v", err)
	}
}

func TestBulkStatusHandler(t *testing.T) {
	f := newFixture(t, 2)
	f.selectAll()
	handler := NewBulkStatusHandler(f.bulk, nil)

	if err := handler.Execute(context.Background(), BulkStatusCommand{Status: "published"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, record := range f.collection.Snapshot() {
		if record.Status != "published" {
			t.Fatalf("status not applied: %q", record.Status)
		}
	}
}

func TestBulkStatusHandlerBadTimestamp(t *testing.T) {
	f := newFixture(t, 1)
	f.selectAll()
	handler := NewBulkStatusHandler(f.bulk, nil)

	ts := "next tuesday"
	if err := handler.Execute(context.Background(), BulkStatusCommand{Status: "scheduled", ScheduledFor: &ts}); err == nil {
		t.Fatalf("expected timestamp parse error")
	}
}

func TestBulkDeleteHandler(t *testing.T) {
	f := newFixture(t, 3)
	f.selectAll()
	handler := NewBulkDeleteHandler(f.bulk, nil)

	if err := handler.Execute(context.Background(), BulkDeleteCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if f.collection.Len() != 0 {
		t.Fatalf("expected empty collection, got %d", f.collection.Len())
	}
}

func TestMovePostCommandValidate(t *testing.T) {
	if err := (MovePostCommand{}).Validate(); err == nil {
		t.Fatalf("missing endpoints must fail validation")
	}
	if err := (MovePostCommand{SourceID: uuid.New(), TargetID: uuid.New()}).Validate(); err != nil {
		t.Fatalf("valid move rejected: %v", err)
	}
}

func TestMoveAndCommitOrderHandlers(t *testing.T) {
	f := newFixture(t, 3)
	records := f.collection.Snapshot()

	move := NewMovePostHandler(f.reorder, nil)
	if err := move.Execute(context.Background(), MovePostCommand{
		SourceID: records[2].ID,
		TargetID: records[0].ID,
	}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if f.reorder.PendingCount() == 0 {
		t.Fatalf("move left no pending order changes")
	}

	commit := NewCommitOrderHandler(f.reorder, nil)
	if err := commit.Execute(context.Background(), CommitOrderCommand{}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if f.reorder.PendingCount() != 0 {
		t.Fatalf("commit left pending order changes")
	}
}

func TestImportPostsCommandValidate(t *testing.T) {
	if err := (ImportPostsCommand{}).Validate(); err == nil {
		t.Fatalf("empty payload must fail validation")
	}
	if err := (ImportPostsCommand{Payload: []byte(`[]`)}).Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestImportPostsHandlerStages(t *testing.T) {
	f := newFixture(t, 1)
	handler := NewImportPostsHandler(f.codec, f.service, nil)

	payload := []byte(`[{"title": "Imported"}]`)
	if err := handler.Execute(context.Background(), ImportPostsCommand{Payload: payload}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(f.service.StagedDrafts()) != 1 {
		t.Fatalf("draft not staged")
	}
	if f.collection.Len() != 2 {
		t.Fatalf("expected 2 held records, got %d", f.collection.Len())
	}
}

func TestImportPostsHandlerCommit(t *testing.T) {
	f := newFixture(t, 0)
	handler := NewImportPostsHandler(f.codec, f.service, nil)

	payload := []byte(`[{"title": "Persisted"}]`)
	if err := handler.Execute(context.Background(), ImportPostsCommand{Payload: payload, Commit: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(f.service.StagedDrafts()) != 0 {
		t.Fatalf("committed draft still staged")
	}
	stored, err := f.store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 || stored[0].Title != "Persisted" {
		t.Fatalf("draft not persisted: %v", stored)
	}
}

func TestImportPostsHandlerRejectsNonArray(t *testing.T) {
	f := newFixture(t, 0)
	handler := NewImportPostsHandler(f.codec, f.service, nil)

	if err := handler.Execute(context.Background(), ImportPostsCommand{Payload: []byte(`{"title":"x"}`)}); err == nil {
		t.Fatalf("expected rejection of non-array payload")
	}
	if f.collection.Len() != 0 {
		t.Fatalf("rejected payload staged records")
	}
}
