package posts

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunStore persists records through a bun-backed repository.
type BunStore struct {
	repo repository.Repository[*Post]
}

func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache constructs a BunStore with optional read-through caching.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunStore {
	base := NewPostRepository(db)
	return &BunStore{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (s *BunStore) List(ctx context.Context, limit int) ([]*Post, error) {
	criteria := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.display_order ASC")
		}),
	}
	if limit > 0 {
		criteria = append(criteria, repository.SelectPaginate(limit, 0))
	}
	records, _, err := s.repo.List(ctx, criteria...)
	if err != nil {
		return nil, fmt.Errorf("post repository error: %w", err)
	}
	return records, nil
}

func (s *BunStore) Create(ctx context.Context, draft *Post) (*Post, error) {
	record := clonePost(draft)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("post repository error: %w", err)
	}
	return created, nil
}

func (s *BunStore) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Post, error) {
	record, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "post", id.String())
	}
	applyPatch(record, patch, time.Now())
	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "post", id.String())
	}
	return updated, nil
}

func (s *BunStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, &Post{ID: id}); err != nil {
		return mapRepositoryError(err, "post", id.String())
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

var _ Store = (*BunStore)(nil)
