package posts

import (
	"context"

	"github.com/google/uuid"
)

// Store abstracts the authoritative record store. Every call crosses a
// network or storage boundary and may fail independently; implementations
// return NotFoundError for missing records so callers can branch on it.
type Store interface {
	List(ctx context.Context, limit int) ([]*Post, error)
	Create(ctx context.Context, draft *Post) (*Post, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
