package posts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory store implementation for scaffolding and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Post
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]*Post)}
}

// Seed inserts or replaces a record without store-side id assignment.
func (m *MemoryStore) Seed(record *Post) {
	if record == nil || record.ID == uuid.Nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = clonePost(record)
}

// List returns up to limit records ordered by their display order.
func (m *MemoryStore) List(_ context.Context, limit int) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Post, 0, len(m.records))
	for _, record := range m.records {
		out = append(out, clonePost(record))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Create stores the draft, assigning an id when the draft carries none.
func (m *MemoryStore) Create(_ context.Context, draft *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePost(draft)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.records[copied.ID] = copied
	return clonePost(copied), nil
}

// Update applies the patch to a stored record.
func (m *MemoryStore) Update(_ context.Context, id uuid.UUID, patch Patch) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	applyPatch(record, patch, time.Now())
	return clonePost(record), nil
}

// Delete removes a stored record.
func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return &NotFoundError{Resource: "post", Key: id.String()}
	}
	delete(m.records, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
