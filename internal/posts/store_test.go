package posts

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// stubStore is an in-memory Store with per-id failure injection so tests can
// exercise partial outcomes without a network.
type stubStore struct {
	mu         sync.Mutex
	records    map[uuid.UUID]*Post
	failUpdate map[uuid.UUID]error
	failDelete map[uuid.UUID]error
	failCreate error
	updates    int
	creates    int
}

var errStubUnavailable = errors.New("store unavailable")

func newStubStore(records ...*Post) *stubStore {
	s := &stubStore{
		records:    make(map[uuid.UUID]*Post),
		failUpdate: make(map[uuid.UUID]error),
		failDelete: make(map[uuid.UUID]error),
	}
	for _, record := range records {
		s.records[record.ID] = clonePost(record)
	}
	return s
}

func (s *stubStore) List(ctx context.Context, limit int) ([]*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Post, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, clonePost(record))
	}
	return out, nil
}

func (s *stubStore) Create(ctx context.Context, draft *Post) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.failCreate != nil {
		return nil, s.failCreate
	}
	record := clonePost(draft)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	s.records[record.ID] = record
	return clonePost(record), nil
}

func (s *stubStore) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if err := s.failUpdate[id]; err != nil {
		return nil, err
	}
	record, ok := s.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	applyPatch(record, patch, record.UpdatedAt)
	return clonePost(record), nil
}

func (s *stubStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failDelete[id]; err != nil {
		return err
	}
	if _, ok := s.records[id]; !ok {
		return &NotFoundError{Resource: "post", Key: id.String()}
	}
	delete(s.records, id)
	return nil
}

func (s *stubStore) get(id uuid.UUID) (*Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return clonePost(record), true
}

var _ Store = (*stubStore)(nil)
