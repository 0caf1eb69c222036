package posts

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Selection tracks the record identifiers marked for bulk action. Select-all
// is scoped to the ids visible on the current page, never the full set.
type Selection struct {
	mu  sync.Mutex
	ids map[uuid.UUID]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[uuid.UUID]struct{})}
}

// Toggle flips membership of a single id.
func (s *Selection) Toggle(id uuid.UUID) {
	if id == uuid.Nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAllVisible implements page-scoped select-all: when the selection
// already equals exactly the visible set it clears, otherwise it becomes the
// visible set. Turning the page never auto-selects the new page.
func (s *Selection) ToggleAllVisible(visible []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.equalsLocked(visible) {
		s.ids = make(map[uuid.UUID]struct{})
		return
	}
	next := make(map[uuid.UUID]struct{}, len(visible))
	for _, id := range visible {
		if id != uuid.Nil {
			next[id] = struct{}{}
		}
	}
	s.ids = next
}

// Has reports membership of an id.
func (s *Selection) Has(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the selected ids in a deterministic order.
func (s *Selection) IDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uuid.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[uuid.UUID]struct{})
}

func (s *Selection) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

func (s *Selection) equalsLocked(visible []uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(visible))
	for _, id := range visible {
		if id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
	}
	if len(seen) != len(s.ids) {
		return false
	}
	for id := range seen {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}
