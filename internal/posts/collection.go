package posts

import (
	"sync"

	"github.com/google/uuid"
)

// Collection is the single-writer state container for the full record set
// held across an administration session. Reads hand out defensive clones;
// mutation goes through the service and coordinators only, which is why every
// write method is package-private.
type Collection struct {
	mu      sync.RWMutex
	records []*Post
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Snapshot returns a cloned view of the full record set in held order.
func (c *Collection) Snapshot() []*Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clonePosts(c.records)
}

// Get returns a clone of the record with the given id.
func (c *Collection) Get(id uuid.UUID) (*Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, record := range c.records {
		if record.ID == id {
			return clonePost(record), true
		}
	}
	return nil, false
}

// Contains reports whether the record is currently held.
func (c *Collection) Contains(id uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(id) >= 0
}

// Len returns the number of held records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// MaxOrder returns the highest order value over the held set, zero when empty.
func (c *Collection) MaxOrder() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	max := 0
	for _, record := range c.records {
		if record.Order > max {
			max = record.Order
		}
	}
	return max
}

func (c *Collection) replace(records []*Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = clonePosts(records)
}

func (c *Collection) upsert(record *Post) {
	if record == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(record.ID); i >= 0 {
		c.records[i] = clonePost(record)
		return
	}
	c.records = append(c.records, clonePost(record))
}

func (c *Collection) remove(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	return true
}

// patch applies a partial mutation to a held record in place. It returns
// false when the record is no longer held, which callers use to drop stale
// confirmations after the user navigated away.
func (c *Collection) patch(id uuid.UUID, apply func(*Post)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	apply(c.records[i])
	return true
}

// move repositions the source record immediately before the target record in
// the full sequence and renumbers every order value to its 1-based index.
// It reports the ids whose order value actually changed.
func (c *Collection) move(sourceID, targetID uuid.UUID) ([]uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.indexOf(sourceID)
	to := c.indexOf(targetID)
	if from < 0 || to < 0 {
		return nil, false
	}

	source := c.records[from]
	rest := append(c.records[:from], c.records[from+1:]...)
	if from < to {
		to--
	}
	c.records = append(rest[:to], append([]*Post{source}, rest[to:]...)...)

	changed := make([]uuid.UUID, 0)
	for i, record := range c.records {
		if record.Order != i+1 {
			record.Order = i + 1
			changed = append(changed, record.ID)
		}
	}
	return changed, true
}

func (c *Collection) indexOf(id uuid.UUID) int {
	for i, record := range c.records {
		if record.ID == id {
			return i
		}
	}
	return -1
}
