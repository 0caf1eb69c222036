package posts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-postadmin/internal/logging"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

// BulkFailure records one per-record failure inside a bulk operation.
type BulkFailure struct {
	ID     uuid.UUID
	Reason string
}

// BulkOutcome partitions a bulk operation's per-record results. Partial
// failure is an ordinary outcome, not an error: callers branch on Failed.
type BulkOutcome struct {
	Succeeded []uuid.UUID
	Failed    []BulkFailure
}

// FullySucceeded reports whether every record confirmed.
func (o BulkOutcome) FullySucceeded() bool {
	return len(o.Failed) == 0 && len(o.Succeeded) > 0
}

// BulkCoordinator fans a mutation out to the store, one independent request
// per selected id, and reconciles the held set from the confirmed subset.
// Callers must not start a second bulk operation before the previous one
// settles; the coordinator does not guard overlapping batches.
type BulkCoordinator struct {
	store      Store
	collection *Collection
	selection  *Selection
	logger     interfaces.Logger
	now        func() time.Time
}

// BulkOption configures the coordinator.
type BulkOption func(*BulkCoordinator)

// WithBulkLogger attaches a logger to the coordinator.
func WithBulkLogger(logger interfaces.Logger) BulkOption {
	return func(c *BulkCoordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBulkClock overrides the clock used to stamp reconciled records.
func WithBulkClock(clock func() time.Time) BulkOption {
	return func(c *BulkCoordinator) {
		if clock != nil {
			c.now = clock
		}
	}
}

// NewBulkCoordinator wires the coordinator to the store, the session
// collection, and the selection it settles against.
func NewBulkCoordinator(store Store, collection *Collection, selection *Selection, opts ...BulkOption) *BulkCoordinator {
	c := &BulkCoordinator{
		store:      store,
		collection: collection,
		selection:  selection,
		logger:     logging.NoOp(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mutate applies the patch to every selected record. Per-id requests race
// independently; the coordinator joins on all of them, then patches locally
// only the ids the store confirmed. A full success clears the selection,
// a partial one keeps the failed ids selected for retry.
func (c *BulkCoordinator) Mutate(ctx context.Context, patch Patch) (BulkOutcome, error) {
	ids := c.selection.IDs()
	if len(ids) == 0 {
		return BulkOutcome{}, ErrSelectionEmpty
	}
	if patch.IsZero() {
		return BulkOutcome{}, ErrPatchEmpty
	}
	if err := validatePatch(patch); err != nil {
		return BulkOutcome{}, err
	}

	outcome := fanOut(ids, func(id uuid.UUID) (uuid.UUID, error) {
		if _, err := c.store.Update(ctx, id, patch); err != nil {
			return id, err
		}
		return id, nil
	})

	now := c.now()
	for _, id := range outcome.Succeeded {
		// Stale guard: skip records the user removed while the batch was in flight.
		if !c.collection.patch(id, func(record *Post) { applyPatch(record, patch, now) }) {
			continue
		}
		c.selection.remove(id)
	}

	c.logger.Info("posts.bulk.mutate",
		"selected", len(ids),
		"succeeded", len(outcome.Succeeded),
		"failed", len(outcome.Failed),
	)
	return outcome, nil
}

// Delete removes every selected record with the same independence and
// partial-failure contract as Mutate. Confirmed ids leave both the held set
// and the selection.
func (c *BulkCoordinator) Delete(ctx context.Context) (BulkOutcome, error) {
	ids := c.selection.IDs()
	if len(ids) == 0 {
		return BulkOutcome{}, ErrSelectionEmpty
	}

	outcome := fanOut(ids, func(id uuid.UUID) (uuid.UUID, error) {
		if err := c.store.Delete(ctx, id); err != nil {
			return id, err
		}
		return id, nil
	})

	for _, id := range outcome.Succeeded {
		c.collection.remove(id)
		c.selection.remove(id)
	}

	c.logger.Info("posts.bulk.delete",
		"selected", len(ids),
		"succeeded", len(outcome.Succeeded),
		"failed", len(outcome.Failed),
	)
	return outcome, nil
}

// fanOut runs one goroutine per item and joins on the whole batch. Results
// land in per-index slots so the partitioned outcome preserves input order
// even though the requests race.
func fanOut[T any](items []T, call func(T) (uuid.UUID, error)) BulkOutcome {
	type slot struct {
		id  uuid.UUID
		err error
	}

	results := make([]slot, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			id, err := call(item)
			results[i] = slot{id: id, err: err}
		}(i, item)
	}
	wg.Wait()

	outcome := BulkOutcome{}
	for _, result := range results {
		if result.err != nil {
			outcome.Failed = append(outcome.Failed, BulkFailure{
				ID:     result.id,
				Reason: result.err.Error(),
			})
			continue
		}
		outcome.Succeeded = append(outcome.Succeeded, result.id)
	}
	return outcome
}
