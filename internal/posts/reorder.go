package posts

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-postadmin/internal/logging"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

// ReorderCoordinator turns drag-drop transpositions into contiguous order
// values over the full record set and persists them on an explicit commit.
// Repositioning always works on the true underlying sequence, so reordering
// while a filter narrows the visible page still anchors at the target's real
// position.
type ReorderCoordinator struct {
	store      Store
	collection *Collection
	logger     interfaces.Logger
	pending    map[uuid.UUID]struct{}
}

// ReorderOption configures the coordinator.
type ReorderOption func(*ReorderCoordinator)

// WithReorderLogger attaches a logger to the coordinator.
func WithReorderLogger(logger interfaces.Logger) ReorderOption {
	return func(c *ReorderCoordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewReorderCoordinator wires the coordinator to the store and the session
// collection.
func NewReorderCoordinator(store Store, collection *Collection, opts ...ReorderOption) *ReorderCoordinator {
	c := &ReorderCoordinator{
		store:      store,
		collection: collection,
		logger:     logging.NoOp(),
		pending:    make(map[uuid.UUID]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Move removes the source record from its position and reinserts it
// immediately before the target, then renumbers every order value to its
// 1-based index. Dropping a record onto itself is a no-op; an unknown id is
// rejected before any state changes. Records whose order value did not move
// accumulate no pending write, which makes repeated identical gestures
// idempotent.
func (c *ReorderCoordinator) Move(sourceID, targetID uuid.UUID) error {
	if sourceID == uuid.Nil || targetID == uuid.Nil {
		return ErrPostIDRequired
	}
	if sourceID == targetID {
		return nil
	}

	changed, ok := c.collection.move(sourceID, targetID)
	if !ok {
		return ErrReorderUnknownPost
	}
	for _, id := range changed {
		c.pending[id] = struct{}{}
	}
	if len(changed) > 0 {
		c.logger.Debug("posts.reorder.move",
			"source", sourceID.String(),
			"target", targetID.String(),
			"renumbered", len(changed),
		)
	}
	return nil
}

// PendingCount returns how many records carry an uncommitted order value.
func (c *ReorderCoordinator) PendingCount() int {
	return len(c.pending)
}

// Commit persists the pending order values as a sequence of single-record
// updates. Every record is attempted; confirmed ids drop out of the pending
// set while failed ids stay pending so the commit can be retried.
func (c *ReorderCoordinator) Commit(ctx context.Context) (BulkOutcome, error) {
	if len(c.pending) == 0 {
		return BulkOutcome{}, ErrNoPendingOrder
	}

	outcome := BulkOutcome{}
	for _, record := range c.collection.Snapshot() {
		if _, ok := c.pending[record.ID]; !ok {
			continue
		}
		order := record.Order
		if _, err := c.store.Update(ctx, record.ID, Patch{Order: &order}); err != nil {
			outcome.Failed = append(outcome.Failed, BulkFailure{ID: record.ID, Reason: err.Error()})
			continue
		}
		delete(c.pending, record.ID)
		outcome.Succeeded = append(outcome.Succeeded, record.ID)
	}

	c.logger.Info("posts.reorder.commit",
		"succeeded", len(outcome.Succeeded),
		"failed", len(outcome.Failed),
	)
	return outcome, nil
}
