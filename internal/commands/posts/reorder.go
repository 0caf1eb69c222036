package postscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-postadmin/internal/commands"
	"github.com/goliatone/go-postadmin/internal/posts"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

const (
	movePostMessageType    = "postadmin.posts.move"
	commitOrderMessageType = "postadmin.posts.commit_order"
)

// MovePostCommand drops the source post onto the target position.
type MovePostCommand struct {
	SourceID uuid.UUID `json:"source_id"`
	TargetID uuid.UUID `json:"target_id"`
}

// Type implements command.Message.
func (MovePostCommand) Type() string { return movePostMessageType }

// Validate ensures both endpoints of the move are present.
func (m MovePostCommand) Validate() error {
	errs := validation.Errors{}
	if m.SourceID == uuid.Nil {
		errs["source_id"] = validation.NewError("postadmin.posts.move.source_required", "source_id is required")
	}
	if m.TargetID == uuid.Nil {
		errs["target_id"] = validation.NewError("postadmin.posts.move.target_required", "target_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MovePostHandler records a pending reorder via the coordinator.
type MovePostHandler struct {
	inner *commands.Handler[MovePostCommand]
}

// NewMovePostHandler constructs a handler wired to the provided coordinator.
func NewMovePostHandler(coordinator *posts.ReorderCoordinator, logger interfaces.Logger, opts ...commands.HandlerOption[MovePostCommand]) *MovePostHandler {
	exec := func(_ context.Context, msg MovePostCommand) error {
		return coordinator.Move(msg.SourceID, msg.TargetID)
	}

	handlerOpts := []commands.HandlerOption[MovePostCommand]{
		commands.WithLogger[MovePostCommand](logger),
		commands.WithOperation[MovePostCommand]("posts.move"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MovePostHandler{
		inner: commands.NewHandler[MovePostCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[MovePostCommand].Execute.
func (h *MovePostHandler) Execute(ctx context.Context, msg MovePostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CommitOrderCommand persists pending order changes to the record store.
type CommitOrderCommand struct{}

// Type implements command.Message.
func (CommitOrderCommand) Type() string { return commitOrderMessageType }

// Validate implements command.Message. Pending state is owned by the coordinator.
func (CommitOrderCommand) Validate() error { return nil }

// CommitOrderHandler flushes pending order values through the coordinator.
type CommitOrderHandler struct {
	inner *commands.Handler[CommitOrderCommand]
}

// NewCommitOrderHandler constructs a handler wired to the provided coordinator.
func NewCommitOrderHandler(coordinator *posts.ReorderCoordinator, logger interfaces.Logger, opts ...commands.HandlerOption[CommitOrderCommand]) *CommitOrderHandler {
	exec := func(ctx context.Context, _ CommitOrderCommand) error {
		_, err := coordinator.Commit(ctx)
		return err
	}

	handlerOpts := []commands.HandlerOption[CommitOrderCommand]{
		commands.WithLogger[CommitOrderCommand](logger),
		commands.WithOperation[CommitOrderCommand]("posts.commit_order"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CommitOrderHandler{
		inner: commands.NewHandler[CommitOrderCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CommitOrderCommand].Execute.
func (h *CommitOrderHandler) Execute(ctx context.Context, msg CommitOrderCommand) error {
	return h.inner.Execute(ctx, msg)
}
