package postscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-postadmin/internal/commands"
	"github.com/goliatone/go-postadmin/internal/domain"
	"github.com/goliatone/go-postadmin/internal/posts"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

const (
	bulkUpdateMessageType = "postadmin.posts.bulk_update"
	bulkStatusMessageType = "postadmin.posts.bulk_status"
	bulkDeleteMessageType = "postadmin.posts.bulk_delete"
)

// BulkUpdateCommand applies a partial mutation to every selected post.
type BulkUpdateCommand struct {
	Patch posts.Patch `json:"patch"`
}

// Type implements command.Message.
func (BulkUpdateCommand) Type() string { return bulkUpdateMessageType }

// Validate ensures the message carries a mutation before reaching handlers.
func (m BulkUpdateCommand) Validate() error {
	errs := validation.Errors{}
	if m.Patch.IsZero() {
		errs["patch"] = validation.NewError("postadmin.posts.bulk_update.patch_required", "patch must set at least one field")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkUpdateHandler fans the patch out to the selection via the bulk coordinator.
type BulkUpdateHandler struct {
	inner *commands.Handler[BulkUpdateCommand]
}

// NewBulkUpdateHandler constructs a handler wired to the provided coordinator.
func NewBulkUpdateHandler(coordinator *posts.BulkCoordinator, logger interfaces.Logger, opts ...commands.HandlerOption[BulkUpdateCommand]) *BulkUpdateHandler {
	exec := func(ctx context.Context, msg BulkUpdateCommand) error {
		_, err := coordinator.Mutate(ctx, msg.Patch)
		return err
	}

	handlerOpts := []commands.HandlerOption[BulkUpdateCommand]{
		commands.WithLogger[BulkUpdateCommand](logger),
		commands.WithOperation[BulkUpdateCommand]("posts.bulk_update"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BulkUpdateHandler{
		inner: commands.NewHandler[BulkUpdateCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BulkUpdateCommand].Execute.
func (h *BulkUpdateHandler) Execute(ctx context.Context, msg BulkUpdateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BulkStatusCommand transitions every selected post to the supplied lifecycle state.
type BulkStatusCommand struct {
	Status       string  `json:"status"`
	ScheduledFor *string `json:"scheduled_for,omitempty"`
}

// Type implements command.Message.
func (BulkStatusCommand) Type() string { return bulkStatusMessageType }

// Validate checks the target status and its schedule requirement.
func (m BulkStatusCommand) Validate() error {
	errs := validation.Errors{}
	if !domain.IsValidStatus(string(domain.NormalizeStatus(m.Status))) {
		errs["status"] = validation.NewError("postadmin.posts.bulk_status.status_invalid", "status must be draft, published, or scheduled")
	}
	if domain.NormalizeStatus(m.Status) == domain.StatusScheduled && m.ScheduledFor == nil {
		errs["scheduled_for"] = validation.NewError("postadmin.posts.bulk_status.schedule_required", "scheduled_for is required for scheduled posts")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkStatusHandler maps the status transition onto a bulk patch.
type BulkStatusHandler struct {
	inner *commands.Handler[BulkStatusCommand]
}

// NewBulkStatusHandler constructs a handler wired to the provided coordinator.
func NewBulkStatusHandler(coordinator *posts.BulkCoordinator, logger interfaces.Logger, opts ...commands.HandlerOption[BulkStatusCommand]) *BulkStatusHandler {
	exec := func(ctx context.Context, msg BulkStatusCommand) error {
		status := string(domain.NormalizeStatus(msg.Status))
		patch := posts.Patch{Status: &status}
		if msg.ScheduledFor != nil {
			ts, err := posts.ParseScheduleTimestamp(*msg.ScheduledFor)
			if err != nil {
				return err
			}
			patch.ScheduledFor = &ts
		}
		_, err := coordinator.Mutate(ctx, patch)
		return err
	}

	handlerOpts := []commands.HandlerOption[BulkStatusCommand]{
		commands.WithLogger[BulkStatusCommand](logger),
		commands.WithOperation[BulkStatusCommand]("posts.bulk_status"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BulkStatusHandler{
		inner: commands.NewHandler[BulkStatusCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BulkStatusCommand].Execute.
func (h *BulkStatusHandler) Execute(ctx context.Context, msg BulkStatusCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BulkDeleteCommand removes every selected post from the store.
type BulkDeleteCommand struct{}

// Type implements command.Message.
func (BulkDeleteCommand) Type() string { return bulkDeleteMessageType }

// Validate implements command.Message. Selection emptiness is enforced by the
// coordinator, which owns the selection set.
func (BulkDeleteCommand) Validate() error { return nil }

// BulkDeleteHandler removes the selection via the bulk coordinator.
type BulkDeleteHandler struct {
	inner *commands.Handler[BulkDeleteCommand]
}

// NewBulkDeleteHandler constructs a handler wired to the provided coordinator.
func NewBulkDeleteHandler(coordinator *posts.BulkCoordinator, logger interfaces.Logger, opts ...commands.HandlerOption[BulkDeleteCommand]) *BulkDeleteHandler {
	exec := func(ctx context.Context, _ BulkDeleteCommand) error {
		_, err := coordinator.Delete(ctx)
		return err
	}

	handlerOpts := []commands.HandlerOption[BulkDeleteCommand]{
		commands.WithLogger[BulkDeleteCommand](logger),
		commands.WithOperation[BulkDeleteCommand]("posts.bulk_delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BulkDeleteHandler{
		inner: commands.NewHandler[BulkDeleteCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BulkDeleteCommand].Execute.
func (h *BulkDeleteHandler) Execute(ctx context.Context, msg BulkDeleteCommand) error {
	return h.inner.Execute(ctx, msg)
}
