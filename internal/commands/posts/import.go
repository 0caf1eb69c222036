package postscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-postadmin/internal/commands"
	"github.com/goliatone/go-postadmin/internal/posts"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

const importPostsMessageType = "postadmin.posts.import"

// ImportPostsCommand stages a JSON batch of posts, optionally persisting the
// resulting drafts in the same execution.
type ImportPostsCommand struct {
	Payload []byte `json:"payload"`
	Commit  bool   `json:"commit"`
}

// Type implements command.Message.
func (ImportPostsCommand) Type() string { return importPostsMessageType }

// Validate ensures a payload is present; structural validation happens in the codec.
func (m ImportPostsCommand) Validate() error {
	errs := validation.Errors{}
	if len(m.Payload) == 0 {
		errs["payload"] = validation.NewError("postadmin.posts.import.payload_required", "payload is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportPostsHandler decodes the payload and stages the drafts on the service.
type ImportPostsHandler struct {
	inner *commands.Handler[ImportPostsCommand]
}

// NewImportPostsHandler constructs a handler wired to the codec and post service.
func NewImportPostsHandler(codec *posts.Codec, service posts.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportPostsCommand]) *ImportPostsHandler {
	exec := func(ctx context.Context, msg ImportPostsCommand) error {
		drafts, err := codec.ImportBatch(msg.Payload, service.Collection().Snapshot())
		if err != nil {
			return err
		}
		service.StageDrafts(drafts)
		if msg.Commit {
			if _, err := service.CommitDrafts(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportPostsCommand]{
		commands.WithLogger[ImportPostsCommand](logger),
		commands.WithOperation[ImportPostsCommand]("posts.import"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportPostsHandler{
		inner: commands.NewHandler[ImportPostsCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportPostsCommand].Execute.
func (h *ImportPostsHandler) Execute(ctx context.Context, msg ImportPostsCommand) error {
	return h.inner.Execute(ctx, msg)
}
