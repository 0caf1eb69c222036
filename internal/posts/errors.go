package posts

import (
	"errors"
	"fmt"
)

var (
	ErrPostIDRequired     = errors.New("posts: post id required")
	ErrTitleRequired      = errors.New("posts: title is required")
	ErrStatusInvalid      = errors.New("posts: status must be draft, published, or scheduled")
	ErrScheduleRequired   = errors.New("posts: scheduled posts require a schedule timestamp")
	ErrScheduleNotAllowed = errors.New("posts: schedule timestamp only valid for scheduled posts")
	ErrScheduleInvalid    = errors.New("posts: schedule timestamp must use RFC 3339")
	ErrPublishedAtInvalid = errors.New("posts: published date must use YYYY-MM-DD")
	ErrSelectionEmpty     = errors.New("posts: selection is empty")
	ErrPatchEmpty         = errors.New("posts: bulk patch carries no mutation")
	ErrReorderUnknownPost = errors.New("posts: reorder references an unknown post")
	ErrNoPendingOrder     = errors.New("posts: no pending order changes to commit")
	ErrNoStagedDrafts     = errors.New("posts: no staged drafts to persist")
	ErrImportNotArray     = errors.New("posts: import payload must be a JSON array")
	ErrImportInvalid      = errors.New("posts: import payload failed validation")
	ErrFormatUnknown      = errors.New("posts: unknown export format")
)

// NotFoundError represents missing records from store lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
