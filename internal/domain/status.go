package domain

import "strings"

// Status represents lifecycle states for managed posts
type Status string

const (
	// StatusDraft indicates a post still under preparation
	StatusDraft Status = "draft"
	// StatusPublished identifies a post visible to readers
	StatusPublished Status = "published"
	// StatusScheduled marks a post with a future publish time configured
	StatusScheduled Status = "scheduled"
)

// NormalizeStatus coerces arbitrary status strings into a known value,
// defaulting to draft for blank input.
func NormalizeStatus(input string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(input)))
	switch status {
	case StatusDraft, StatusPublished, StatusScheduled:
		return status
	case "":
		return StatusDraft
	default:
		return status
	}
}

// IsValidStatus reports whether the value is one of the known lifecycle states.
func IsValidStatus(input string) bool {
	switch Status(strings.ToLower(strings.TrimSpace(input))) {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	default:
		return false
	}
}
