package posts

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PublishedAtLayout is the fixed-width date format enforced at ingestion so
// published dates stay lexicographically sortable.
const PublishedAtLayout = "2006-01-02"

// ParseScheduleTimestamp parses an RFC 3339 schedule timestamp such as
// "2026-04-01T09:00:00Z".
func ParseScheduleTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrScheduleInvalid
	}
	return ts, nil
}

// Post is the canonical record for managed content items.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID           uuid.UUID      `bun:",pk,type:uuid"                  json:"id"`
	Title        string         `bun:"title,notnull"                  json:"title"`
	Slug         string         `bun:"slug,notnull"                   json:"slug"`
	Excerpt      string         `bun:"excerpt"                        json:"excerpt"`
	Category     string         `bun:"category"                       json:"category"`
	Tags         []string       `bun:"tags,type:jsonb"                json:"tags"`
	Status       string         `bun:"status,notnull,default:'draft'" json:"status"`
	ScheduledFor *time.Time     `bun:"scheduled_for,nullzero"         json:"scheduledFor,omitempty"`
	Order        int            `bun:"display_order,notnull"          json:"order"`
	PublishedAt  string         `bun:"published_at"                   json:"publishedAt"`
	Views        int            `bun:"views,notnull,default:0"        json:"views"`
	Comments     int            `bun:"comments,notnull,default:0"     json:"comments"`
	Shares       int            `bun:"shares,notnull,default:0"       json:"shares"`
	Reactions    map[string]int `bun:"reactions,type:jsonb"           json:"reactions,omitempty"`
	Featured     bool           `bun:"featured,notnull,default:false" json:"featured"`
	Trending     bool           `bun:"trending,notnull,default:false" json:"trending"`
	CreatedAt    time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`
}

// Patch describes a partial mutation applied to a post. Nil fields are left
// untouched by the store.
type Patch struct {
	Title        *string    `json:"title,omitempty"`
	Excerpt      *string    `json:"excerpt,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Status       *string    `json:"status,omitempty"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	Order        *int       `json:"order,omitempty"`
	Featured     *bool      `json:"featured,omitempty"`
	Trending     *bool      `json:"trending,omitempty"`
}

// IsZero reports whether the patch carries no mutation at all.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Excerpt == nil && p.Category == nil &&
		p.Tags == nil && p.Status == nil && p.ScheduledFor == nil &&
		p.Order == nil && p.Featured == nil && p.Trending == nil
}

func clonePost(src *Post) *Post {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Tags != nil {
		copied.Tags = make([]string, len(src.Tags))
		copy(copied.Tags, src.Tags)
	}
	if src.Reactions != nil {
		copied.Reactions = make(map[string]int, len(src.Reactions))
		for k, v := range src.Reactions {
			copied.Reactions[k] = v
		}
	}
	if src.ScheduledFor != nil {
		copied.ScheduledFor = cloneTimePtr(src.ScheduledFor)
	}
	return &copied
}

func clonePosts(records []*Post) []*Post {
	if records == nil {
		return nil
	}
	out := make([]*Post, len(records))
	for i, record := range records {
		out[i] = clonePost(record)
	}
	return out
}

func cloneTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func applyPatch(record *Post, patch Patch, now time.Time) {
	if record == nil {
		return
	}
	if patch.Title != nil {
		record.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		record.Excerpt = *patch.Excerpt
	}
	if patch.Category != nil {
		record.Category = *patch.Category
	}
	if patch.Tags != nil {
		record.Tags = append([]string(nil), patch.Tags...)
	}
	if patch.Status != nil {
		record.Status = *patch.Status
		record.ScheduledFor = cloneTimePtr(patch.ScheduledFor)
	} else if patch.ScheduledFor != nil {
		record.ScheduledFor = cloneTimePtr(patch.ScheduledFor)
	}
	if patch.Order != nil {
		record.Order = *patch.Order
	}
	if patch.Featured != nil {
		record.Featured = *patch.Featured
	}
	if patch.Trending != nil {
		record.Trending = *patch.Trending
	}
	record.UpdatedAt = now
}
