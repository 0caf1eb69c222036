package posts

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-postadmin/internal/domain"
	"github.com/goliatone/go-postadmin/internal/logging"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

// Service exposes the post management use-cases that operate on single
// records. The full record set lives in the session Collection; every
// mutation confirms against the Store before the local set is touched.
type Service interface {
	Load(ctx context.Context) ([]*Post, error)
	Collection() *Collection
	Get(id uuid.UUID) (*Post, error)
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID) (*Post, error)
	ChangeStatus(ctx context.Context, req ChangeStatusRequest) (*Post, error)
	StageDrafts(drafts []*Post) int
	StagedDrafts() []*Post
	CommitDrafts(ctx context.Context) (BulkOutcome, error)
}

// CreatePostRequest captures the information required to create a post.
// The store assigns the id on confirmation.
type CreatePostRequest struct {
	Title        string
	Slug         string
	Excerpt      string
	Category     string
	Tags         []string
	Status       string
	ScheduledFor *time.Time
	PublishedAt  string
}

// UpdatePostRequest applies a partial mutation to one post.
type UpdatePostRequest struct {
	ID    uuid.UUID
	Patch Patch
}

// ChangeStatusRequest transitions a post between lifecycle states. The
// schedule timestamp is required when entering scheduled and dropped when
// leaving it.
type ChangeStatusRequest struct {
	ID           uuid.UUID
	Status       string
	ScheduledFor *time.Time
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces identifiers for locally synthesized records.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the id source used for staged drafts.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListLimit bounds the session bulk fetch.
func WithListLimit(limit int) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}

type service struct {
	store      Store
	collection *Collection
	logger     interfaces.Logger
	now        func() time.Time
	id         IDGenerator
	listLimit  int
	staged     []uuid.UUID
}

// NewService constructs a post service bound to a store and a session
// collection.
func NewService(store Store, collection *Collection, opts ...ServiceOption) Service {
	s := &service{
		store:      store,
		collection: collection,
		logger:     logging.NoOp(),
		now:        time.Now,
		id:         uuid.New,
		listLimit:  500,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.collection == nil {
		s.collection = NewCollection()
	}
	return s
}

// Load performs the session-start bulk fetch and replaces the held set.
// Records are normalized at the boundary: unknown statuses demote to draft,
// malformed published dates are cleared, and order values are renumbered to a
// contiguous 1..N sequence.
func (s *service) Load(ctx context.Context) ([]*Post, error) {
	records, err := s.store.List(ctx, s.listLimit)
	if err != nil {
		return nil, err
	}
	normalized := make([]*Post, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		normalized = append(normalized, normalizePost(record))
	}
	renumber(normalized)
	s.collection.replace(normalized)
	s.staged = nil
	s.logger.Debug("posts.load", "count", len(normalized))
	return s.collection.Snapshot(), nil
}

// Collection returns the session state container.
func (s *service) Collection() *Collection {
	return s.collection
}

// Get returns a held record by id.
func (s *service) Get(id uuid.UUID) (*Post, error) {
	if id == uuid.Nil {
		return nil, ErrPostIDRequired
	}
	record, ok := s.collection.Get(id)
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return record, nil
}

// Create validates the draft, confirms it against the store, and merges the
// assigned record into the held set.
func (s *service) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	status := string(domain.NormalizeStatus(req.Status))
	if !domain.IsValidStatus(status) {
		return nil, ErrStatusInvalid
	}
	if err := validateSchedule(status, req.ScheduledFor); err != nil {
		return nil, err
	}
	publishedAt, err := normalizePublishedAt(req.PublishedAt)
	if err != nil {
		return nil, err
	}

	slugValue, err := resolveSlug(req.Slug, title)
	if err != nil {
		return nil, err
	}

	now := s.now()
	draft := &Post{
		Title:        title,
		Slug:         slugValue,
		Excerpt:      strings.TrimSpace(req.Excerpt),
		Category:     strings.TrimSpace(req.Category),
		Tags:         append([]string(nil), req.Tags...),
		Status:       status,
		ScheduledFor: cloneTimePtr(req.ScheduledFor),
		PublishedAt:  publishedAt,
		Order:        s.collection.MaxOrder() + 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.store.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	record := normalizePost(created)
	s.collection.upsert(record)
	s.logger.Info("posts.create", "id", record.ID.String(), "status", record.Status)
	return clonePost(record), nil
}

// Update confirms a partial mutation against the store, then applies it to
// the held record. A confirmation arriving for a record that is no longer
// held is dropped rather than resurrected.
func (s *service) Update(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	if req.ID == uuid.Nil {
		return nil, ErrPostIDRequired
	}
	if req.Patch.IsZero() {
		return nil, ErrPatchEmpty
	}
	if err := validatePatch(req.Patch); err != nil {
		return nil, err
	}
	if !s.collection.Contains(req.ID) {
		return nil, &NotFoundError{Resource: "post", Key: req.ID.String()}
	}

	updated, err := s.store.Update(ctx, req.ID, req.Patch)
	if err != nil {
		return nil, err
	}
	record := normalizePost(updated)
	if !s.collection.Contains(record.ID) {
		// Stale confirmation: the record was removed while the call was in flight.
		return clonePost(record), nil
	}
	s.collection.upsert(record)
	return clonePost(record), nil
}

// Delete confirms removal against the store before dropping the held record.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrPostIDRequired
	}
	if !s.collection.Contains(id) {
		return &NotFoundError{Resource: "post", Key: id.String()}
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.collection.remove(id)
	s.logger.Info("posts.delete", "id", id.String())
	return nil
}

// Duplicate copies a held record through the store. The copy never reuses the
// source id: the store assigns a fresh one on create.
func (s *service) Duplicate(ctx context.Context, id uuid.UUID) (*Post, error) {
	source, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	draft := clonePost(source)
	draft.ID = uuid.Nil
	draft.Title = source.Title + " (copy)"
	draft.Status = string(domain.StatusDraft)
	draft.ScheduledFor = nil
	draft.Order = s.collection.MaxOrder() + 1
	draft.CreatedAt = now
	draft.UpdatedAt = now

	slugValue, err := resolveSlug("", draft.Title)
	if err == nil && slugValue != "" {
		draft.Slug = slugValue
	}

	created, err := s.store.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	record := normalizePost(created)
	s.collection.upsert(record)
	return clonePost(record), nil
}

// ChangeStatus transitions lifecycle state, enforcing the schedule coupling:
// scheduled requires a timestamp, every other status clears it.
func (s *service) ChangeStatus(ctx context.Context, req ChangeStatusRequest) (*Post, error) {
	status := string(domain.NormalizeStatus(req.Status))
	if !domain.IsValidStatus(status) {
		return nil, ErrStatusInvalid
	}
	if err := validateSchedule(status, req.ScheduledFor); err != nil {
		return nil, err
	}
	return s.Update(ctx, UpdatePostRequest{
		ID: req.ID,
		Patch: Patch{
			Status:       &status,
			ScheduledFor: cloneTimePtr(req.ScheduledFor),
		},
	})
}

// StageDrafts appends imported drafts to the held set without touching the
// store. It returns the number of records staged.
func (s *service) StageDrafts(drafts []*Post) int {
	staged := 0
	for _, draft := range drafts {
		if draft == nil || draft.ID == uuid.Nil {
			continue
		}
		if s.collection.Contains(draft.ID) {
			continue
		}
		s.collection.upsert(draft)
		s.staged = append(s.staged, draft.ID)
		staged++
	}
	if staged > 0 {
		s.logger.Info("posts.stage", "count", staged)
	}
	return staged
}

// StagedDrafts returns the held records still awaiting persistence.
func (s *service) StagedDrafts() []*Post {
	out := make([]*Post, 0, len(s.staged))
	for _, id := range s.staged {
		if record, ok := s.collection.Get(id); ok {
			out = append(out, record)
		}
	}
	return out
}

// CommitDrafts persists staged drafts through the store's create endpoint,
// one independent request per draft. Confirmed drafts are replaced locally by
// the store-assigned records; failed drafts stay staged for retry.
func (s *service) CommitDrafts(ctx context.Context) (BulkOutcome, error) {
	drafts := s.StagedDrafts()
	if len(drafts) == 0 {
		return BulkOutcome{}, ErrNoStagedDrafts
	}

	outcome := fanOut(drafts, func(draft *Post) (uuid.UUID, error) {
		submitted := clonePost(draft)
		submitted.ID = uuid.Nil
		created, err := s.store.Create(ctx, submitted)
		if err != nil {
			return draft.ID, err
		}
		record := normalizePost(created)
		if s.collection.Contains(draft.ID) {
			s.collection.remove(draft.ID)
			s.collection.upsert(record)
		}
		return draft.ID, nil
	})

	remaining := make([]uuid.UUID, 0, len(s.staged))
	confirmed := make(map[uuid.UUID]struct{}, len(outcome.Succeeded))
	for _, id := range outcome.Succeeded {
		confirmed[id] = struct{}{}
	}
	for _, id := range s.staged {
		if _, ok := confirmed[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	s.staged = remaining
	return outcome, nil
}

func validateSchedule(status string, scheduledFor *time.Time) error {
	if domain.Status(status) == domain.StatusScheduled {
		if scheduledFor == nil || scheduledFor.IsZero() {
			return ErrScheduleRequired
		}
		return nil
	}
	if scheduledFor != nil {
		return ErrScheduleNotAllowed
	}
	return nil
}

func validatePatch(patch Patch) error {
	if patch.Status != nil {
		status := string(domain.NormalizeStatus(*patch.Status))
		if !domain.IsValidStatus(status) {
			return ErrStatusInvalid
		}
		return validateSchedule(status, patch.ScheduledFor)
	}
	if patch.ScheduledFor != nil {
		return ErrScheduleNotAllowed
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// normalizePost coerces a store payload into a record that honours the
// engine's invariants. The store may return a field subset; absent optionals
// default rather than propagate.
func normalizePost(record *Post) *Post {
	out := clonePost(record)
	if out == nil {
		return nil
	}
	out.Title = strings.TrimSpace(out.Title)
	out.Status = string(domain.NormalizeStatus(out.Status))
	if !domain.IsValidStatus(out.Status) {
		out.Status = string(domain.StatusDraft)
	}
	if domain.Status(out.Status) == domain.StatusScheduled {
		if out.ScheduledFor == nil || out.ScheduledFor.IsZero() {
			out.Status = string(domain.StatusDraft)
			out.ScheduledFor = nil
		}
	} else {
		out.ScheduledFor = nil
	}
	if normalized, err := normalizePublishedAt(out.PublishedAt); err == nil {
		out.PublishedAt = normalized
	} else {
		out.PublishedAt = ""
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

func normalizePublishedAt(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if parsed, err := time.Parse(PublishedAtLayout, trimmed); err == nil {
		return parsed.Format(PublishedAtLayout), nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed.Format(PublishedAtLayout), nil
	}
	return "", ErrPublishedAtInvalid
}

// renumber rewrites order values as the 1-based position within the supplied
// sequence, sorted by the incoming order first so existing arrangements
// survive gap compaction.
func renumber(records []*Post) {
	sortPosts(records, SortByOrder, SortAsc)
	for i, record := range records {
		record.Order = i + 1
	}
}

func resolveSlug(explicit, title string) (string, error) {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = title
	}
	return slug.Normalize(source)
}
