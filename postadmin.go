package postadmin

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-postadmin/internal/di"
	"github.com/goliatone/go-postadmin/internal/markdown"
	"github.com/goliatone/go-postadmin/internal/posts"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

// PostService exports the collection service contract for consumers of the package.
type PostService = posts.Service

// Post exports the canonical record type.
type Post = posts.Post

// Patch exports the partial-mutation type used by updates and bulk operations.
type Patch = posts.Patch

// Query exports the filter/sort/pagination state consumed by projections.
type Query = posts.Query

// Projection exports the derived page view.
type Projection = posts.Projection

// Selection exports the bulk-action selection set.
type Selection = posts.Selection

// BulkOutcome exports the partitioned result of a bulk mutation.
type BulkOutcome = posts.BulkOutcome

// BulkCoordinator exports the bulk mutation coordinator.
type BulkCoordinator = posts.BulkCoordinator

// ReorderCoordinator exports the drag-and-drop reorder coordinator.
type ReorderCoordinator = posts.ReorderCoordinator

// Codec exports the import/export codec.
type Codec = posts.Codec

// ExportFormat selects the serialization target for exports.
type ExportFormat = posts.ExportFormat

// MarkdownService exports markdown ingestion when the feature is enabled.
type MarkdownService = markdown.Service

const (
	FormatJSON = posts.FormatJSON
	FormatCSV  = posts.FormatCSV
)

// DefaultQuery returns the neutral session-start query state.
func DefaultQuery() Query {
	return posts.DefaultQuery()
}

// Module represents the top level admin runtime façade.
type Module struct {
	container *di.Container
}

// New constructs an admin module using the provided configuration and optional
// dependency overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying dependency container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Posts returns the configured collection service.
func (m *Module) Posts() PostService {
	return m.container.PostService()
}

// Selection returns the shared bulk-action selection set.
func (m *Module) Selection() *Selection {
	return m.container.Selection()
}

// Bulk returns the bulk mutation coordinator.
func (m *Module) Bulk() *BulkCoordinator {
	return m.container.BulkCoordinator()
}

// Reorder returns the drag-and-drop reorder coordinator.
func (m *Module) Reorder() *ReorderCoordinator {
	return m.container.ReorderCoordinator()
}

// Codec returns the import/export codec.
func (m *Module) Codec() *Codec {
	return m.container.Codec()
}

// Markdown returns the markdown ingestion service when configured, nil otherwise.
func (m *Module) Markdown() *MarkdownService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownService()
}

// Logger returns the configured logging provider, which may be nil when the
// logger feature is disabled.
func (m *Module) Logger() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// DB exposes the bun handle when the bun storage provider is active.
func (m *Module) DB() *bun.DB {
	return m.container.DB()
}

// Project derives the visible page from the current record set and the
// supplied query state. The query stays caller-owned: apply your own page
// reset when a filter field changes.
func (m *Module) Project(q Query) Projection {
	return posts.Project(m.container.Collection().Snapshot(), q)
}

// ToggleSelectAllVisible applies page-scoped select-all against the ids
// visible under the supplied query state.
func (m *Module) ToggleSelectAllVisible(q Query) {
	projection := m.Project(q)
	ids := make([]uuid.UUID, 0, len(projection.Page))
	for _, record := range projection.Page {
		ids = append(ids, record.ID)
	}
	m.container.Selection().ToggleAllVisible(ids)
}
