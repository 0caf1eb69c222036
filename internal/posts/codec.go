package posts

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-postadmin/internal/identity"
	"github.com/goliatone/go-postadmin/internal/logging"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

// ExportFormat selects the exchange serialization.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// csvHeader is the fixed projected column set of the CSV exchange format.
var csvHeader = []string{
	"id", "title", "slug", "category", "status",
	"publishedAt", "views", "comments", "featured", "trending",
}

// importSchema validates each incoming exchange element before any state is
// staged, replacing loosely typed payload handling with an explicit record
// schema at the boundary.
var importSchema = map[string]any{
	"type":     "object",
	"required": []any{"title"},
	"properties": map[string]any{
		"id":           map[string]any{"type": "string"},
		"title":        map[string]any{"type": "string", "minLength": 1},
		"slug":         map[string]any{"type": "string"},
		"excerpt":      map[string]any{"type": "string"},
		"category":     map[string]any{"type": "string"},
		"tags":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"status":       map[string]any{"type": "string", "enum": []any{"draft", "published", "scheduled"}},
		"scheduledFor": map[string]any{"type": []any{"string", "null"}},
		"order":        map[string]any{"type": "integer"},
		"publishedAt":  map[string]any{"type": "string"},
		"views":        map[string]any{"type": "integer", "minimum": 0},
		"comments":     map[string]any{"type": "integer", "minimum": 0},
		"shares":       map[string]any{"type": "integer", "minimum": 0},
		"reactions":    map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "integer"}},
		"featured":     map[string]any{"type": "boolean"},
		"trending":     map[string]any{"type": "boolean"},
	},
	"additionalProperties": true,
}

// Codec serializes the full record set to the exchange formats and parses
// exchange payloads back into staged drafts. Import never mutates the record
// store; it only produces drafts for the staging flow.
type Codec struct {
	schema *jsonschema.Schema
	id     IDGenerator
	logger interfaces.Logger
}

// CodecOption configures the codec.
type CodecOption func(*Codec)

// WithCodecIDGenerator overrides the id source used for synthesized ids.
func WithCodecIDGenerator(generator IDGenerator) CodecOption {
	return func(c *Codec) {
		if generator != nil {
			c.id = generator
		}
	}
}

// WithCodecLogger attaches a logger to the codec.
func WithCodecLogger(logger interfaces.Logger) CodecOption {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCodec compiles the import schema and returns a ready codec.
func NewCodec(opts ...CodecOption) (*Codec, error) {
	schema, err := compileImportSchema()
	if err != nil {
		return nil, err
	}
	c := &Codec{
		schema: schema,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Export serializes the records in the requested format.
func (c *Codec) Export(records []*Post, format ExportFormat) ([]byte, error) {
	switch format {
	case FormatJSON:
		return c.ExportJSON(records)
	case FormatCSV:
		return c.ExportCSV(records)
	default:
		return nil, ErrFormatUnknown
	}
}

// ExportJSON emits a full-fidelity JSON array of every record.
func (c *Codec) ExportJSON(records []*Post) ([]byte, error) {
	if records == nil {
		records = []*Post{}
	}
	return json.MarshalIndent(records, "", "  ")
}

// ExportCSV emits the fixed projected column subset with a header row.
// encoding/csv quote-escapes free-text fields containing the delimiter.
func (c *Codec) ExportCSV(records []*Post) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, record := range records {
		if record == nil {
			continue
		}
		row := []string{
			record.ID.String(),
			record.Title,
			record.Slug,
			record.Category,
			record.Status,
			record.PublishedAt,
			strconv.Itoa(record.Views),
			strconv.Itoa(record.Comments),
			strconv.FormatBool(record.Featured),
			strconv.FormatBool(record.Trending),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportBatch parses a JSON exchange payload into staged drafts. The payload
// must be an array at the top level; anything else is rejected with no
// partial effect, as is any element that fails schema validation. Missing ids
// are synthesized collision-free against the existing set, non-UUID external
// ids map deterministically, and order values continue past the current
// maximum so the contiguity invariant holds by appending.
func (c *Codec) ImportBatch(payload []byte, existing []*Post) ([]*Post, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(payload, &elements); err != nil {
		return nil, ErrImportNotArray
	}
	if elements == nil {
		// json "null" decodes without error but is not an array.
		return nil, ErrImportNotArray
	}

	taken := make(map[uuid.UUID]struct{}, len(existing))
	maxOrder := 0
	for _, record := range existing {
		if record == nil {
			continue
		}
		taken[record.ID] = struct{}{}
		if record.Order > maxOrder {
			maxOrder = record.Order
		}
	}

	drafts := make([]*Post, 0, len(elements))
	for i, element := range elements {
		var generic map[string]any
		if err := json.Unmarshal(element, &generic); err != nil {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrImportInvalid, i)
		}
		if err := c.schema.Validate(generic); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrImportInvalid, i, err)
		}

		var incoming exchangeRecord
		if err := json.Unmarshal(element, &incoming); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrImportInvalid, i, err)
		}

		draft, err := incoming.toDraft()
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrImportInvalid, i, err)
		}

		draft.ID = c.resolveID(incoming.ID, taken)
		taken[draft.ID] = struct{}{}
		maxOrder++
		draft.Order = maxOrder
		drafts = append(drafts, draft)
	}

	c.logger.Info("posts.import", "staged", len(drafts))
	return drafts, nil
}

// resolveID honours incoming UUIDs when free, maps stable non-UUID external
// ids deterministically, and falls back to fresh ids — always avoiding
// collision with the existing set.
func (c *Codec) resolveID(raw string, taken map[uuid.UUID]struct{}) uuid.UUID {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		if parsed, err := uuid.Parse(trimmed); err == nil {
			if _, exists := taken[parsed]; !exists {
				return parsed
			}
		} else if derived := identity.PostUUID(trimmed); derived != uuid.Nil {
			if _, exists := taken[derived]; !exists {
				return derived
			}
		}
	}
	for {
		id := c.id()
		if _, exists := taken[id]; !exists && id != uuid.Nil {
			return id
		}
	}
}

// exchangeRecord mirrors the JSON exchange element shape with loose id and
// timestamp handling.
type exchangeRecord struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Slug         string         `json:"slug"`
	Excerpt      string         `json:"excerpt"`
	Category     string         `json:"category"`
	Tags         []string       `json:"tags"`
	Status       string         `json:"status"`
	ScheduledFor *time.Time     `json:"scheduledFor"`
	PublishedAt  string         `json:"publishedAt"`
	Views        int            `json:"views"`
	Comments     int            `json:"comments"`
	Shares       int            `json:"shares"`
	Reactions    map[string]int `json:"reactions"`
	Featured     bool           `json:"featured"`
	Trending     bool           `json:"trending"`
}

func (r exchangeRecord) toDraft() (*Post, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	publishedAt, err := normalizePublishedAt(r.PublishedAt)
	if err != nil {
		return nil, err
	}

	draft := &Post{
		Title:        title,
		Slug:         strings.TrimSpace(r.Slug),
		Excerpt:      strings.TrimSpace(r.Excerpt),
		Category:     strings.TrimSpace(r.Category),
		Tags:         append([]string(nil), r.Tags...),
		Status:       r.Status,
		ScheduledFor: r.ScheduledFor,
		PublishedAt:  publishedAt,
		Views:        r.Views,
		Comments:     r.Comments,
		Shares:       r.Shares,
		Reactions:    r.Reactions,
		Featured:     r.Featured,
		Trending:     r.Trending,
	}
	if draft.Slug == "" {
		if normalized, err := resolveSlug("", title); err == nil {
			draft.Slug = normalized
		}
	}
	return normalizePost(draft), nil
}

func compileImportSchema() (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(importSchema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("post.schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("post.schema.json")
}
