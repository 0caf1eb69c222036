package interfaces

import (
	"time"

	"github.com/google/uuid"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across invocations without locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// Document represents a Markdown file with parsed metadata and content. The
// struct is shared between the interfaces package and internal implementations
// so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so repeat
	// imports can detect changes without re-reading unchanged files.
	Checksum []byte
}

// FrontMatter models metadata extracted from Markdown files. The Custom map
// keeps domain-specific values that have no dedicated field.
type FrontMatter struct {
	Title    string         `yaml:"title" json:"title"`
	Slug     string         `yaml:"slug" json:"slug"`
	Excerpt  string         `yaml:"excerpt" json:"excerpt"`
	Category string         `yaml:"category" json:"category"`
	Status   string         `yaml:"status" json:"status"`
	Tags     []string       `yaml:"tags" json:"tags"`
	Date     time.Time      `yaml:"date" json:"date"`
	Draft    bool           `yaml:"draft" json:"draft"`
	Featured bool           `yaml:"featured" json:"featured"`
	Trending bool           `yaml:"trending" json:"trending"`
	Custom   map[string]any `yaml:",inline" json:"custom"`
}

// MarkdownImportResult reports the outcome of a markdown import run, exposing
// ids so callers can audit behaviour or trigger follow-up actions.
type MarkdownImportResult struct {
	CreatedIDs []uuid.UUID
	SkippedIDs []uuid.UUID
	Errors     []error
}
