package markdown

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-postadmin/internal/domain"
	"github.com/goliatone/go-postadmin/internal/identity"
	"github.com/goliatone/go-postadmin/internal/logging"
	"github.com/goliatone/go-postadmin/internal/posts"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

var (
	ErrPostServiceRequired = errors.New("markdown importer: post service is required")
	ErrDocumentMissing     = errors.New("markdown importer: document is required")
)

const excerptLimit = 180

// ImporterConfig encapsulates dependencies required to stage markdown documents.
type ImporterConfig struct {
	Posts  posts.Service
	Parser interfaces.MarkdownParser
	Logger interfaces.Logger
}

// ImportOptions controls how Markdown documents enter the collection.
type ImportOptions struct {
	// Commit persists staged drafts through the record store after staging.
	Commit bool
	// DefaultStatus is used when the frontmatter carries no status. Empty
	// falls back to draft.
	DefaultStatus string
}

// Importer converts markdown documents into post drafts.
type Importer struct {
	posts  posts.Service
	parser interfaces.MarkdownParser
	logger interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	parser := cfg.Parser
	if parser == nil {
		parser = NewGoldmarkParser(interfaces.ParseOptions{})
	}
	return &Importer{
		posts:  cfg.Posts,
		parser: parser,
		logger: logger,
	}
}

// ImportDocument stages a single markdown document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts ImportOptions) (*interfaces.MarkdownImportResult, error) {
	if doc == nil {
		return nil, ErrDocumentMissing
	}
	return i.ImportDocuments(ctx, []*interfaces.Document{doc}, opts)
}

// ImportDocuments converts documents into drafts, stages them on the
// collection, and optionally commits them to the record store. Documents whose
// deterministic id already exists in the collection are skipped.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts ImportOptions) (*interfaces.MarkdownImportResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}

	result := &interfaces.MarkdownImportResult{}
	collection := i.posts.Collection()
	order := collection.MaxOrder()

	drafts := make([]*posts.Post, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}

		draft, err := i.toDraft(doc, opts)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		if collection.Contains(draft.ID) {
			i.logger.Debug("markdown.import skip", "path", doc.FilePath, "id", draft.ID)
			result.SkippedIDs = append(result.SkippedIDs, draft.ID)
			continue
		}

		order++
		draft.Order = order
		drafts = append(drafts, draft)
	}

	staged := i.posts.StageDrafts(drafts)
	for _, draft := range drafts {
		result.CreatedIDs = append(result.CreatedIDs, draft.ID)
	}
	i.logger.Info("markdown.import", "documents", len(docs), "staged", staged, "skipped", len(result.SkippedIDs))

	if opts.Commit && staged > 0 {
		outcome, err := i.posts.CommitDrafts(ctx)
		if err != nil {
			return result, err
		}
		for _, failure := range outcome.Failed {
			result.Errors = append(result.Errors, errors.New("markdown importer: commit "+failure.ID.String()+": "+failure.Reason))
		}
	}

	return result, nil
}

func (i *Importer) toDraft(doc *interfaces.Document, opts ImportOptions) (*posts.Post, error) {
	meta := doc.FrontMatter

	postSlug := strings.TrimSpace(meta.Slug)
	if postSlug == "" {
		stem := fileStem(doc.FilePath)
		normalized, err := slug.Normalize(stem)
		if err != nil || normalized == "" {
			normalized = strings.ToLower(stem)
		}
		postSlug = normalized
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = fallbackTitle(postSlug)
	}

	status := resolveStatus(meta, opts)

	excerpt := strings.TrimSpace(meta.Excerpt)
	if excerpt == "" {
		rendered, err := i.parser.Parse(doc.Body)
		if err != nil {
			return nil, err
		}
		excerpt = excerptFromHTML(rendered)
	}

	publishedAt := ""
	if !meta.Date.IsZero() {
		publishedAt = meta.Date.Format(posts.PublishedAtLayout)
	}

	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}

	return &posts.Post{
		ID:          identity.DocumentUUID(postSlug),
		Title:       title,
		Slug:        postSlug,
		Excerpt:     excerpt,
		Category:    strings.TrimSpace(meta.Category),
		Tags:        tags,
		Status:      status,
		PublishedAt: publishedAt,
		Featured:    meta.Featured,
		Trending:    meta.Trending,
		CreatedAt:   doc.LastModified,
		UpdatedAt:   doc.LastModified,
	}, nil
}

func resolveStatus(meta interfaces.FrontMatter, opts ImportOptions) string {
	if meta.Draft {
		return string(domain.StatusDraft)
	}
	candidate := meta.Status
	if candidate == "" {
		candidate = opts.DefaultStatus
	}
	normalized := string(domain.NormalizeStatus(candidate))
	if !domain.IsValidStatus(normalized) {
		return string(domain.StatusDraft)
	}
	// Scheduled posts need an explicit timestamp which markdown frontmatter
	// does not carry, so they enter the collection as drafts.
	if normalized == string(domain.StatusScheduled) {
		return string(domain.StatusDraft)
	}
	return normalized
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fallbackTitle(slugValue string) string {
	words := strings.FieldsFunc(slugValue, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for idx, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[idx] = string(runes)
	}
	return strings.Join(words, " ")
}

// excerptFromHTML reduces rendered HTML to a short plain-text preview.
func excerptFromHTML(rendered []byte) string {
	var b strings.Builder
	inTag := false
	for _, r := range string(rendered) {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}

	text := strings.Join(strings.Fields(b.String()), " ")
	if len(text) <= excerptLimit {
		return text
	}
	cut := strings.LastIndex(text[:excerptLimit], " ")
	if cut <= 0 {
		cut = excerptLimit
	}
	return text[:cut] + "…"
}
