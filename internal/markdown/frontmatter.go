package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is left empty so callers can
// render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title    string         `yaml:"title"`
	Slug     string         `yaml:"slug"`
	Excerpt  string         `yaml:"excerpt"`
	Summary  string         `yaml:"summary"`
	Category string         `yaml:"category"`
	Status   string         `yaml:"status"`
	Tags     []string       `yaml:"tags"`
	Date     time.Time      `yaml:"date"`
	Draft    bool           `yaml:"draft"`
	Featured bool           `yaml:"featured"`
	Trending bool           `yaml:"trending"`
	Custom   map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	excerpt := env.Excerpt
	if excerpt == "" {
		// Some authoring tools write "summary" instead of "excerpt".
		excerpt = env.Summary
	}

	return interfaces.FrontMatter{
		Title:    env.Title,
		Slug:     env.Slug,
		Excerpt:  excerpt,
		Category: env.Category,
		Status:   env.Status,
		Tags:     append([]string(nil), env.Tags...),
		Date:     env.Date,
		Draft:    env.Draft,
		Featured: env.Featured,
		Trending: env.Trending,
		Custom:   cloneMap(env.Custom),
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
