// Package markdown loads Markdown files with YAML frontmatter and turns them
// into post drafts for the admin collection.
package markdown
