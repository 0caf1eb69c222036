package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	postadmin "github.com/goliatone/go-postadmin"
	"github.com/goliatone/go-postadmin/internal/markdown"
)

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("markdown import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("markdown-import", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	recursive := fs.Bool("recursive", true, "Traverse sub-directories when discovering files")
	commit := fs.Bool("commit", false, "Persist staged drafts to the record store after staging")
	defaultStatus := fs.String("default-status", "draft", "Status applied when frontmatter carries none")
	provider := fs.String("storage", "memory", "Record store backend: memory, bun, or http")
	dsn := fs.String("dsn", "", "Database DSN for the bun backend")
	baseURL := fs.String("base-url", "", "Remote endpoint for the http backend")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := postadmin.DefaultConfig()
	cfg.Storage.Provider = *provider
	cfg.Storage.DSN = *dsn
	cfg.Storage.BaseURL = *baseURL
	cfg.Features.Markdown = true
	cfg.Features.Logger = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = *contentDir
	cfg.Markdown.Pattern = *pattern
	cfg.Markdown.Recursive = *recursive

	module, err := postadmin.New(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	service := module.Markdown()
	if service == nil {
		return fmt.Errorf("markdown service not configured; ensure Features.Markdown is enabled")
	}

	ctx := context.Background()
	if _, err := module.Posts().Load(ctx); err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	result, err := service.ImportDirectory(ctx, *directory, markdown.ImportOptions{
		Commit:        *commit,
		DefaultStatus: *defaultStatus,
	})
	if err != nil {
		return fmt.Errorf("import directory: %w", err)
	}

	fmt.Printf("staged %d documents, skipped %d\n", len(result.CreatedIDs), len(result.SkippedIDs))
	for _, importErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", importErr)
	}
	return nil
}
