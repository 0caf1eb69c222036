package di

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-postadmin/internal/logging"
	"github.com/goliatone/go-postadmin/internal/logging/console"
	"github.com/goliatone/go-postadmin/internal/logging/gologger"
	"github.com/goliatone/go-postadmin/internal/markdown"
	"github.com/goliatone/go-postadmin/internal/posts"
	"github.com/goliatone/go-postadmin/internal/runtimeconfig"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

// Option overrides container wiring before services are constructed.
type Option func(*Container)

// WithStore replaces the store selected by the storage configuration.
func WithStore(store posts.Store) Option {
	return func(c *Container) {
		if store != nil {
			c.store = store
		}
	}
}

// WithDB injects a pre-built bun handle for the bun storage provider.
func WithDB(db *bun.DB) Option {
	return func(c *Container) {
		if db != nil {
			c.db = db
		}
	}
}

// WithLoggerProvider replaces the provider derived from the logging configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.provider = provider
		}
	}
}

// WithCache injects the cache service and key serializer used to wrap the bun
// repository. Both must be non-nil for caching to activate.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// Container wires configuration into the collection services.
type Container struct {
	Config runtimeconfig.Config

	provider      interfaces.LoggerProvider
	db            *bun.DB
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer

	store      posts.Store
	collection *posts.Collection
	selection  *posts.Selection

	service posts.Service
	bulk    *posts.BulkCoordinator
	reorder *posts.ReorderCoordinator
	codec   *posts.Codec
	md      *markdown.Service
}

// NewContainer validates the configuration and builds the service graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:     cfg,
		collection: posts.NewCollection(),
		selection:  posts.NewSelection(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.provider == nil && cfg.Features.Logger {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.provider = provider
	}

	if c.store == nil {
		store, err := c.buildStore()
		if err != nil {
			return nil, err
		}
		c.store = store
	}

	serviceOpts := []posts.ServiceOption{
		posts.WithLogger(logging.PostsLogger(c.provider)),
	}
	if cfg.Storage.ListLimit > 0 {
		serviceOpts = append(serviceOpts, posts.WithListLimit(cfg.Storage.ListLimit))
	}
	c.service = posts.NewService(c.store, c.collection, serviceOpts...)

	c.bulk = posts.NewBulkCoordinator(c.store, c.collection, c.selection,
		posts.WithBulkLogger(logging.BulkLogger(c.provider)))
	c.reorder = posts.NewReorderCoordinator(c.store, c.collection,
		posts.WithReorderLogger(logging.BulkLogger(c.provider)))

	codec, err := posts.NewCodec(posts.WithCodecLogger(logging.CodecLogger(c.provider)))
	if err != nil {
		return nil, err
	}
	c.codec = codec

	if cfg.Markdown.Enabled {
		md, err := markdown.NewService(markdown.Config{
			BasePath:  cfg.Markdown.ContentDir,
			Pattern:   cfg.Markdown.Pattern,
			Recursive: cfg.Markdown.Recursive,
			Parser: interfaces.ParseOptions{
				Extensions: cfg.Markdown.Parser.Extensions,
				Sanitize:   cfg.Markdown.Parser.Sanitize,
				HardWraps:  cfg.Markdown.Parser.HardWraps,
				SafeMode:   cfg.Markdown.Parser.SafeMode,
			},
		}, c.service, nil, logging.MarkdownLogger(c.provider))
		if err != nil {
			return nil, err
		}
		c.md = md
	}

	return c, nil
}

// LoggerProvider exposes the configured logging provider, which may be nil
// when the logger feature is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.provider
}

// DB exposes the bun handle when the bun storage provider is active.
func (c *Container) DB() *bun.DB {
	return c.db
}

// Store exposes the configured record store.
func (c *Container) Store() posts.Store {
	return c.store
}

// Collection exposes the shared working set.
func (c *Container) Collection() *posts.Collection {
	return c.collection
}

// Selection exposes the shared selection set.
func (c *Container) Selection() *posts.Selection {
	return c.selection
}

// PostService exposes the collection service.
func (c *Container) PostService() posts.Service {
	return c.service
}

// BulkCoordinator exposes the bulk mutation coordinator.
func (c *Container) BulkCoordinator() *posts.BulkCoordinator {
	return c.bulk
}

// ReorderCoordinator exposes the drag-and-drop reorder coordinator.
func (c *Container) ReorderCoordinator() *posts.ReorderCoordinator {
	return c.reorder
}

// Codec exposes the import/export codec.
func (c *Container) Codec() *posts.Codec {
	return c.codec
}

// MarkdownService exposes markdown ingestion when configured, nil otherwise.
func (c *Container) MarkdownService() *markdown.Service {
	return c.md
}

func (c *Container) buildStore() (posts.Store, error) {
	switch strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider)) {
	case "", "memory":
		return posts.NewMemoryStore(), nil
	case "http":
		return posts.NewHTTPStore(c.Config.Storage.BaseURL,
			posts.WithHTTPStoreLogger(logging.StoreLogger(c.provider))), nil
	case "bun":
		if c.db == nil {
			sqldb, err := sql.Open("sqlite3", c.Config.Storage.DSN)
			if err != nil {
				return nil, fmt.Errorf("di: open database: %w", err)
			}
			c.db = bun.NewDB(sqldb, sqlitedialect.New())
		}
		if c.Config.Features.AdvancedCache && c.cacheService != nil && c.keySerializer != nil {
			return posts.NewBunStoreWithCache(c.db, c.cacheService, c.keySerializer), nil
		}
		return posts.NewBunStore(c.db), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageProviderUnknown, c.Config.Storage.Provider)
	}
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	case "", "console":
		level := console.ParseLevel(cfg.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}
