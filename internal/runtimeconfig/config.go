package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrStorageProviderUnknown indicates the storage provider is not supported.
var ErrStorageProviderUnknown = errors.New("postadmin config: storage provider is invalid")

// ErrStorageDSNRequired ensures the bun provider receives a database DSN.
var ErrStorageDSNRequired = errors.New("postadmin config: storage dsn is required for the bun provider")

// ErrStoreBaseURLRequired ensures the http provider receives an endpoint.
var ErrStoreBaseURLRequired = errors.New("postadmin config: store base url is required for the http provider")

// ErrListLimitInvalid rejects negative list limits.
var ErrListLimitInvalid = errors.New("postadmin config: storage list limit must be zero or positive")

// ErrAdvancedCacheRequiresEnabledCache ensures the cached repository only builds when cache is enabled.
var ErrAdvancedCacheRequiresEnabledCache = errors.New("postadmin config: advanced cache feature requires cache to be enabled")

var ErrMarkdownFeatureRequired = errors.New("postadmin config: markdown feature must be enabled to configure markdown")
var ErrMarkdownContentDirRequired = errors.New("postadmin config: markdown content directory is required when markdown is enabled")
var ErrLoggingProviderRequired = errors.New("postadmin config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("postadmin config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("postadmin config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("postadmin config: logging format is invalid")
var ErrQueryPerPageInvalid = errors.New("postadmin config: query per-page must be zero or positive")

// Config aggregates feature flags and adapter bindings for the admin module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Query    QueryConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Markdown MarkdownConfig
	Commands CommandsConfig
	Logging  LoggingConfig
	Features Features
}

// QueryConfig seeds default projection behaviour.
type QueryConfig struct {
	PerPage int
}

// StorageConfig selects and parameterises the record store backend.
type StorageConfig struct {
	// Provider is one of "memory", "bun", or "http".
	Provider string
	// DSN is the database connection string for the bun provider.
	DSN string
	// BaseURL is the remote endpoint for the http provider.
	BaseURL string
	// ListLimit caps how many records the initial load fetches. Zero keeps
	// the service default.
	ListLimit int
}

// CacheConfig captures cache behaviour toggles for the bun provider.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// MarkdownConfig captures filesystem and parser behaviour for Markdown ingestion.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
	Parser     MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Markdown      bool
	Logger        bool
	AdvancedCache bool
}

// DefaultConfig returns opinionated defaults for an embedded admin module.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Query: QueryConfig{
			PerPage: 10,
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Features: Features{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	provider := normalizeProvider(cfg.Storage.Provider)
	switch provider {
	case "memory":
	case "bun":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	case "http":
		if strings.TrimSpace(cfg.Storage.BaseURL) == "" {
			return ErrStoreBaseURLRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Storage.ListLimit < 0 {
		return ErrListLimitInvalid
	}
	if cfg.Query.PerPage < 0 {
		return ErrQueryPerPageInvalid
	}
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.Features.Logger {
		logProvider := normalizeProvider(cfg.Logging.Provider)
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLogProvider(logProvider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if logProvider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedLogProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
