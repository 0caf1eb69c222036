package postadmin

import "github.com/goliatone/go-postadmin/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown            = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired                = runtimeconfig.ErrStorageDSNRequired
	ErrStoreBaseURLRequired              = runtimeconfig.ErrStoreBaseURLRequired
	ErrListLimitInvalid                  = runtimeconfig.ErrListLimitInvalid
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrMarkdownFeatureRequired           = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired        = runtimeconfig.ErrMarkdownContentDirRequired
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
	ErrQueryPerPageInvalid               = runtimeconfig.ErrQueryPerPageInvalid
)

type (
	Config               = runtimeconfig.Config
	QueryConfig          = runtimeconfig.QueryConfig
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	CommandsConfig       = runtimeconfig.CommandsConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	Features             = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
