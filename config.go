package folio

import "github.com/folio-press/folio/internal/runtimeconfig"

var (
	ErrDefaultLanguageUnsupported = runtimeconfig.ErrDefaultLanguageUnsupported
	ErrContentDirRequired         = runtimeconfig.ErrContentDirRequired
	ErrMaxDepthInvalid            = runtimeconfig.ErrMaxDepthInvalid
	ErrWorkersInvalid             = runtimeconfig.ErrWorkersInvalid
	ErrFeaturedLimitInvalid       = runtimeconfig.ErrFeaturedLimitInvalid
	ErrDictionaryPathRequired     = runtimeconfig.ErrDictionaryPathRequired
	ErrCacheTTLInvalid            = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	I18NConfig     = runtimeconfig.I18NConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads defaults, an optional config file and FOLIO_* overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
