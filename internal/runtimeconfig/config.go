package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrDefaultLanguageUnsupported = errors.New("folio config: default language is not supported")
	ErrContentDirRequired         = errors.New("folio config: content directory is required")
	ErrMaxDepthInvalid            = errors.New("folio config: content max depth must be zero or positive")
	ErrWorkersInvalid             = errors.New("folio config: content workers must be zero or positive")
	ErrFeaturedLimitInvalid       = errors.New("folio config: featured limit must be zero or positive")
	ErrDictionaryPathRequired     = errors.New("folio config: i18n dictionary path is required when i18n is enabled")
	ErrCacheTTLInvalid            = errors.New("folio config: i18n cache ttl must be zero or positive")
	ErrLoggingProviderRequired    = errors.New("folio config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown     = errors.New("folio config: logging provider is invalid")
	ErrLoggingLevelInvalid        = errors.New("folio config: logging level is invalid")
	ErrLoggingFormatInvalid       = errors.New("folio config: logging format is invalid")
)

// Config aggregates every knob of the content pipeline.
type Config struct {
	DefaultLanguage string         `mapstructure:"default_language"`
	Content         ContentConfig  `mapstructure:"content"`
	Markdown        MarkdownConfig `mapstructure:"markdown"`
	I18N            I18NConfig     `mapstructure:"i18n"`
	Logging         LoggingConfig  `mapstructure:"logging"`
	Features        Features       `mapstructure:"features"`
}

// ContentConfig controls discovery.
type ContentConfig struct {
	Dir              string `mapstructure:"dir"`
	PublicDir        string `mapstructure:"public_dir"`
	MaxDepth         int    `mapstructure:"max_depth"`
	Recursive        bool   `mapstructure:"recursive"`
	IncludeHidden    bool   `mapstructure:"include_hidden"`
	AllowRawMarkup   bool   `mapstructure:"allow_raw_markup"`
	VerifyHeroImages bool   `mapstructure:"verify_hero_images"`
	Workers          int    `mapstructure:"workers"`
	FeaturedLimit    int    `mapstructure:"featured_limit"`
}

// MarkdownConfig controls the goldmark engine.
type MarkdownConfig struct {
	HighlightStyle string `mapstructure:"highlight_style"`
	Typographer    bool   `mapstructure:"typographer"`
	Linkify        bool   `mapstructure:"linkify"`
	HardWraps      bool   `mapstructure:"hard_wraps"`
}

// I18NConfig controls dictionary loading and lookup defaults.
type I18NConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	DictionaryPath string        `mapstructure:"dictionary_path"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	FallbackToKey  bool          `mapstructure:"fallback_to_key"`
	WarnOnMissing  bool          `mapstructure:"warn_on_missing"`
	StrictMode     bool          `mapstructure:"strict_mode"`
	RequiredKeys   []string      `mapstructure:"required_keys"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// Features toggles optional behaviour.
type Features struct {
	Logger bool `mapstructure:"logger"`
}

// DefaultConfig returns the site defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLanguage: "en",
		Content: ContentConfig{
			Dir:              "content/projects",
			PublicDir:        "public",
			MaxDepth:         10,
			Recursive:        true,
			VerifyHeroImages: true,
			FeaturedLimit:    6,
		},
		Markdown: MarkdownConfig{
			HighlightStyle: "github",
			Typographer:    true,
			Linkify:        true,
		},
		I18N: I18NConfig{
			Enabled:        true,
			DictionaryPath: "i18n/translations.json",
			CacheTTL:       5 * time.Minute,
			FallbackToKey:  true,
			WarnOnMissing:  true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

var (
	supportedLanguages = []any{"en", "es"}
	supportedProviders = []any{"gologger"}
	supportedLevels    = []any{"trace", "debug", "info", "warn", "warning", "error", "fatal"}
	supportedFormats   = []any{"json", "console", "pretty"}
)

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if lang := strings.ToLower(strings.TrimSpace(cfg.DefaultLanguage)); lang != "" {
		if err := validation.Validate(lang, validation.In(supportedLanguages...)); err != nil {
			return fmt.Errorf("%w: %s", ErrDefaultLanguageUnsupported, cfg.DefaultLanguage)
		}
	}
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Content.MaxDepth < 0 {
		return ErrMaxDepthInvalid
	}
	if cfg.Content.Workers < 0 {
		return ErrWorkersInvalid
	}
	if cfg.Content.FeaturedLimit < 0 {
		return ErrFeaturedLimitInvalid
	}
	if cfg.I18N.Enabled && strings.TrimSpace(cfg.I18N.DictionaryPath) == "" {
		return ErrDictionaryPathRequired
	}
	if cfg.I18N.CacheTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if err := validation.Validate(provider, validation.In(supportedProviders...)); err != nil {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := normalize(cfg.Logging.Level); level != "" {
			if err := validation.Validate(level, validation.In(supportedLevels...)); err != nil {
				return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
			}
		}
		if format := normalize(cfg.Logging.Format); format != "" {
			if err := validation.Validate(format, validation.In(supportedFormats...)); err != nil {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
