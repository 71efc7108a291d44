package runtimeconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FOLIO_CONTENT_DIR.
const EnvPrefix = "FOLIO"

// Load builds a Config from defaults, an optional config file (YAML, JSON or
// TOML by extension) and FOLIO_* environment variables, in increasing order
// of precedence. The result is validated.
func Load(path string) (Config, error) {
	v := NewViper()
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("folio config: read %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// NewViper returns a viper instance seeded with DefaultConfig and wired for
// environment overrides. Callers may bind flags before calling FromViper.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	return v
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("folio config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("default_language", cfg.DefaultLanguage)

	v.SetDefault("content.dir", cfg.Content.Dir)
	v.SetDefault("content.public_dir", cfg.Content.PublicDir)
	v.SetDefault("content.max_depth", cfg.Content.MaxDepth)
	v.SetDefault("content.recursive", cfg.Content.Recursive)
	v.SetDefault("content.include_hidden", cfg.Content.IncludeHidden)
	v.SetDefault("content.allow_raw_markup", cfg.Content.AllowRawMarkup)
	v.SetDefault("content.verify_hero_images", cfg.Content.VerifyHeroImages)
	v.SetDefault("content.workers", cfg.Content.Workers)
	v.SetDefault("content.featured_limit", cfg.Content.FeaturedLimit)

	v.SetDefault("markdown.highlight_style", cfg.Markdown.HighlightStyle)
	v.SetDefault("markdown.typographer", cfg.Markdown.Typographer)
	v.SetDefault("markdown.linkify", cfg.Markdown.Linkify)
	v.SetDefault("markdown.hard_wraps", cfg.Markdown.HardWraps)

	v.SetDefault("i18n.enabled", cfg.I18N.Enabled)
	v.SetDefault("i18n.dictionary_path", cfg.I18N.DictionaryPath)
	v.SetDefault("i18n.cache_ttl", cfg.I18N.CacheTTL)
	v.SetDefault("i18n.fallback_to_key", cfg.I18N.FallbackToKey)
	v.SetDefault("i18n.warn_on_missing", cfg.I18N.WarnOnMissing)
	v.SetDefault("i18n.strict_mode", cfg.I18N.StrictMode)
	v.SetDefault("i18n.required_keys", cfg.I18N.RequiredKeys)

	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)

	v.SetDefault("features.logger", cfg.Features.Logger)
}
