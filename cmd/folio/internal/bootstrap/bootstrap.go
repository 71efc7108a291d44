package bootstrap

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/folio-press/folio"
	"github.com/folio-press/folio/internal/runtimeconfig"
	"github.com/folio-press/folio/pkg/interfaces"
)

// FlagBindings maps CLI flag names to configuration keys.
var FlagBindings = map[string]string{
	"content-dir":  "content.dir",
	"public-dir":   "content.public_dir",
	"dictionary":   "i18n.dictionary_path",
	"default-lang": "default_language",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
	"verbose":      "features.logger",
}

// Options captures how the CLI builds its module.
type Options struct {
	// ConfigFile is optional; YAML, JSON and TOML are detected by extension.
	ConfigFile string
	// Flags holds the persistent flags named in FlagBindings. Only flags the
	// user changed override file and environment values.
	Flags          *pflag.FlagSet
	LoggerProvider interfaces.LoggerProvider
	ModuleOptions  []folio.Option
}

// LoadConfig merges defaults, the config file, FOLIO_* variables and flags.
func LoadConfig(opts Options) (folio.Config, error) {
	v := runtimeconfig.NewViper()
	if path := strings.TrimSpace(opts.ConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return folio.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if opts.Flags != nil {
		for name, key := range FlagBindings {
			flag := opts.Flags.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return folio.Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	return runtimeconfig.FromViper(v)
}

// BuildModule loads configuration and constructs the module.
func BuildModule(opts Options) (*folio.Module, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	moduleOpts := append([]folio.Option{}, opts.ModuleOptions...)
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, folio.WithLoggerProvider(opts.LoggerProvider))
	}
	module, err := folio.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise folio module: %w", err)
	}
	return module, nil
}

// SplitList turns a comma separated value into trimmed, non-empty entries.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
