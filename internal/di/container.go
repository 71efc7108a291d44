package di

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/folio-press/folio/internal/content"
	"github.com/folio-press/folio/internal/i18n"
	"github.com/folio-press/folio/internal/logging"
	"github.com/folio-press/folio/internal/logging/console"
	"github.com/folio-press/folio/internal/logging/gologger"
	"github.com/folio-press/folio/internal/markdown"
	"github.com/folio-press/folio/internal/runtimeconfig"
	"github.com/folio-press/folio/pkg/interfaces"
)

// Container wires the runtime services from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider   interfaces.LoggerProvider
	diagnostics      io.Writer
	contentFS        fs.FS
	assetsFS         fs.FS
	assetsSet        bool
	dictionarySource i18n.Source
	dictionaryPath   string
	clock            func() time.Time
	runID            func() uuid.UUID
	missingHandler   interfaces.MissingTranslationHandler

	renderer   *markdown.Renderer
	discoverer *content.Discoverer
	cache      *i18n.Cache
	resolver   *i18n.Resolver
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithDiagnosticsWriter sets where warnings go when the go-logger provider
// is disabled. Defaults to stderr.
func WithDiagnosticsWriter(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.diagnostics = w
		}
	}
}

// WithContentFS overrides the filesystem content is read from.
func WithContentFS(files fs.FS) Option {
	return func(c *Container) {
		if files != nil {
			c.contentFS = files
		}
	}
}

// WithAssetsFS overrides the filesystem hero images are checked against.
// Passing nil disables the check.
func WithAssetsFS(assets fs.FS) Option {
	return func(c *Container) {
		c.assetsFS = assets
		c.assetsSet = true
	}
}

// WithDictionarySource overrides the dictionary file named in the config.
func WithDictionarySource(source i18n.Source) Option {
	return func(c *Container) {
		if source != nil {
			c.dictionarySource = source
		}
	}
}

// WithClock overrides the clock used for cache expiry.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRunIDGenerator overrides discovery run identifiers.
func WithRunIDGenerator(generator func() uuid.UUID) Option {
	return func(c *Container) {
		if generator != nil {
			c.runID = generator
		}
	}
}

// WithMissingTranslationHandler registers a callback for missing keys.
func WithMissingTranslationHandler(handler interfaces.MissingTranslationHandler) Option {
	return func(c *Container) {
		c.missingHandler = handler
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		clock:  time.Now,
		runID:  uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureRenderer()
	c.configureDiscovery()
	c.configureTranslations()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		c.loggerProvider = console.NewDiagnostics(c.diagnostics)
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: configure logger: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureRenderer() {
	cfg := c.Config.Markdown
	c.renderer = markdown.NewRenderer(markdown.Config{
		HighlightStyle: cfg.HighlightStyle,
		Typographer:    cfg.Typographer,
		Linkify:        cfg.Linkify,
		HardWraps:      cfg.HardWraps,
		Logger:         logging.MarkdownLogger(c.loggerProvider),
	})
}

func (c *Container) configureDiscovery() {
	cfg := c.Config.Content
	if c.contentFS == nil {
		c.contentFS = os.DirFS(cfg.Dir)
	}
	if !c.assetsSet && cfg.VerifyHeroImages && strings.TrimSpace(cfg.PublicDir) != "" {
		c.assetsFS = os.DirFS(cfg.PublicDir)
	}
	assets := c.assetsFS
	if !cfg.VerifyHeroImages {
		assets = nil
	}
	c.discoverer = content.NewDiscoverer(c.contentFS, c.renderer,
		content.WithAssets(assets),
		content.WithLogger(logging.ContentLogger(c.loggerProvider)),
		content.WithWorkers(cfg.Workers),
		content.WithRunIDGenerator(c.runID),
	)
}

func (c *Container) configureTranslations() {
	cfg := c.Config.I18N
	source := c.dictionarySource
	if source == nil {
		if cfg.Enabled {
			source = i18n.NewFileSource(cfg.DictionaryPath)
			c.dictionaryPath = cfg.DictionaryPath
		} else {
			source = i18n.NewStaticSource(i18n.Dictionary{})
		}
	}
	c.cache = i18n.NewCache(source, i18n.WithTTL(cfg.CacheTTL), i18n.WithClock(c.clock))
	c.resolver = i18n.NewResolver(c.cache,
		i18n.WithDefaults(i18n.Options{
			Strict:        cfg.StrictMode,
			FallbackToKey: cfg.FallbackToKey,
			WarnOnMissing: cfg.WarnOnMissing,
			OnMissing:     c.missingHandler,
		}),
		i18n.WithLogger(logging.I18nLogger(c.loggerProvider)),
	)
}

// LoggerProvider returns the configured provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Renderer returns the Markdown renderer.
func (c *Container) Renderer() *markdown.Renderer {
	return c.renderer
}

// Discoverer returns the content discoverer.
func (c *Container) Discoverer() *content.Discoverer {
	return c.discoverer
}

// TranslationCache returns the dictionary cache.
func (c *Container) TranslationCache() *i18n.Cache {
	return c.cache
}

// Translations returns the translation resolver.
func (c *Container) Translations() *i18n.Resolver {
	return c.resolver
}

// DictionaryPath returns the dictionary file on the local filesystem, or ""
// when translations come from an overridden source.
func (c *Container) DictionaryPath() string {
	return c.dictionaryPath
}
