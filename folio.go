package folio

import (
	"context"
	"errors"
	"strings"

	"github.com/folio-press/folio/internal/commands"
	"github.com/folio-press/folio/internal/commands/contentcmd"
	"github.com/folio-press/folio/internal/commands/i18ncmd"
	"github.com/folio-press/folio/internal/content"
	"github.com/folio-press/folio/internal/di"
	"github.com/folio-press/folio/internal/i18n"
	"github.com/folio-press/folio/internal/language"
	"github.com/folio-press/folio/internal/logging"
	"github.com/folio-press/folio/internal/markdown"
	"github.com/folio-press/folio/internal/validation"
	"github.com/folio-press/folio/pkg/interfaces"
)

// Record is one discovered project file.
type Record = content.Record

// DiscoverOptions controls a discovery run.
type DiscoverOptions = content.Options

// RenderOptions customises a single render.
type RenderOptions = interfaces.RenderOptions

// RenderResult is the metadata, body and HTML of a rendered document.
type RenderResult = interfaces.RenderResult

// Frontmatter is validated metadata with defaults applied.
type Frontmatter = validation.Record

// LanguageCode is one of the supported site languages.
type LanguageCode = language.Code

// LanguageSignals are the inputs of language resolution.
type LanguageSignals = language.Signals

// TranslationVars are placeholder values for Translate.
type TranslationVars = i18n.Vars

// TranslateOption overrides resolver defaults for one lookup.
type TranslateOption = i18n.Option

// CoverageReport lists missing translation keys per language.
type CoverageReport = i18n.Report

// Option customises module construction.
type Option = di.Option

var (
	WithLoggerProvider            = di.WithLoggerProvider
	WithDiagnosticsWriter         = di.WithDiagnosticsWriter
	WithContentFS                 = di.WithContentFS
	WithAssetsFS                  = di.WithAssetsFS
	WithDictionarySource          = di.WithDictionarySource
	WithClock                     = di.WithClock
	WithRunIDGenerator            = di.WithRunIDGenerator
	WithMissingTranslationHandler = di.WithMissingTranslationHandler
)

// ErrWatchUnavailable is returned by WatchTranslations when the dictionary is
// not read from a local file.
var ErrWatchUnavailable = errors.New("folio: dictionary watch requires a file source")

// Module is the runtime facade over discovery, rendering and translations.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying wiring for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.container.Config
}

// DiscoverOptions returns the discovery options derived from the config.
func (m *Module) DiscoverOptions() DiscoverOptions {
	cfg := m.container.Config.Content
	return DiscoverOptions{
		Recursive:      content.Bool(cfg.Recursive),
		IncludeHidden:  cfg.IncludeHidden,
		MaxDepth:       cfg.MaxDepth,
		AllowRawMarkup: cfg.AllowRawMarkup,
	}
}

// Discover walks the whole content directory.
func (m *Module) Discover(ctx context.Context) ([]Record, error) {
	return m.container.Discoverer().Discover(ctx, ".", m.DiscoverOptions())
}

// DiscoverLanguage returns the records for lang, falling back to the
// configured default language when lang has none, newest first.
func (m *Module) DiscoverLanguage(ctx context.Context, lang string) ([]Record, error) {
	records, err := m.Discover(ctx)
	if err != nil {
		return nil, err
	}
	filtered := content.ByLanguageOrFallback(records, language.Normalize(lang), m.defaultLanguage())
	return content.SortByStartDate(filtered), nil
}

// Featured returns up to the configured number of featured records for lang.
func (m *Module) Featured(ctx context.Context, lang string) ([]Record, error) {
	records, err := m.Discover(ctx)
	if err != nil {
		return nil, err
	}
	filtered := content.ByLanguageOrFallback(records, language.Normalize(lang), m.defaultLanguage())
	return content.Featured(filtered, m.container.Config.Content.FeaturedLimit), nil
}

// Render converts a Markdown document with optional metadata block to HTML.
func (m *Module) Render(source string, opts RenderOptions) (*RenderResult, error) {
	return m.container.Renderer().Render(source, opts)
}

// ValidateFrontmatter checks raw metadata against the project schema.
func (m *Module) ValidateFrontmatter(raw map[string]any) (Frontmatter, error) {
	return validation.Validate(validation.ProjectSchema(), raw)
}

// ResolveLanguage picks the active language. An empty Default uses the
// configured default language.
func (m *Module) ResolveLanguage(signals LanguageSignals) LanguageCode {
	if strings.TrimSpace(signals.Default) == "" {
		signals.Default = m.container.Config.DefaultLanguage
	}
	resolution := language.Explain(signals)
	logging.LanguageLogger(m.container.LoggerProvider()).Debug("language.resolved",
		"language", resolution.Code.String(), "source", string(resolution.Source))
	return resolution.Code
}

// Translate resolves key for lang using the configured defaults.
func (m *Module) Translate(ctx context.Context, key, lang string, vars TranslationVars, opts ...TranslateOption) (string, error) {
	return m.container.Translations().Translate(ctx, key, lang, vars, opts...)
}

// Translator adapts the module to interfaces.Translator.
func (m *Module) Translator() interfaces.Translator {
	return m.container.Translations().Translator()
}

// TemplateHelpers returns template functions bound to lang.
func (m *Module) TemplateHelpers(lang string) map[string]any {
	return m.container.Translations().TemplateHelpers(lang)
}

// InvalidateTranslations forces the next lookup to reload the dictionary.
func (m *Module) InvalidateTranslations() {
	m.container.TranslationCache().Invalidate()
}

// TranslationCoverage reports missing keys for languages (all supported when
// empty), including the configured required keys.
func (m *Module) TranslationCoverage(ctx context.Context, languages ...string) (CoverageReport, error) {
	dict, err := m.container.TranslationCache().Get(ctx)
	if err != nil {
		return CoverageReport{}, err
	}
	return i18n.Coverage(dict, languages, m.container.Config.I18N.RequiredKeys), nil
}

// WatchTranslations invalidates the dictionary cache whenever the dictionary
// file changes, until ctx is done.
func (m *Module) WatchTranslations(ctx context.Context, onChange func()) error {
	path := m.container.DictionaryPath()
	if path == "" {
		return ErrWatchUnavailable
	}
	watcher := i18n.NewWatcher(path, m.container.TranslationCache(),
		i18n.WithWatchLogger(logging.I18nLogger(m.container.LoggerProvider())),
		i18n.WithOnChange(onChange),
	)
	return watcher.Run(ctx)
}

// DiscoverHandler returns a command handler that delivers catalogs to sink.
func (m *Module) DiscoverHandler(sink contentcmd.Sink) *contentcmd.DiscoverHandler {
	return contentcmd.NewDiscoverHandler(m.container.Discoverer(), sink,
		commands.CommandLogger(m.container.LoggerProvider(), "content"))
}

// CheckTranslationsHandler returns a command handler reporting coverage to sink.
func (m *Module) CheckTranslationsHandler(sink i18ncmd.ReportSink) *i18ncmd.CheckTranslationsHandler {
	return i18ncmd.NewCheckTranslationsHandler(m.container.TranslationCache(), sink,
		commands.CommandLogger(m.container.LoggerProvider(), "i18n"))
}

// InvalidateCacheHandler returns a command handler that drops the dictionary cache.
func (m *Module) InvalidateCacheHandler() *i18ncmd.InvalidateCacheHandler {
	return i18ncmd.NewInvalidateCacheHandler(m.container.TranslationCache(),
		commands.CommandLogger(m.container.LoggerProvider(), "i18n"))
}

// Renderer returns the configured Markdown renderer.
func (m *Module) Renderer() *markdown.Renderer {
	return m.container.Renderer()
}

func (m *Module) defaultLanguage() language.Code {
	return language.Normalize(m.container.Config.DefaultLanguage)
}
