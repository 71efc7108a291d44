package i18n

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/folio-press/folio/internal/language"
	"github.com/folio-press/folio/internal/logging"
	"github.com/folio-press/folio/pkg/interfaces"
)

// Options control how Translate treats missing keys.
type Options struct {
	// Strict turns a missing key or an unloadable dictionary into an error.
	Strict bool
	// FallbackToKey returns the key itself for missing translations; when
	// false an empty string is returned.
	FallbackToKey bool
	// WarnOnMissing logs a warning the first time a key is missing for a
	// language.
	WarnOnMissing bool
	// OnMissing is invoked for every missing lookup.
	OnMissing interfaces.MissingTranslationHandler
}

// DefaultOptions returns lenient lookup behaviour.
func DefaultOptions() Options {
	return Options{FallbackToKey: true, WarnOnMissing: true}
}

// Option adjusts Options for a single Translate call.
type Option func(*Options)

// WithStrict toggles strict mode.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// WithFallbackToKey toggles returning the key for missing translations.
func WithFallbackToKey(fallback bool) Option {
	return func(o *Options) { o.FallbackToKey = fallback }
}

// WithWarnOnMissing toggles missing key warnings.
func WithWarnOnMissing(warn bool) Option {
	return func(o *Options) { o.WarnOnMissing = warn }
}

// WithMissingHandler registers a callback for missing keys.
func WithMissingHandler(handler interfaces.MissingTranslationHandler) Option {
	return func(o *Options) { o.OnMissing = handler }
}

// Resolver translates dotted keys against a cached dictionary.
type Resolver struct {
	cache    *Cache
	defaults Options
	logger   interfaces.Logger
	warned   sync.Map
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDefaults replaces DefaultOptions for every call.
func WithDefaults(opts Options) ResolverOption {
	return func(r *Resolver) { r.defaults = opts }
}

// WithLogger sets the logger used for missing key warnings.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver builds a resolver reading from cache.
func NewResolver(cache *Cache, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		cache:    cache,
		defaults: DefaultOptions(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cache exposes the underlying dictionary cache.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Translate resolves key for lang and interpolates vars. Unsupported
// languages resolve as en.
func (r *Resolver) Translate(ctx context.Context, key, lang string, vars Vars, opts ...Option) (string, error) {
	const op = "i18n.translate"
	if strings.TrimSpace(key) == "" {
		return "", interfaces.NewInvalidInput(op, "key", key, "must be a non-empty string")
	}
	if name, value, ok := checkVars(vars); !ok {
		return "", interfaces.NewInvalidInput(op, "vars."+name, value, "must be a scalar value")
	}

	options := r.defaults
	for _, opt := range opts {
		opt(&options)
	}
	code := language.Normalize(lang).String()

	dict, err := r.dictionary(ctx)
	if err != nil {
		if options.Strict || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		r.logger.Warn("i18n.dictionary.unavailable", "error", err)
		return r.missing(key, code, options)
	}

	template, ok := dict.Lookup(code, key)
	if !ok {
		return r.missing(key, code, options)
	}
	return Interpolate(template, vars), nil
}

// MustTranslate never fails: errors degrade to the key.
func (r *Resolver) MustTranslate(ctx context.Context, key, lang string, vars Vars) string {
	out, err := r.Translate(ctx, key, lang, vars, WithStrict(false))
	if err != nil {
		r.logger.Debug("i18n.translate.failed", "key", key, "language", lang, "error", err)
		return key
	}
	return out
}

func (r *Resolver) dictionary(ctx context.Context) (Dictionary, error) {
	if r.cache == nil {
		return nil, &DictionaryError{Source: "<none>", Cause: fmt.Errorf("no dictionary cache configured")}
	}
	return r.cache.Get(ctx)
}

func (r *Resolver) missing(key, lang string, options Options) (string, error) {
	if options.OnMissing != nil {
		options.OnMissing(key, lang)
	}
	if options.Strict {
		return "", &TranslationNotFoundError{Key: key, Language: lang}
	}
	if options.WarnOnMissing {
		if _, seen := r.warned.LoadOrStore(lang+"\x00"+key, struct{}{}); !seen {
			r.logger.Warn("i18n.translation.missing", "key", key, "language", lang)
		}
	}
	if options.FallbackToKey {
		return key, nil
	}
	return "", nil
}

// ResetWarnings forgets which missing keys were already reported.
func (r *Resolver) ResetWarnings() {
	r.warned.Clear()
}

type translator struct {
	resolver *Resolver
}

func (t translator) Translate(ctx context.Context, key, lang string, vars map[string]any) (string, error) {
	return t.resolver.Translate(ctx, key, lang, Vars(vars))
}

// Translator adapts the resolver to interfaces.Translator.
func (r *Resolver) Translator() interfaces.Translator {
	return translator{resolver: r}
}
