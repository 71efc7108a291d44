package interfaces

import "context"

// Translator resolves dotted translation keys for a language code, substituting
// {{name}} placeholders from vars.
type Translator interface {
	Translate(ctx context.Context, key, language string, vars map[string]any) (string, error)
}

// MissingTranslationHandler is notified when a key cannot be resolved and the
// resolver is configured to warn on missing keys.
type MissingTranslationHandler func(key, language string)

// TemplateHelperProvider exposes lookup helpers for template engines.
type TemplateHelperProvider interface {
	TemplateHelpers(language string) map[string]any
}
