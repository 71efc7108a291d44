package i18n

import (
	"context"

	"github.com/folio-press/folio/internal/language"
)

// TemplateHelpers returns functions for template engines bound to lang:
//
//	t(key, vars...)  translated string, never an error
//	lang             the normalized language code
//	languages        every supported code
//	localize(path)   path prefixed with the language segment
func (r *Resolver) TemplateHelpers(lang string) map[string]any {
	code := language.Normalize(lang)
	supported := language.Supported()
	languages := make([]string, len(supported))
	for i, c := range supported {
		languages[i] = c.String()
	}

	return map[string]any{
		"t": func(key string, vars ...map[string]any) string {
			merged := Vars{}
			for _, set := range vars {
				for k, v := range set {
					merged[k] = v
				}
			}
			return r.MustTranslate(context.Background(), key, code.String(), merged)
		},
		"lang":      code.String(),
		"languages": languages,
		"localize": func(path string) string {
			return language.LocalizedPath(path, code)
		},
	}
}
