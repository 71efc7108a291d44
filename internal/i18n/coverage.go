package i18n

import (
	"slices"
	"strings"

	"github.com/folio-press/folio/internal/language"
)

// Report lists keys that are missing per language.
type Report struct {
	// Required lists required keys absent from a language.
	Required map[string][]string `json:"required,omitempty"`
	// Untranslated lists keys another language defines but this one lacks.
	Untranslated map[string][]string `json:"untranslated,omitempty"`
}

// OK reports whether nothing is missing.
func (r Report) OK() bool {
	return len(r.Required) == 0 && len(r.Untranslated) == 0
}

// String renders the report one problem per line.
func (r Report) String() string {
	if r.OK() {
		return "all translations present"
	}
	var b strings.Builder
	write := func(kind string, entries map[string][]string) {
		langs := make([]string, 0, len(entries))
		for lang := range entries {
			langs = append(langs, lang)
		}
		slices.Sort(langs)
		for _, lang := range langs {
			for _, key := range entries[lang] {
				b.WriteString(lang + ": " + kind + " " + key + "\n")
			}
		}
	}
	write("missing required key", r.Required)
	write("untranslated key", r.Untranslated)
	return strings.TrimRight(b.String(), "\n")
}

// Coverage compares languages against each other and against required keys.
// languages defaults to every supported language when empty.
func Coverage(dict Dictionary, languages []string, required []string) Report {
	if len(languages) == 0 {
		for _, code := range language.Supported() {
			languages = append(languages, code.String())
		}
	}
	report := Report{Required: map[string][]string{}, Untranslated: map[string][]string{}}

	union := map[string]struct{}{}
	present := make(map[string]map[string]struct{}, len(languages))
	for _, lang := range languages {
		keys := map[string]struct{}{}
		for _, key := range dict.Keys(lang) {
			keys[key] = struct{}{}
			union[key] = struct{}{}
		}
		present[lang] = keys
	}

	for _, lang := range languages {
		for _, key := range required {
			if _, ok := present[lang][key]; !ok {
				report.Required[lang] = append(report.Required[lang], key)
			}
		}
		for key := range union {
			if _, ok := present[lang][key]; !ok {
				report.Untranslated[lang] = append(report.Untranslated[lang], key)
			}
		}
		slices.Sort(report.Untranslated[lang])
		if len(report.Untranslated[lang]) == 0 {
			delete(report.Untranslated, lang)
		}
	}

	if len(report.Required) == 0 {
		report.Required = nil
	}
	if len(report.Untranslated) == 0 {
		report.Untranslated = nil
	}
	return report
}
