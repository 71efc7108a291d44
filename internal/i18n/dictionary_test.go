package i18n

import (
	"context"
	"errors"
	"testing"

	"github.com/folio-press/folio/internal/validation"
)

func TestFileSourceYAML(t *testing.T) {
	dict, err := NewFileSource("testdata/translations.yaml").Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := dict.Lookup("es", "hero.title"); !ok || got != "Hola" {
		t.Fatalf("expected Hola, got %q (%v)", got, ok)
	}
}

func TestFileSourceRejectsInvalidShape(t *testing.T) {
	_, err := NewFileSource("testdata/invalid.json").Load(context.Background())
	if !errors.Is(err, ErrDictionaryLoad) {
		t.Fatalf("expected ErrDictionaryLoad, got %v", err)
	}
	if !errors.Is(err, validation.ErrSchemaViolation) {
		t.Fatalf("expected schema violation cause, got %v", err)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource("testdata/missing.json").Load(context.Background())
	var dictErr *DictionaryError
	if !errors.As(err, &dictErr) || dictErr.Source != "testdata/missing.json" {
		t.Fatalf("expected DictionaryError naming the path, got %v", err)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	if _, err := Decode([]byte(`{"en": `), FormatJSON); err == nil {
		t.Fatal("expected malformed json to fail")
	}
	if _, err := Decode([]byte(`{}`), "toml"); err == nil {
		t.Fatal("expected unsupported format to fail")
	}
}

func TestDictionaryKeys(t *testing.T) {
	dict, err := NewFileSource("testdata/translations.json").Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	keys := dict.Keys("en")
	want := []string{"hero.subtitle", "hero.title", "nav.about", "nav.projects", "withVars"}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}
	if langs := dict.Languages(); len(langs) != 2 || langs[0] != "en" || langs[1] != "es" {
		t.Fatalf("unexpected languages %v", langs)
	}
}

func TestCoverage(t *testing.T) {
	dict, err := NewFileSource("testdata/translations.json").Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report := Coverage(dict, nil, []string{"hero.title", "footer.copyright"})
	if report.OK() {
		t.Fatal("expected problems to be reported")
	}
	if got := report.Untranslated["es"]; len(got) != 1 || got[0] != "nav.about" {
		t.Fatalf("expected nav.about untranslated in es, got %v", got)
	}
	if _, ok := report.Untranslated["en"]; ok {
		t.Fatalf("expected english to be complete, got %v", report.Untranslated["en"])
	}
	for _, lang := range []string{"en", "es"} {
		if got := report.Required[lang]; len(got) != 1 || got[0] != "footer.copyright" {
			t.Fatalf("expected footer.copyright missing for %s, got %v", lang, got)
		}
	}

	if complete := Coverage(dict, []string{"en"}, []string{"hero.title"}); !complete.OK() {
		t.Fatalf("expected english coverage to pass, got %s", complete)
	}
}
