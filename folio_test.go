package folio_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/folio-press/folio"
	"github.com/folio-press/folio/internal/i18n"
	"github.com/folio-press/folio/internal/validation"
)

func newSiteModule(t *testing.T, mutate ...func(*folio.Config)) *folio.Module {
	t.Helper()
	cfg := folio.DefaultConfig()
	cfg.Content.Dir = "testdata/site/projects"
	cfg.Content.PublicDir = "testdata/site/public"
	cfg.I18N.DictionaryPath = "testdata/site/i18n/translations.yaml"
	for _, fn := range mutate {
		fn(&cfg)
	}
	module, err := folio.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module
}

func slugsOf(records []folio.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Slug
	}
	return out
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := folio.DefaultConfig()
	cfg.DefaultLanguage = "de"
	if _, err := folio.New(cfg); !errors.Is(err, folio.ErrDefaultLanguageUnsupported) {
		t.Fatalf("expected ErrDefaultLanguageUnsupported, got %v", err)
	}
}

func TestModuleDiscoverSite(t *testing.T) {
	module := newSiteModule(t)

	records, err := module.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %v", slugsOf(records))
	}

	byslug := map[string]folio.Record{}
	for _, r := range records {
		byslug[r.Slug] = r
	}
	if !byslug["alpha-en"].HeroImageValid {
		t.Fatal("expected alpha hero image to resolve against the public dir")
	}
	if byslug["beta-en"].HeroImageValid || byslug["gamma-en"].HeroImageValid {
		t.Fatal("expected missing and remote hero images to be invalid")
	}
	if byslug["gamma-en"].FilePath != "archive/gamma-en.md" {
		t.Fatalf("unexpected file path %q", byslug["gamma-en"].FilePath)
	}
	if !strings.Contains(byslug["alpha-en"].RenderedHTML, `target="_blank"`) {
		t.Fatalf("expected external link to be tagged, got %s", byslug["alpha-en"].RenderedHTML)
	}
}

func TestModuleDiscoverRespectsFlatConfig(t *testing.T) {
	module := newSiteModule(t, func(cfg *folio.Config) { cfg.Content.Recursive = false })

	records, err := module.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	for _, r := range records {
		if r.Slug == "gamma-en" {
			t.Fatal("expected nested project to be skipped")
		}
	}
}

func TestModuleDiscoverLanguageOrdersNewestFirst(t *testing.T) {
	module := newSiteModule(t)

	en, err := module.DiscoverLanguage(context.Background(), "en")
	if err != nil {
		t.Fatalf("DiscoverLanguage: %v", err)
	}
	if got := strings.Join(slugsOf(en), ","); got != "gamma-en,alpha-en,beta-en" {
		t.Fatalf("unexpected en order %s", got)
	}

	es, err := module.DiscoverLanguage(context.Background(), "es")
	if err != nil {
		t.Fatalf("DiscoverLanguage: %v", err)
	}
	if got := strings.Join(slugsOf(es), ","); got != "alpha-es" {
		t.Fatalf("unexpected es records %s", got)
	}
}

func TestModuleFeaturedOrdering(t *testing.T) {
	module := newSiteModule(t)

	featured, err := module.Featured(context.Background(), "en")
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if got := strings.Join(slugsOf(featured), ","); got != "beta-en,alpha-en" {
		t.Fatalf("expected explicit order first, got %s", got)
	}
}

func TestModuleRender(t *testing.T) {
	module := newSiteModule(t)

	result, err := module.Render("---\ntitle: Demo\n---\n# Demo\n\n<script>x</script>\n", folio.RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if result.Metadata["title"] != "Demo" {
		t.Fatalf("unexpected metadata %v", result.Metadata)
	}
	if strings.Contains(result.HTML, "<script>") {
		t.Fatalf("expected raw markup to be escaped, got %s", result.HTML)
	}
}

func TestModuleValidateFrontmatter(t *testing.T) {
	module := newSiteModule(t)

	_, err := module.ValidateFrontmatter(map[string]any{"title": "Only title"})
	if !errors.Is(err, validation.ErrSchemaViolation) {
		t.Fatalf("expected schema violation, got %v", err)
	}
	fm, err := module.ValidateFrontmatter(map[string]any{
		"title":       "Demo",
		"description": "d",
		"startDate":   "2024-01-01",
		"tags":        []any{"go"},
		"heroImage":   "/x.png",
		"language":    "es",
	})
	if err != nil {
		t.Fatalf("ValidateFrontmatter: %v", err)
	}
	if fm["featured"] != false {
		t.Fatalf("expected featured default, got %v", fm["featured"])
	}
}

func TestModuleResolveLanguageUsesConfiguredDefault(t *testing.T) {
	module := newSiteModule(t, func(cfg *folio.Config) { cfg.DefaultLanguage = "es" })

	if got := module.ResolveLanguage(folio.LanguageSignals{}); got != "es" {
		t.Fatalf("expected configured default es, got %s", got)
	}
	if got := module.ResolveLanguage(folio.LanguageSignals{Path: "/en/projects"}); got != "en" {
		t.Fatalf("expected path to win, got %s", got)
	}
	if got := module.ResolveLanguage(folio.LanguageSignals{AcceptLanguage: "fr;q=0.9, en;q=0.8"}); got != "en" {
		t.Fatalf("expected accept-language match, got %s", got)
	}
}

func TestModuleTranslateFromYAMLDictionary(t *testing.T) {
	module := newSiteModule(t)
	ctx := context.Background()

	got, err := module.Translate(ctx, "hero.greeting", "es", folio.TranslationVars{"name": "Ana"})
	if err != nil || got != "Hola Ana" {
		t.Fatalf("expected Hola Ana, got %q (%v)", got, err)
	}
	if got, _ := module.Translate(ctx, "nav.projects", "es", nil); got != "nav.projects" {
		t.Fatalf("expected key fallback, got %q", got)
	}
	if _, err := module.Translate(ctx, "nav.projects", "es", nil, i18n.WithStrict(true)); !errors.Is(err, i18n.ErrTranslationNotFound) {
		t.Fatalf("expected strict miss, got %v", err)
	}

	helpers := module.TemplateHelpers("en")
	translate, ok := helpers["t"].(func(string, ...map[string]any) string)
	if !ok {
		t.Fatalf("unexpected helper type %T", helpers["t"])
	}
	if translate("nav.home") != "Home" {
		t.Fatal("expected template helper to translate")
	}
}

func TestModuleTranslationCoverage(t *testing.T) {
	module := newSiteModule(t, func(cfg *folio.Config) {
		cfg.I18N.RequiredKeys = []string{"nav.home", "footer.copyright"}
	})

	report, err := module.TranslationCoverage(context.Background())
	if err != nil {
		t.Fatalf("TranslationCoverage: %v", err)
	}
	if report.OK() {
		t.Fatal("expected gaps")
	}
	if keys := report.Untranslated["es"]; len(keys) != 1 || keys[0] != "nav.projects" {
		t.Fatalf("unexpected untranslated %v", report.Untranslated)
	}
	if keys := report.Required["en"]; len(keys) != 1 || keys[0] != "footer.copyright" {
		t.Fatalf("unexpected required %v", report.Required)
	}
}

func TestModuleInvalidateTranslationsReloads(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/translations.json"
	if err := os.WriteFile(path, []byte(`{"en":{"title":"One"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	module := newSiteModule(t, func(cfg *folio.Config) { cfg.I18N.DictionaryPath = path })
	ctx := context.Background()

	if got, _ := module.Translate(ctx, "title", "en", nil); got != "One" {
		t.Fatalf("expected One, got %q", got)
	}
	if err := os.WriteFile(path, []byte(`{"en":{"title":"Two"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, _ := module.Translate(ctx, "title", "en", nil); got != "One" {
		t.Fatalf("expected cached One before invalidation, got %q", got)
	}
	module.InvalidateTranslations()
	if got, _ := module.Translate(ctx, "title", "en", nil); got != "Two" {
		t.Fatalf("expected Two after invalidation, got %q", got)
	}
}

func TestModuleWatchRequiresFileSource(t *testing.T) {
	cfg := folio.DefaultConfig()
	module, err := folio.New(cfg, folio.WithDictionarySource(i18n.NewStaticSource(i18n.Dictionary{})))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := module.WatchTranslations(context.Background(), nil); !errors.Is(err, folio.ErrWatchUnavailable) {
		t.Fatalf("expected ErrWatchUnavailable, got %v", err)
	}
}
