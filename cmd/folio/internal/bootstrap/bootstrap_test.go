package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("content-dir", "", "")
	flags.String("public-dir", "", "")
	flags.String("dictionary", "", "")
	flags.String("default-lang", "", "")
	flags.String("log-level", "", "")
	flags.String("log-format", "", "")
	flags.Bool("verbose", false, "")
	return flags
}

func TestLoadConfigIgnoresUnchangedFlags(t *testing.T) {
	cfg, err := LoadConfig(Options{Flags: newFlags()})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Content.Dir != "content/projects" || cfg.DefaultLanguage != "en" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	data := []byte("content:\n  dir: from-file\n  public_dir: public-file\ndefault_language: es\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_CONTENT_PUBLIC_DIR", "public-env")

	flags := newFlags()
	if err := flags.Parse([]string{"--content-dir", "from-flag", "--verbose"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(Options{ConfigFile: path, Flags: flags})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Content.Dir != "from-flag" {
		t.Fatalf("expected flag to win, got %q", cfg.Content.Dir)
	}
	if cfg.Content.PublicDir != "public-env" {
		t.Fatalf("expected env to beat file, got %q", cfg.Content.PublicDir)
	}
	if cfg.DefaultLanguage != "es" {
		t.Fatalf("expected file value, got %q", cfg.DefaultLanguage)
	}
	if !cfg.Features.Logger {
		t.Fatal("expected --verbose to enable the logger feature")
	}
}

func TestBuildModuleReportsInvalidConfig(t *testing.T) {
	flags := newFlags()
	if err := flags.Parse([]string{"--default-lang", "fr"}); err != nil {
		t.Fatal(err)
	}
	if _, err := BuildModule(Options{Flags: flags}); err == nil {
		t.Fatal("expected invalid default language to fail")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" en, ,es ")
	if len(got) != 2 || got[0] != "en" || got[1] != "es" {
		t.Fatalf("unexpected split %v", got)
	}
}
