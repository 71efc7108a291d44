package language

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNormalize(t *testing.T) {
	cases := map[string]Code{
		"en":    English,
		"ES":    Spanish,
		" es ":  Spanish,
		"fr":    English,
		"":      English,
		"es-MX": English,
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Fatalf("Normalize(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestFromPath(t *testing.T) {
	cases := []struct {
		path string
		want Code
		ok   bool
	}{
		{"/es/blog", Spanish, true},
		{"/ES", Spanish, true},
		{"/en/", English, true},
		{"/espanol/", "", false},
		{"/blog/es/", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := FromPath(tc.path)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("FromPath(%q): expected (%q, %v), got (%q, %v)", tc.path, tc.want, tc.ok, got, ok)
		}
	}
}

func TestFromPreferencesUsesTwoLetterPrefix(t *testing.T) {
	got, ok := FromPreferences([]string{"fr-FR", "es-MX", "en-US"})
	if !ok || got != Spanish {
		t.Fatalf("expected es from preferences, got (%q, %v)", got, ok)
	}
	if _, ok := FromPreferences([]string{"de", "x"}); ok {
		t.Fatal("expected no match for unsupported preferences")
	}
}

func TestLocalizedPath(t *testing.T) {
	cases := []struct {
		path string
		code Code
		want string
	}{
		{"/es/blog", English, "/en/blog"},
		{"/blog", Spanish, "/es/blog"},
		{"/", Spanish, "/es/"},
		{"/en", Spanish, "/es/"},
		{"about", English, "/en/about"},
	}
	for _, tc := range cases {
		if got := LocalizedPath(tc.path, tc.code); got != tc.want {
			t.Fatalf("LocalizedPath(%q, %q): expected %q, got %q", tc.path, tc.code, tc.want, got)
		}
	}
}

func TestNormalizeNeverLeavesSupportedSet(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("normalize returns a supported code", prop.ForAll(
		func(input string) bool {
			return IsSupported(Normalize(input).String())
		},
		gen.AnyString(),
	))

	properties.Property("resolve returns a supported code", prop.ForAll(
		func(path, stored, def string) bool {
			code := Resolve(Signals{Path: path, Stored: stored, Preferred: []string{stored}, Default: def})
			return IsSupported(code.String())
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
