// Package language resolves the active site language from request and client
// signals. The supported set is closed: every function in this package returns
// one of Supported() and never an unknown code.
package language

import (
	"regexp"
	"strings"
)

// Code identifies a supported site language.
type Code string

const (
	English Code = "en"
	Spanish Code = "es"
)

// Default is the code every unsupported input normalizes to.
const Default = English

// StorageKey is the key clients use to persist the chosen language.
const StorageKey = "site.lang"

var supported = []Code{English, Spanish}

var pathPattern = regexp.MustCompile(`(?i)^/(en|es)(/|$)`)

// Supported returns the closed set of language codes in display order.
func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}

// String implements fmt.Stringer.
func (c Code) String() string {
	return string(c)
}

// IsSupported reports whether value is a supported code, case-insensitively.
func IsSupported(value string) bool {
	_, ok := lookup(value)
	return ok
}

// Normalize maps value onto the closed set, returning Default for anything
// unsupported.
func Normalize(value string) Code {
	if code, ok := lookup(value); ok {
		return code
	}
	return Default
}

func lookup(value string) (Code, bool) {
	candidate := Code(strings.ToLower(strings.TrimSpace(value)))
	for _, code := range supported {
		if code == candidate {
			return code, true
		}
	}
	return "", false
}

// FromPath extracts the language from a leading path segment such as /es/blog.
func FromPath(path string) (Code, bool) {
	match := pathPattern.FindStringSubmatch(path)
	if match == nil {
		return "", false
	}
	return Normalize(match[1]), true
}

// FromPreferences returns the first preference whose two-letter prefix is
// supported. Preferences are tried in the order given.
func FromPreferences(preferences []string) (Code, bool) {
	for _, pref := range preferences {
		pref = strings.TrimSpace(pref)
		if len(pref) < 2 {
			continue
		}
		if code, ok := lookup(pref[:2]); ok {
			return code, true
		}
	}
	return "", false
}

// WithoutPrefix strips a leading language segment from path. Paths without a
// language segment are returned unchanged.
func WithoutPrefix(path string) string {
	loc := pathPattern.FindStringSubmatchIndex(path)
	if loc == nil {
		return path
	}
	rest := path[loc[3]:]
	if rest == "" {
		return "/"
	}
	return rest
}

// LocalizedPath prefixes path with the language segment for code, replacing
// any existing language segment.
func LocalizedPath(path string, code Code) string {
	path = WithoutPrefix(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == "/" {
		return "/" + Normalize(string(code)).String() + "/"
	}
	return "/" + Normalize(string(code)).String() + path
}
