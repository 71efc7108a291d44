package language

import (
	"strings"

	"golang.org/x/text/language"
)

// Signals carries every source the resolver consults. All fields are optional.
type Signals struct {
	// Path is the request path; a leading /en or /es segment wins outright.
	Path string
	// Stored is a previously persisted preference.
	Stored string
	// Preferred lists client languages in preference order (e.g. navigator.languages).
	Preferred []string
	// AcceptLanguage is a raw Accept-Language header, consulted after Preferred.
	AcceptLanguage string
	// Default is the configured fallback. Unsupported values normalize to en.
	Default string
}

// Source names the tier that produced a resolution.
type Source string

const (
	SourcePath    Source = "path"
	SourceStored  Source = "stored"
	SourceBrowser Source = "browser"
	SourceDefault Source = "default"
)

// Resolution is the outcome of Resolve plus the tier that decided it.
type Resolution struct {
	Code   Code
	Source Source
}

// Resolve returns the active language for the supplied signals. Order: path
// segment, stored preference, client preferences, default.
func Resolve(signals Signals) Code {
	return Explain(signals).Code
}

// Explain behaves like Resolve and also reports which tier matched.
func Explain(signals Signals) Resolution {
	if code, ok := FromPath(signals.Path); ok {
		return Resolution{Code: code, Source: SourcePath}
	}

	// A stored value always counts once present; unsupported values collapse to
	// the default code rather than falling through.
	if stored := strings.TrimSpace(signals.Stored); stored != "" {
		return Resolution{Code: Normalize(stored), Source: SourceStored}
	}

	if code, ok := FromPreferences(signals.Preferred); ok {
		return Resolution{Code: code, Source: SourceBrowser}
	}

	if code, ok := FromPreferences(ParseAcceptLanguage(signals.AcceptLanguage)); ok {
		return Resolution{Code: code, Source: SourceBrowser}
	}

	return Resolution{Code: Normalize(signals.Default), Source: SourceDefault}
}

// ParseAcceptLanguage returns the base language of every entry of an
// Accept-Language header ordered by quality. Malformed headers yield nil.
func ParseAcceptLanguage(header string) []string {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		base, confidence := tag.Base()
		if confidence == language.No {
			continue
		}
		out = append(out, base.String())
	}
	return out
}

// Filter returns the items whose language normalizes to code. The accessor
// extracts the language from each item.
func Filter[T any](items []T, code Code, languageOf func(T) string) []T {
	want := Normalize(string(code))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Normalize(languageOf(item)) == want {
			out = append(out, item)
		}
	}
	return out
}
