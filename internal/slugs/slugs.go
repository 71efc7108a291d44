// Package slugs produces URL-safe identifiers for content records and heading
// anchors on top of go-slug.
package slugs

import (
	"path"
	"strconv"
	"strings"

	"github.com/goliatone/go-slug"
)

// Normalizer exposes the go-slug normalizer contract.
type Normalizer = slug.Normalizer

// Default returns the go-slug default normalizer.
func Default() Normalizer {
	return slug.Default()
}

// Make returns a lowercase, hyphen-separated slug for value, or "" when
// nothing slug-worthy remains.
func Make(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		normalized = value
	}
	return tidy(normalized)
}

// FromFilename derives a slug from the base name of a file, without extension.
func FromFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return Make(base)
}

// Valid reports whether value is already a tidy slug.
func Valid(value string) bool {
	return value != "" && tidy(value) == value
}

// tidy lowercases value, folds every run of characters outside [a-z0-9] into
// a single hyphen and trims hyphens from both ends.
func tidy(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	pendingHyphen := false
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// Unique hands out slugs that have not been seen before by appending -1, -2...
type Unique struct {
	seen map[string]int
}

// NewUnique returns an empty Unique tracker.
func NewUnique() *Unique {
	return &Unique{seen: map[string]int{}}
}

// Next returns base, or base with a numeric suffix when base was already issued.
func (u *Unique) Next(base string) string {
	if u.seen == nil {
		u.seen = map[string]int{}
	}
	if _, taken := u.seen[base]; !taken {
		u.seen[base] = 0
		return base
	}
	for {
		u.seen[base]++
		candidate := base + "-" + strconv.Itoa(u.seen[base])
		if _, taken := u.seen[candidate]; !taken {
			u.seen[candidate] = 0
			return candidate
		}
	}
}
