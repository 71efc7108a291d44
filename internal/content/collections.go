package content

import (
	"slices"
	"strings"

	"github.com/folio-press/folio/internal/language"
)

// DefaultFeaturedLimit caps Featured when no positive limit is given.
const DefaultFeaturedLimit = 6

// FilterByLanguage returns the records whose language matches code.
func FilterByLanguage(records []Record, code language.Code) []Record {
	return language.Filter(records, code, func(r Record) string {
		return r.Language.String()
	})
}

// ByLanguageOrFallback filters by lang, or by fallback when lang has no records.
func ByLanguageOrFallback(records []Record, lang, fallback language.Code) []Record {
	if matched := FilterByLanguage(records, lang); len(matched) > 0 {
		return matched
	}
	return FilterByLanguage(records, fallback)
}

// SortByStartDate returns a copy of records ordered newest first. Records
// without a usable startDate sort last; ties break on slug.
func SortByStartDate(records []Record) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, compareByDate)
	return out
}

// Featured returns up to limit featured records. Records carrying a numeric
// order come first in ascending order, followed by records without one. Equal
// or missing orders fall back to newest startDate, then slug.
func Featured(records []Record, limit int) []Record {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	out := make([]Record, 0, len(records))
	for _, record := range records {
		if record.Featured() {
			out = append(out, record)
		}
	}

	slices.SortStableFunc(out, func(a, b Record) int {
		orderA, hasA := a.Order()
		orderB, hasB := b.Order()
		switch {
		case hasA && !hasB:
			return -1
		case !hasA && hasB:
			return 1
		case hasA && hasB && orderA != orderB:
			if orderA < orderB {
				return -1
			}
			return 1
		}
		return compareByDate(a, b)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func compareByDate(a, b Record) int {
	dateA, okA := a.StartDate()
	dateB, okB := b.StartDate()
	switch {
	case okA && !okB:
		return -1
	case !okA && okB:
		return 1
	case okA && okB && !dateA.Equal(dateB):
		if dateA.After(dateB) {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Slug, b.Slug)
}
