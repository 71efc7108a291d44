package content

import (
	"time"

	"github.com/folio-press/folio/internal/language"
	"github.com/folio-press/folio/internal/validation"
)

// Record is one discovered content file.
type Record struct {
	Slug           string            `json:"slug"`
	FilePath       string            `json:"filePath"`
	Frontmatter    validation.Record `json:"frontmatter"`
	RawBody        string            `json:"rawBody"`
	RenderedHTML   string            `json:"renderedHtml"`
	Language       language.Code     `json:"language"`
	HeroImageValid bool              `json:"heroImageValid"`
	HeroAlt        string            `json:"heroAlt"`
	Checksum       string            `json:"checksum"`
}

// Title returns the frontmatter title.
func (r Record) Title() string {
	return r.Frontmatter.String("title")
}

// StartDate returns the parsed startDate, if any.
func (r Record) StartDate() (time.Time, bool) {
	return r.Frontmatter.Date("startDate")
}

// Featured reports the frontmatter featured flag.
func (r Record) Featured() bool {
	return r.Frontmatter.Bool("featured")
}

// Order returns the optional numeric order used by featured listings.
func (r Record) Order() (int, bool) {
	return r.Frontmatter.Int("order")
}

// heroAlt picks explicit alt text, falling back to the title.
func heroAlt(fm validation.Record) string {
	for _, key := range []string{"heroAlt", "alt"} {
		if alt := fm.String(key); alt != "" {
			return alt
		}
	}
	return fm.String("title")
}
