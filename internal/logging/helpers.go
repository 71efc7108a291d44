package logging

import (
	"strings"

	"github.com/folio-press/folio/pkg/interfaces"
)

const (
	fieldContentPath     = "content_path"
	fieldContentLanguage = "language"
	fieldContentSlug     = "slug"
)

// WithFields returns a child logger carrying fields when logger implements
// interfaces.FieldsLogger. Nil values are dropped and the map is copied, so
// callers may reuse it.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return nil
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}

	kept := make(map[string]any, len(fields))
	for key, value := range fields {
		if value == nil {
			continue
		}
		kept[key] = value
	}
	if len(kept) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(kept)
}

// OrNoOp returns logger, or the no-op logger when logger is nil.
func OrNoOp(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// WithContentContext tags logger with the path, language and slug of the
// content file being processed. Blank values are skipped.
func WithContentContext(logger interfaces.Logger, path, language, slug string) interfaces.Logger {
	return WithFields(logger, map[string]any{
		fieldContentPath:     blankToNil(path),
		fieldContentLanguage: blankToNil(language),
		fieldContentSlug:     blankToNil(slug),
	})
}

func blankToNil(value string) any {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return nil
}
