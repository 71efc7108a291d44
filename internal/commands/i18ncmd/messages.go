package i18ncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	checkTranslationsMessageType = "folio.i18n.check_translations"
	invalidateCacheMessageType   = "folio.i18n.invalidate_cache"
)

// CheckTranslationsCommand compares dictionary coverage across languages.
type CheckTranslationsCommand struct {
	// Languages restricts the check; empty means every supported language.
	Languages []string `json:"languages,omitempty"`
	// RequiredKeys must resolve in every checked language.
	RequiredKeys []string `json:"required_keys,omitempty"`
	// FailOnMissing turns an incomplete report into an error.
	FailOnMissing bool `json:"fail_on_missing,omitempty"`
}

// Type implements command.Message.
func (CheckTranslationsCommand) Type() string { return checkTranslationsMessageType }

// Validate rejects unsupported languages and blank keys.
func (cmd CheckTranslationsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Languages, validation.Each(validation.In("en", "es").Error("must be one of: en, es"))),
		validation.Field(&cmd.RequiredKeys, validation.Each(validation.By(func(value any) error {
			if key, _ := value.(string); strings.TrimSpace(key) == "" {
				return validation.NewError("folio.i18n.check_translations.key_blank", "required keys cannot be blank")
			}
			return nil
		}))),
	)
}

// InvalidateCacheCommand drops the cached dictionary so the next lookup reloads it.
type InvalidateCacheCommand struct {
	Reason string `json:"reason,omitempty"`
}

// Type implements command.Message.
func (InvalidateCacheCommand) Type() string { return invalidateCacheMessageType }

// Validate implements command.Message validation; every invalidate is valid.
func (InvalidateCacheCommand) Validate() error { return nil }
