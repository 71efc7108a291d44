package i18n

import (
	"errors"
	"fmt"
)

var (
	// ErrTranslationNotFound matches every TranslationNotFoundError.
	ErrTranslationNotFound = errors.New("i18n: translation not found")
	// ErrDictionaryLoad matches every DictionaryError.
	ErrDictionaryLoad = errors.New("i18n: dictionary load failed")
)

// TranslationNotFoundError is returned in strict mode when key has no
// template for language.
type TranslationNotFoundError struct {
	Key      string
	Language string
}

func (e *TranslationNotFoundError) Error() string {
	return fmt.Sprintf("i18n: translation not found: %s (%s)", e.Key, e.Language)
}

func (e *TranslationNotFoundError) Is(target error) bool {
	return target == ErrTranslationNotFound
}

// DictionaryError reports a dictionary that could not be read, decoded or
// validated. Source names the file or source that failed.
type DictionaryError struct {
	Source string
	Cause  error
}

func (e *DictionaryError) Error() string {
	return fmt.Sprintf("i18n: load dictionary %s: %v", e.Source, e.Cause)
}

func (e *DictionaryError) Is(target error) bool {
	return target == ErrDictionaryLoad
}

func (e *DictionaryError) Unwrap() error {
	return e.Cause
}
