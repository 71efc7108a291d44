package i18ncmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/folio-press/folio/internal/commands"
	"github.com/folio-press/folio/internal/i18n"
	"github.com/folio-press/folio/internal/logging"
	"github.com/folio-press/folio/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	checkOperation      = "i18n.check_translations"
	invalidateOperation = "i18n.invalidate_cache"
)

// ErrTranslationsIncomplete is returned when FailOnMissing is set and the
// report lists missing keys.
var ErrTranslationsIncomplete = errors.New("i18n command: translations incomplete")

var (
	_ command.Commander[CheckTranslationsCommand] = (*CheckTranslationsHandler)(nil)
	_ command.Commander[InvalidateCacheCommand]   = (*InvalidateCacheHandler)(nil)
)

// DictionaryStore is satisfied by *i18n.Cache.
type DictionaryStore interface {
	Get(ctx context.Context) (i18n.Dictionary, error)
	Invalidate()
}

// ReportSink receives coverage reports.
type ReportSink func(ctx context.Context, report i18n.Report) error

// CheckTranslationsHandler loads the dictionary and reports coverage.
type CheckTranslationsHandler struct {
	inner *commands.Handler[CheckTranslationsCommand]
}

// NewCheckTranslationsHandler binds a coverage check to store. sink may be nil.
func NewCheckTranslationsHandler(store DictionaryStore, sink ReportSink, logger interfaces.Logger, opts ...commands.HandlerOption[CheckTranslationsCommand]) *CheckTranslationsHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg CheckTranslationsCommand) error {
		dict, err := store.Get(ctx)
		if err != nil {
			return err
		}
		report := i18n.Coverage(dict, msg.Languages, msg.RequiredKeys)

		logging.WithFields(baseLogger, map[string]any{
			"required_missing": countEntries(report.Required),
			"untranslated":     countEntries(report.Untranslated),
		}).Info("i18n.command.check_translations.completed")

		if sink != nil {
			if err := sink(ctx, report); err != nil {
				return err
			}
		}
		if msg.FailOnMissing && !report.OK() {
			return fmt.Errorf("%w:\n%s", ErrTranslationsIncomplete, report)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckTranslationsCommand]{
		commands.WithLogger[CheckTranslationsCommand](baseLogger),
		commands.WithOperation[CheckTranslationsCommand](checkOperation),
		commands.WithMessageFields(func(msg CheckTranslationsCommand) map[string]any {
			return map[string]any{
				"languages":     msg.Languages,
				"required_keys": len(msg.RequiredKeys),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CheckTranslationsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckTranslationsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CheckTranslationsCommand].
func (h *CheckTranslationsHandler) Execute(ctx context.Context, msg CheckTranslationsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// InvalidateCacheHandler drops the cached dictionary.
type InvalidateCacheHandler struct {
	inner *commands.Handler[InvalidateCacheCommand]
}

// NewInvalidateCacheHandler binds invalidation to store.
func NewInvalidateCacheHandler(store DictionaryStore, logger interfaces.Logger, opts ...commands.HandlerOption[InvalidateCacheCommand]) *InvalidateCacheHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(_ context.Context, msg InvalidateCacheCommand) error {
		store.Invalidate()
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateCacheCommand]{
		commands.WithLogger[InvalidateCacheCommand](baseLogger),
		commands.WithOperation[InvalidateCacheCommand](invalidateOperation),
		commands.WithMessageFields(func(msg InvalidateCacheCommand) map[string]any {
			if msg.Reason == "" {
				return nil
			}
			return map[string]any{"reason": msg.Reason}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InvalidateCacheHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[InvalidateCacheCommand].
func (h *InvalidateCacheHandler) Execute(ctx context.Context, msg InvalidateCacheCommand) error {
	return h.inner.Execute(ctx, msg)
}

func countEntries(entries map[string][]string) int {
	total := 0
	for _, keys := range entries {
		total += len(keys)
	}
	return total
}
