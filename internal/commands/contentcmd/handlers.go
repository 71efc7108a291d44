package contentcmd

import (
	"context"
	"errors"

	"github.com/folio-press/folio/internal/commands"
	"github.com/folio-press/folio/internal/content"
	"github.com/folio-press/folio/internal/language"
	"github.com/folio-press/folio/internal/logging"
	"github.com/folio-press/folio/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const discoverOperation = "content.discover"

// ErrSinkRequired is returned when a handler is built without a result sink.
var ErrSinkRequired = errors.New("content command: result sink is required")

var _ command.Commander[DiscoverCommand] = (*DiscoverHandler)(nil)

// Discoverer is satisfied by *content.Discoverer.
type Discoverer interface {
	Discover(ctx context.Context, root string, opts content.Options) ([]content.Record, error)
}

// Catalog is the outcome of a discover command.
type Catalog struct {
	Language   string           `json:"language,omitempty"`
	Discovered int              `json:"discovered"`
	Records    []content.Record `json:"records"`
}

// Sink receives the catalog produced by a successful run.
type Sink func(ctx context.Context, catalog Catalog) error

// DiscoverHandler runs discovery through the shared command handler.
type DiscoverHandler struct {
	inner *commands.Handler[DiscoverCommand]
}

// NewDiscoverHandler binds a handler to discoverer, delivering catalogs to sink.
func NewDiscoverHandler(discoverer Discoverer, sink Sink, logger interfaces.Logger, opts ...commands.HandlerOption[DiscoverCommand]) *DiscoverHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg DiscoverCommand) error {
		if sink == nil {
			return ErrSinkRequired
		}
		records, err := discoverer.Discover(ctx, msg.Directory, content.Options{
			Recursive:      content.Bool(!msg.Flat),
			IncludeHidden:  msg.IncludeHidden,
			MaxDepth:       msg.MaxDepth,
			AllowRawMarkup: msg.AllowRawMarkup,
		})
		if err != nil {
			return err
		}

		catalog := Catalog{Discovered: len(records), Records: records}
		if msg.Language != "" {
			fallback := language.Default
			if msg.Fallback != "" {
				fallback = language.Normalize(msg.Fallback)
			}
			catalog.Records = content.ByLanguageOrFallback(records, language.Normalize(msg.Language), fallback)
			if len(catalog.Records) > 0 {
				catalog.Language = catalog.Records[0].Language.String()
			}
		}
		if msg.FeaturedOnly {
			catalog.Records = content.Featured(catalog.Records, msg.Limit)
		} else {
			catalog.Records = content.SortByStartDate(catalog.Records)
		}

		logging.WithFields(baseLogger, map[string]any{
			"discovered": catalog.Discovered,
			"returned":   len(catalog.Records),
			"language":   catalog.Language,
		}).Info("content.command.discover.completed")

		return sink(ctx, catalog)
	}

	handlerOpts := []commands.HandlerOption[DiscoverCommand]{
		commands.WithLogger[DiscoverCommand](baseLogger),
		commands.WithOperation[DiscoverCommand](discoverOperation),
		commands.WithMessageFields(func(msg DiscoverCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.Language != "" {
				fields["language"] = msg.Language
			}
			if msg.FeaturedOnly {
				fields["featured_only"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DiscoverCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DiscoverHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[DiscoverCommand].
func (h *DiscoverHandler) Execute(ctx context.Context, msg DiscoverCommand) error {
	return h.inner.Execute(ctx, msg)
}
