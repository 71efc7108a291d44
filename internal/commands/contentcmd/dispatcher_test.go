package contentcmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/folio-press/folio/internal/commands"
	"github.com/folio-press/folio/internal/content"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// flakyDiscoverer fails the first failures calls, then returns records.
type flakyDiscoverer struct {
	failures int
	calls    int
	records  []content.Record
}

func (f *flakyDiscoverer) Discover(context.Context, string, content.Options) ([]content.Record, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("content root busy")
	}
	return f.records, nil
}

func TestDispatchedDiscoverRetriesTransientFailures(t *testing.T) {
	disc := &flakyDiscoverer{failures: 1, records: fixtures()}
	var delivered []Catalog
	handler := NewDiscoverHandler(disc, func(_ context.Context, c Catalog) error {
		delivered = append(delivered, c)
		return nil
	}, nil, commands.WithTimeout[DiscoverCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), DiscoverCommand{Directory: "projects"}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if disc.calls != 2 {
		t.Fatalf("expected 2 discovery attempts, got %d", disc.calls)
	}
	if len(delivered) != 1 || delivered[0].Discovered != 3 {
		t.Fatalf("expected a single catalog of 3 records, got %+v", delivered)
	}
}

func TestDispatchedDiscoverSurfacesExhaustedRetries(t *testing.T) {
	disc := &flakyDiscoverer{failures: 10}
	handler := NewDiscoverHandler(disc, func(context.Context, Catalog) error {
		t.Fatal("sink must not run when discovery fails")
		return nil
	}, nil, commands.WithTimeout[DiscoverCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), DiscoverCommand{Directory: "projects"}); err == nil {
		t.Fatal("expected dispatch to fail once retries are exhausted")
	}
	if disc.calls != 3 {
		t.Fatalf("expected 3 attempts (initial + 2 retries), got %d", disc.calls)
	}
}
