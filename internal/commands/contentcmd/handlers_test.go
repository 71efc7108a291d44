package contentcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/folio-press/folio/internal/content"
	"github.com/folio-press/folio/internal/language"
	"github.com/folio-press/folio/internal/logging"
	"github.com/folio-press/folio/internal/validation"
	goerrors "github.com/goliatone/go-errors"
)

type discoverCall struct {
	root string
	opts content.Options
}

type stubDiscoverer struct {
	calls   []discoverCall
	records []content.Record
	err     error
}

func (s *stubDiscoverer) Discover(_ context.Context, root string, opts content.Options) ([]content.Record, error) {
	s.calls = append(s.calls, discoverCall{root: root, opts: opts})
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func record(slug, lang, date string, featured bool) content.Record {
	return content.Record{
		Slug:     slug,
		Language: language.Code(lang),
		Frontmatter: validation.Record{
			"title":     slug,
			"startDate": date,
			"featured":  featured,
			"language":  lang,
		},
	}
}

func fixtures() []content.Record {
	return []content.Record{
		record("old-en", "en", "2021-01-01", true),
		record("new-en", "en", "2024-01-01", false),
		record("mid-en", "en", "2023-01-01", true),
	}
}

func TestDiscoverHandlerSortsCatalog(t *testing.T) {
	stub := &stubDiscoverer{records: fixtures()}
	var got Catalog
	handler := NewDiscoverHandler(stub, func(_ context.Context, c Catalog) error {
		got = c
		return nil
	}, logging.NoOp())

	if err := handler.Execute(context.Background(), DiscoverCommand{Directory: "projects", Flat: true, MaxDepth: 2}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(stub.calls) != 1 || stub.calls[0].root != "projects" {
		t.Fatalf("unexpected calls %+v", stub.calls)
	}
	opts := stub.calls[0].opts
	if opts.Recursive == nil || *opts.Recursive || opts.MaxDepth != 2 {
		t.Fatalf("expected flat walk with depth 2, got %+v", opts)
	}
	if got.Discovered != 3 || len(got.Records) != 3 {
		t.Fatalf("unexpected catalog %+v", got)
	}
	want := []string{"new-en", "mid-en", "old-en"}
	for i, slug := range want {
		if got.Records[i].Slug != slug {
			t.Fatalf("position %d: expected %s, got %s", i, slug, got.Records[i].Slug)
		}
	}
}

func TestDiscoverHandlerFallsBackToDefaultLanguage(t *testing.T) {
	stub := &stubDiscoverer{records: fixtures()}
	var got Catalog
	handler := NewDiscoverHandler(stub, func(_ context.Context, c Catalog) error {
		got = c
		return nil
	}, nil)

	if err := handler.Execute(context.Background(), DiscoverCommand{Directory: "projects", Language: "es", FeaturedOnly: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Language != "en" {
		t.Fatalf("expected fallback to en, got %q", got.Language)
	}
	if len(got.Records) != 2 || got.Records[0].Slug != "mid-en" {
		t.Fatalf("expected featured records newest first, got %+v", got.Records)
	}
}

func TestDiscoverCommandValidation(t *testing.T) {
	cases := map[string]DiscoverCommand{
		"missing directory": {},
		"blank directory":   {Directory: "  "},
		"bad language":      {Directory: "p", Language: "fr"},
		"bad fallback":      {Directory: "p", Fallback: "de"},
		"negative limit":    {Directory: "p", Limit: -1},
		"negative depth":    {Directory: "p", MaxDepth: -1},
	}
	for name, cmd := range cases {
		t.Run(name, func(t *testing.T) {
			if err := cmd.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
	if err := (DiscoverCommand{Directory: "projects", Language: "es"}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
}

func TestDiscoverHandlerRejectsInvalidCommand(t *testing.T) {
	stub := &stubDiscoverer{}
	handler := NewDiscoverHandler(stub, func(context.Context, Catalog) error { return nil }, nil)

	err := handler.Execute(context.Background(), DiscoverCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(stub.calls) != 0 {
		t.Fatal("expected discoverer not to run")
	}
}

func TestDiscoverHandlerPropagatesDiscoveryErrors(t *testing.T) {
	cause := &content.FileProcessingError{Path: "projects", Cause: errors.New("missing")}
	stub := &stubDiscoverer{err: cause}
	handler := NewDiscoverHandler(stub, func(context.Context, Catalog) error { return nil }, nil)

	err := handler.Execute(context.Background(), DiscoverCommand{Directory: "projects"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, content.ErrFileProcessing) {
		t.Fatalf("expected file processing error to unwrap, got %v", err)
	}
}

func TestDiscoverHandlerRequiresSink(t *testing.T) {
	handler := NewDiscoverHandler(&stubDiscoverer{}, nil, nil)
	if err := handler.Execute(context.Background(), DiscoverCommand{Directory: "projects"}); !errors.Is(err, ErrSinkRequired) {
		t.Fatalf("expected ErrSinkRequired, got %v", err)
	}
}
