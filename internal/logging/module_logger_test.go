package logging

import (
	"context"
	"testing"

	"github.com/folio-press/folio/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "folio.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, i18nModule)

	if len(provider.requested) != 1 || provider.requested[0] != i18nModule {
		t.Fatalf("expected module %s, got %v", i18nModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != i18nModule {
		t.Fatalf("expected module field %s, got %v", i18nModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ModuleLogger(provider, "")
	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestContentLoggerRequestsContentModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ContentLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != contentModule {
		t.Fatalf("expected content module request, got %v", provider.requested)
	}
}

func TestWithContentContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithContentContext(rec, " projects/a.md ", "", "a")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[fieldContentPath] != "projects/a.md" {
		t.Fatalf("expected trimmed path, got %v", got[fieldContentPath])
	}
	if _, ok := got[fieldContentLanguage]; ok {
		t.Fatalf("expected empty language to be skipped, got %v", got)
	}
	if got[fieldContentSlug] != "a" {
		t.Fatalf("expected slug field, got %v", got)
	}
}

func TestWithFieldsClonesInput(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"k": "v"}
	_ = WithFields(rec, fields)
	fields["k"] = "changed"
	if rec.fields[0]["k"] != "v" {
		t.Fatalf("expected fields to be copied, got %v", rec.fields[0]["k"])
	}
}

func TestWithFieldsDropsNilValues(t *testing.T) {
	rec := &recordingLogger{}
	out := WithFields(rec, map[string]any{"slug": nil})
	if len(rec.fields) != 0 {
		t.Fatalf("expected no WithFields call for nil-only fields, got %v", rec.fields)
	}
	if out != interfaces.Logger(rec) {
		t.Fatal("expected original logger back")
	}
}
