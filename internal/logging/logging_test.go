package logging

import (
	"context"
	"testing"
)

type recordingLogger struct {
	noopLogger
	fields map[string]any
}

func (r *recordingLogger) WithFields(fields map[string]any) Logger {
	return &recordingLogger{fields: fields}
}

func (r *recordingLogger) WithContext(context.Context) Logger { return r }

type staticProvider struct {
	logger Logger
}

func (p staticProvider) GetLogger(string) Logger { return p.logger }

func TestWithFieldsCopiesMap(t *testing.T) {
	fields := map[string]any{"record": 1}
	child := WithFields(&recordingLogger{}, fields)

	fields["record"] = 2

	rec, ok := child.(*recordingLogger)
	if !ok {
		t.Fatalf("expected recordingLogger, got %T", child)
	}
	if rec.fields["record"] != 1 {
		t.Fatalf("expected copied field value 1, got %v", rec.fields["record"])
	}
}

func TestNamedFallsBackToNoOp(t *testing.T) {
	if _, ok := Named(nil, "pipeline").(noopLogger); !ok {
		t.Fatalf("expected noop logger for nil provider")
	}
	if _, ok := Named(staticProvider{}, "pipeline").(noopLogger); !ok {
		t.Fatalf("expected noop logger when provider returns nil")
	}
}

func TestNamedAttachesModuleField(t *testing.T) {
	logger := Named(staticProvider{logger: &recordingLogger{}}, "ecimark.pipeline")
	rec, ok := logger.(*recordingLogger)
	if !ok {
		t.Fatalf("expected recordingLogger, got %T", logger)
	}
	if rec.fields["module"] != "ecimark.pipeline" {
		t.Fatalf("expected module field, got %v", rec.fields)
	}
}
