package gologger

import "testing"

func TestNewProviderCreatesLogger(t *testing.T) {
	p, err := NewProvider(Config{
		Level:  "debug",
		Format: "console",
	})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	logger := p.GetLogger("ecimark.test")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
	logger.Debug("adapter.initialised", "records", 3)
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNormalizeLevel(t *testing.T) {
	if got := normalizeLevel("WARNING"); got == "" {
		t.Fatalf("expected warning to map to a go-logger level")
	}
	if got := normalizeLevel("verbose"); got != "" {
		t.Fatalf("expected unknown level to map to empty, got %q", got)
	}
}
