package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-ecimark/pkg/source"
)

func TestTargetPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		source, fileType, want string
	}{
		{filepath.Join("data", "items.csv"), ".csv", filepath.Join("data", "items-FILTERED.csv")},
		{filepath.Join("data", "items.txt"), "", filepath.Join("data", "items-FILTERED.txt")},
		{filepath.Join("data", "items.dat"), ".tsv", filepath.Join("data", "items.dat-FILTERED.tsv")},
		{"archive.tar.csv", ".csv", "archive.tar-FILTERED.csv"},
	}
	for _, tc := range cases {
		if got := TargetPath(tc.source, tc.fileType); got != tc.want {
			t.Fatalf("TargetPath(%q, %q) = %q, want %q", tc.source, tc.fileType, got, tc.want)
		}
	}
}

func TestEscapeRecord(t *testing.T) {
	t.Parallel()

	got := EscapeRecord("<ECI>acme \"Pro\"\nline two")
	want := `<ECI>acme \"Pro\"\nline two`
	if got != want {
		t.Fatalf("EscapeRecord = %q, want %q", got, want)
	}
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "items-FILTERED.csv")
	n, err := New().Write(path, source.KindTable, []string{"<ECI>a\nb", "<ECI>say \"hi\""})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "descriptions\n<ECI>a\\nb\n<ECI>say \\\"hi\\\"\n"
	if string(data) != want {
		t.Fatalf("output = %q, want %q", data, want)
	}
	if n != int64(len(want)) {
		t.Fatalf("expected %d bytes written, got %d", len(want), n)
	}
}

func TestWriteTextVerbatim(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "items-FILTERED.txt")
	if _, err := New().Write(path, source.KindText, []string{"<ECI>acme\n\"Saw\""}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "<ECI>acme\n\"Saw\"" {
		t.Fatalf("output = %q", data)
	}
}

func TestWriteMissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	if _, err := New().WriteTable(path, nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
