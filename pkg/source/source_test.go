package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestOpenTextFileIsSingleRecord(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "items.txt", []byte("{product_name}acme saw\r\n{description}sharp\r\n"))
	records, err := Open(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if records.Kind != KindText {
		t.Fatalf("expected text kind, got %q", records.Kind)
	}
	want := []string{"{product_name}acme saw\n{description}sharp\n"}
	if diff := cmp.Diff(want, records.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenTableUsesDescColumn(t *testing.T) {
	t.Parallel()

	csvData := "SKU,Desc,Price\n1,\"{product_name}acme saw\n{description}sharp, \"\"fast\"\"\",10\n\n2,{product_name}acme drill,20\n3\n"
	path := writeFile(t, "items.csv", []byte(csvData))

	records, err := Open(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if records.Kind != KindTable || records.Column != "desc" {
		t.Fatalf("unexpected records meta: kind=%q column=%q", records.Kind, records.Column)
	}
	want := []string{
		"{product_name}acme saw\n{description}sharp, \"fast\"",
		"{product_name}acme drill",
		"",
	}
	if diff := cmp.Diff(want, records.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sku", "desc", "price"}, records.Headers); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenTableWithoutDescColumn(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "items.csv", []byte("SKU,Long Description\n1,{product_name}acme saw\n"))

	_, err := Open(context.Background(), path, Options{})
	if !errors.Is(err, ErrUnresolvedColumn) {
		t.Fatalf("expected ErrUnresolvedColumn, got %v", err)
	}
	var unresolved *UnresolvedColumnError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected *UnresolvedColumnError, got %T", err)
	}
	if diff := cmp.Diff([]string{"sku", "long_description"}, unresolved.Candidates); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}

	records, err := Open(context.Background(), path, Options{Column: "Long Description"})
	if err != nil {
		t.Fatalf("Open with column returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"{product_name}acme saw"}, records.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenTSVAndTypeOverride(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "items.dat", []byte("desc\tsku\n{product_name}acme, inc saw\t1\n"))
	records, err := Open(context.Background(), path, Options{Type: "tsv"})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"{product_name}acme, inc saw"}, records.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if records.Type != ".tsv" {
		t.Fatalf("expected normalised type .tsv, got %q", records.Type)
	}
}

func TestOpenCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Open(ctx, "unused.csv", Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveColumn(t *testing.T) {
	t.Parallel()

	headers := []string{"sku", "desc", "notes"}
	if got, err := ResolveColumn(headers, ""); err != nil || got != "desc" {
		t.Fatalf("ResolveColumn default = %q, %v", got, err)
	}
	if got, err := ResolveColumn(headers, "NOTES"); err != nil || got != "notes" {
		t.Fatalf("ResolveColumn requested = %q, %v", got, err)
	}
	_, err := ResolveColumn(headers, "missing")
	var unresolved *UnresolvedColumnError
	if !errors.As(err, &unresolved) || unresolved.Requested != "missing" {
		t.Fatalf("expected unresolved error for missing column, got %v", err)
	}
	if !strings.Contains(err.Error(), "sku, desc, notes") {
		t.Fatalf("expected candidates in message, got %q", err.Error())
	}
}

func TestToUTF8Windows1252(t *testing.T) {
	t.Parallel()

	raw := []byte("caf\xe9 cr\xe8me \x93best\x94\r\n")
	out, err := ToUTF8(raw, "windows-1252")
	if err != nil {
		t.Fatalf("ToUTF8 returned error: %v", err)
	}
	if got := string(out); got != "café crème “best”\n" {
		t.Fatalf("ToUTF8 = %q", got)
	}
}

func TestToUTF8UnknownCharset(t *testing.T) {
	t.Parallel()

	_, err := ToUTF8([]byte("x"), "klingon-1")
	if !errors.Is(err, ErrEncodingDetection) {
		t.Fatalf("expected ErrEncodingDetection, got %v", err)
	}
}

func TestDecodeUTF8ShortCircuit(t *testing.T) {
	t.Parallel()

	text, charset, err := Decode([]byte("\xEF\xBB\xBFdesc\nacme café\n"))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if charset != CharsetUTF8 {
		t.Fatalf("expected UTF-8, got %q", charset)
	}
	if text != "desc\nacme café\n" {
		t.Fatalf("Decode = %q", text)
	}
}

func TestDecodeLatin1Input(t *testing.T) {
	t.Parallel()

	raw := []byte("The caf\xe9 sells a fine cr\xe8me br\xfbl\xe9e every morning, and the na\xefve visitors love it.\n")
	text, charset, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if charset == CharsetUTF8 {
		t.Fatalf("expected a non UTF-8 charset for latin-1 input")
	}
	if !utf8.ValidString(text) || !strings.Contains(text, "The caf") {
		t.Fatalf("expected decoded UTF-8 text, got %q", text)
	}
}

func TestKindForType(t *testing.T) {
	t.Parallel()

	if KindForType(".TXT") != KindText || KindForType("txt") != KindText {
		t.Fatal("expected txt to be text kind")
	}
	if KindForType(".csv") != KindTable || KindForType("") != KindTable {
		t.Fatal("expected csv and empty type to be table kind")
	}
}
