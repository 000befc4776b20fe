package hints

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/goliatone/go-ecimark/pkg/markup"
	"github.com/google/go-cmp/cmp"
)

func parseFragment(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse rendered html: %v", err)
	}
	return doc
}

func texts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func TestListStrategy(t *testing.T) {
	t.Parallel()

	out, err := Default().RenderHint(HintList, "Power:\n 18V\n\n  Brushless motor \nLED light")
	if err != nil {
		t.Fatalf("RenderHint returned error: %v", err)
	}
	if !strings.HasPrefix(out, "<ul>\n") || !strings.HasSuffix(out, "</ul>\n") {
		t.Fatalf("unexpected list wrapper: %q", out)
	}

	doc := parseFragment(t, out)
	want := []string{"Power: 18V", "Brushless motor", "LED light"}
	if diff := cmp.Diff(want, texts(doc.Find("ul > li"))); diff != "" {
		t.Fatalf("list items mismatch (-want +got):\n%s", diff)
	}
}

func TestTableStrategy(t *testing.T) {
	t.Parallel()

	out, err := Default().RenderHint(HintTable, "Size\tWeight\nSmall  2 lb\nLarge\t5 lb\t")
	if err != nil {
		t.Fatalf("RenderHint returned error: %v", err)
	}

	doc := parseFragment(t, out)
	if diff := cmp.Diff([]string{"Size", "Weight"}, texts(doc.Find("tr").First().Find("th"))); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Small", "2 lb", "Large", "5 lb"}, texts(doc.Find("td"))); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}
	if got := doc.Find("tr").Length(); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if !strings.HasSuffix(out, "</table>\n\n") {
		t.Fatalf("expected table to end with a blank line, got %q", out)
	}
}

func TestSegmentStrategy(t *testing.T) {
	t.Parallel()

	out, err := Default().RenderHint(HintSegment, "Motor\nVoltage: 18V")
	if err != nil {
		t.Fatalf("RenderHint returned error: %v", err)
	}
	want := "<br><strong>Motor</strong><br>\nVoltage: 18V<br>\n"
	if out != want {
		t.Fatalf("segment = %q, want %q", out, want)
	}
}

func TestParagraphStrategy(t *testing.T) {
	t.Parallel()

	out, err := Default().RenderHint(HintParagraph, "\n First line\nsecond & third \n")
	if err != nil {
		t.Fatalf("RenderHint returned error: %v", err)
	}
	if want := "First line<br>second & third"; out != want {
		t.Fatalf("paragraph = %q, want %q", out, want)
	}
}

func TestUnknownHintFallsBackToList(t *testing.T) {
	t.Parallel()

	registry := Default()
	out, err := registry.RenderHint("bullets", "one\ntwo")
	if err != nil {
		t.Fatalf("RenderHint returned error: %v", err)
	}
	if got := parseFragment(t, out).Find("li").Length(); got != 2 {
		t.Fatalf("expected fallback list with 2 items, got %q", out)
	}

	registry.SetFallback("")
	out, err = registry.RenderHint("bullets", "one\ntwo")
	if err != nil {
		t.Fatalf("RenderHint returned error: %v", err)
	}
	if out != "one\ntwo" {
		t.Fatalf("expected pass-through without fallback, got %q", out)
	}
}

func TestFormatterRendersUnhintedSectionsAsList(t *testing.T) {
	t.Parallel()

	f := markup.New(markup.WithHintRenderer(Default()))
	out, err := f.Format("{product_name}acme saw{features}one\ntwo")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if !strings.HasPrefix(out, "<ECI>acme Saw<ul>") {
		t.Fatalf("expected title followed by a list, got %q", out)
	}
	doc := parseFragment(t, strings.TrimPrefix(out, "<ECI>"))
	if diff := cmp.Diff([]string{"one", "two"}, texts(doc.Find("li"))); diff != "" {
		t.Fatalf("list items mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryRegistration(t *testing.T) {
	t.Parallel()

	registry := Default()
	if diff := cmp.Diff([]string{"graf", "list", "seg", "table"}, registry.List()); diff != "" {
		t.Fatalf("registered hints mismatch (-want +got):\n%s", diff)
	}
	if err := registry.Register(NewList(NewEngine(nil))); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected nil strategy error")
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("expected missing strategy error")
	}
}
