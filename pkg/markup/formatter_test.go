package markup

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-ecimark/pkg/sanitize"
	"github.com/google/go-cmp/cmp"
)

func TestFormatTitleCasesOnlyProductName(t *testing.T) {
	t.Parallel()

	got, err := Format("{product_name}acme blaster{description}a great blaster")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if want := "<ECI>acme Blastera great blaster"; got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	t.Parallel()

	input := "preamble {product_name} acme  super-duper WIDGET {features#list}\nfast\nquiet\n{specs#table}a\tb"
	first, err := Format(input)
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	second, err := Format(input)
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical output, got %q and %q", first, second)
	}
	if want := "<ECI>acme Super-Duper Widgetfast\nquieta\tb"; first != want {
		t.Fatalf("Format() = %q, want %q", first, want)
	}
}

func TestFormatRepeatedSectionLastWins(t *testing.T) {
	t.Parallel()

	got, err := Format("{x}first{x}second")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if got != "<ECI>second" {
		t.Fatalf("Format() = %q, want %q", got, "<ECI>second")
	}
}

func TestFormatWithoutSectionsReturnsOpeningTag(t *testing.T) {
	t.Parallel()

	got, err := Format("no tags at all")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if got != OpeningTag {
		t.Fatalf("Format() = %q, want %q", got, OpeningTag)
	}
}

func TestFormatMalformedRecordHasNoPartialOutput(t *testing.T) {
	t.Parallel()

	got, err := Format("{product_name}acme{description")
	if !errors.Is(err, ErrMalformedSection) {
		t.Fatalf("expected ErrMalformedSection, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty output on error, got %q", got)
	}
}

func TestFormatClosingTagOption(t *testing.T) {
	t.Parallel()

	f := New(WithClosingTag(ClosingTag))
	got, err := f.Format("{product_name}acme rocket")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if got != "<ECI>acme Rocket</ECI>" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestFormatCustomStopWords(t *testing.T) {
	t.Parallel()

	f := New(WithStopWords([]string{"for"}))
	got, err := f.Format("{product_name}acme kit for the road")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if got != "<ECI>acme Kit for The Road" {
		t.Fatalf("Format() = %q", got)
	}
}

type upperHints struct {
	calls []string
}

func (u *upperHints) RenderHint(hint, body string) (string, error) {
	u.calls = append(u.calls, hint)
	if hint == "boom" {
		return "", errors.New("boom")
	}
	return "[" + hint + ":" + strings.ToUpper(body) + "]", nil
}

func TestFilterSectionHintRenderer(t *testing.T) {
	t.Parallel()

	hints := &upperHints{}
	f := New(WithHintRenderer(hints))

	got, err := f.Format("{product_name#list}acme drill{description}plain{features#list}fast")
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if want := "<ECI>acme Drill[:PLAIN][list:FAST]"; got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"", "list"}, hints.calls); diff != "" {
		t.Fatalf("hint calls mismatch (-want +got):\n%s", diff)
	}

	if _, err := f.FilterSection("specs#boom", "x"); err == nil {
		t.Fatal("expected renderer error to propagate")
	}
}

type tagSanitizer struct{}

func (tagSanitizer) Sanitize(text string, group sanitize.Group) string {
	return string(group) + "(" + text + ")"
}

func TestFilterSectionSanitizerGroups(t *testing.T) {
	t.Parallel()

	f := New(WithSanitizer(tagSanitizer{}))

	name, err := f.FilterSection("product_name", "acme saw")
	if err != nil {
		t.Fatalf("FilterSection returned error: %v", err)
	}
	if name != "title(acme Saw)" {
		t.Fatalf("unexpected product name %q", name)
	}

	body, err := f.FilterSection("description", "sharp")
	if err != nil {
		t.Fatalf("FilterSection returned error: %v", err)
	}
	if body != "base(sharp)" {
		t.Fatalf("unexpected body %q", body)
	}
}
