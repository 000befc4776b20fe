// Package preview renders formatted descriptions as Markdown so an operator
// can read a batch in a terminal without a browser.
package preview

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// wrapperElement is the lowercase element name the HTML parser gives the
// opening tag.
const wrapperElement = "eci"

// Markdown converts one formatted description into Markdown. The <ECI>
// wrapper is unwrapped; the sections inside it are converted as HTML.
func Markdown(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("preview: parse markup: %w", err)
	}

	content := doc.Find(wrapperElement).First()
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}

	inner, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("preview: serialise markup: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(inner)
	if err != nil {
		return "", fmt.Errorf("preview: convert to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// Document renders every record under a numbered heading, separated by
// horizontal rules. Records that fail to convert are reported inline.
func Document(title string, records []string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	for i, record := range records {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&b, "## Record %d\n\n", i+1)
		md, err := Markdown(record)
		if err != nil {
			fmt.Fprintf(&b, "> %v\n", err)
			continue
		}
		if md == "" {
			b.WriteString("_empty_\n")
			continue
		}
		b.WriteString(md)
		b.WriteString("\n")
	}
	return b.String()
}
