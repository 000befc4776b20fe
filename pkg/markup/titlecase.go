package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var defaultStopWords = []string{"a", "an", "the", "with", "and", "but", "or", "on", "in", "at", "to"}

// DefaultStopWords returns a copy of the English words that stay lowercase
// when they are not the first word of a title.
func DefaultStopWords() []string {
	return append([]string(nil), defaultStopWords...)
}

// TitleCaser applies product-name title casing. It is immutable after
// construction and safe for concurrent use.
type TitleCaser struct {
	stopWords map[string]struct{}
}

// NewTitleCaser builds a TitleCaser for the given stop words. Words are
// compared case-insensitively.
func NewTitleCaser(stopWords []string) *TitleCaser {
	set := make(map[string]struct{}, len(stopWords))
	for _, word := range stopWords {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	return &TitleCaser{stopWords: set}
}

var defaultTitleCaser = NewTitleCaser(defaultStopWords)

// TitleCase title-cases text with the default stop words.
func TitleCase(text string) string {
	return defaultTitleCaser.Apply(text)
}

// Apply title-cases text. The first word is the vendor name and is kept as
// written; whitespace runs collapse to single spaces.
func (c *TitleCaser) Apply(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	for i := 1; i < len(words); i++ {
		words[i] = c.word(words[i])
	}
	return strings.Join(words, " ")
}

func (c *TitleCaser) word(word string) string {
	switch {
	case strings.HasPrefix(word, "*"):
		return strings.TrimPrefix(word, "*")
	case startsNumeric(word):
		return word
	case strings.Contains(word, "-") && utf8.RuneCountInString(word) > 1:
		parts := strings.Split(word, "-")
		for i, part := range parts {
			parts[i] = capitalize(part)
		}
		return strings.Join(parts, "-")
	case c.isStopWord(word):
		return strings.ToLower(word)
	default:
		return capitalize(word)
	}
}

func (c *TitleCaser) isStopWord(word string) bool {
	_, ok := c.stopWords[strings.ToLower(word)]
	return ok
}

func startsNumeric(word string) bool {
	if word == "" {
		return false
	}
	first := word[0]
	return first == '.' || (first >= '0' && first <= '9')
}

// capitalize upper-cases the first rune and lower-cases the rest. Words that
// are not valid UTF-8 are returned unchanged.
func capitalize(word string) string {
	if !utf8.ValidString(word) {
		return word
	}
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return word
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(word[size:])
}
