// Package sanitize provides the character sanitization hook applied to
// section bodies before they are formatted. The default NoOp sanitizer leaves
// text untouched; EntityMap rewrites characters to HTML entities from a YAML
// table and Strict removes markup through a bluemonday policy.
package sanitize

// Group selects which part of a character table applies to a body.
type Group string

const (
	// GroupBase applies to every section body.
	GroupBase Group = "base"
	// GroupTitle applies to product names, on top of GroupBase.
	GroupTitle Group = "title"
)

// Sanitizer rewrites text for the given group. Implementations must be safe
// for concurrent use.
type Sanitizer interface {
	Sanitize(text string, group Group) string
}

// Func adapts a function to the Sanitizer interface.
type Func func(text string, group Group) string

// Sanitize calls fn.
func (fn Func) Sanitize(text string, group Group) string {
	return fn(text, group)
}

type noop struct{}

func (noop) Sanitize(text string, _ Group) string { return text }

// NoOp returns the identity sanitizer.
func NoOp() Sanitizer { return noop{} }

// Chain runs sanitizers in order, skipping nil entries.
func Chain(sanitizers ...Sanitizer) Sanitizer {
	active := make([]Sanitizer, 0, len(sanitizers))
	for _, s := range sanitizers {
		if s != nil {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return NoOp()
	}
	if len(active) == 1 {
		return active[0]
	}
	return Func(func(text string, group Group) string {
		for _, s := range active {
			text = s.Sanitize(text, group)
		}
		return text
	})
}
