// Package hints renders section bodies for the optional "#hint" suffix on
// section tags: list, table, seg (segments) and graf (paragraph).
package hints

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultHint names the strategy used for hints nothing is registered for.
const DefaultHint = "list"

// Strategy renders a section body for one format hint.
type Strategy interface {
	Name() string
	Render(body string) (string, error)
}

// Registry stores strategies by hint name. It satisfies
// markup.HintRenderer.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	fallback   string
}

// NewRegistry creates an empty registry that falls back to DefaultHint.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
		fallback:   DefaultHint,
	}
}

// Register adds a strategy by its Name(). Duplicate names return an error.
func (r *Registry) Register(strategy Strategy) error {
	if strategy == nil {
		return fmt.Errorf("hints: strategy is required")
	}
	name := strategy.Name()
	if name == "" {
		return fmt.Errorf("hints: strategy name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("hints: strategy %q already registered", name)
	}
	r.strategies[name] = strategy
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(strategy Strategy) {
	if err := r.Register(strategy); err != nil {
		panic(err)
	}
}

// SetFallback changes the strategy used for unknown hints. An empty name
// makes unknown hints pass the body through unchanged.
func (r *Registry) SetFallback(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = name
}

// Get retrieves a strategy by name.
func (r *Registry) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("hints: strategy %q not found", name)
	}
	return strategy, nil
}

// List returns the registered hint names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderHint renders body with the strategy registered for hint, or the
// fallback strategy when hint is empty or unknown.
func (r *Registry) RenderHint(hint, body string) (string, error) {
	r.mu.RLock()
	strategy, ok := r.strategies[hint]
	if !ok {
		strategy, ok = r.strategies[r.fallback]
	}
	r.mu.RUnlock()

	if !ok {
		return body, nil
	}
	return strategy.Render(body)
}
