// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/pdiddy/match-score/pkg/types"
)

// ErrNoStrategy is returned when a field has no registered strategy.
var ErrNoStrategy = errors.New("no strategy registered")

// Registry binds field names to strategies. Each run owns its registry;
// register during setup, then share it read-only across matchers.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// Register binds strategy to field, replacing any earlier binding.
func (r *Registry) Register(field string, strategy Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[field] = strategy
}

// Get returns the strategy bound to field. The error wraps ErrNoStrategy
// when nothing is registered.
func (r *Registry) Get(field string) (Strategy, error) {
	r.mu.RLock()
	s, ok := r.strategies[field]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for field type: %s", ErrNoStrategy, field)
	}
	return s, nil
}

// Fields returns the registered field names in sorted order.
func (r *Registry) Fields() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fields := make([]string, 0, len(r.strategies))
	for f := range r.strategies {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// RegistryFromConfig builds a registry with one strategy per configured field.
func RegistryFromConfig(fields []types.FieldConfig) (*Registry, error) {
	r := NewRegistry()
	for _, f := range fields {
		s, err := FromField(f)
		if err != nil {
			return nil, err
		}
		r.Register(f.Name, s)
	}
	return r, nil
}
