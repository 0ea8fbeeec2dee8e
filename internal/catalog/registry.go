// Package catalog keeps the named source strategies the fetch stage can pull
// videos from.
package catalog

import (
	"context"
	"fmt"

	"VideosCurator/internal/domain"
)

// Source captures a single retrieval strategy (API search, popular chart,
// scraped listing page, etc.).
type Source interface {
	Name() string
	Search(ctx context.Context, params map[string]any) ([]domain.CatalogItem, error)
}

// Registry keeps a mapping from source names to their implementations.
type Registry struct {
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(source Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	r.sources[source.Name()] = source
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if source, ok := r.sources[name]; ok {
		return source, nil
	}
	return nil, fmt.Errorf("catalog source %s is not registered", name)
}
