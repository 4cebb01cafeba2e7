package constraints

import (
	"graphcanvas/domain/core/entities"
)

// Resolver computes which relationship types are legal to create between two
// node types, given the edges that already exist between the exact ordered
// pair of nodes involved.
type Resolver struct {
	catalog *Catalog
}

// NewResolver creates a resolver over the host's constraint catalog
func NewResolver(catalog *Catalog) *Resolver {
	if catalog == nil {
		catalog = &Catalog{}
	}
	return &Resolver{catalog: catalog}
}

// Resolve returns the legal edge types for an edge from sourceType to
// targetType, in catalog declaration order. existing holds the edges already
// present between the ordered node pair; their types are excluded so the same
// relationship is never offered twice between the same two nodes.
func (r *Resolver) Resolve(sourceType, targetType string, existing []*entities.Edge) []Constraint {
	taken := make(map[string]bool, len(existing))
	for _, edge := range existing {
		taken[edge.Type()] = true
	}

	var legal []Constraint
	seen := make(map[string]bool)
	for _, rule := range r.catalog.rules {
		if !rule.Matches(sourceType, targetType) {
			continue
		}
		if taken[rule.EdgeType] || seen[rule.EdgeType] {
			continue
		}
		seen[rule.EdgeType] = true
		legal = append(legal, rule)
	}
	return legal
}
