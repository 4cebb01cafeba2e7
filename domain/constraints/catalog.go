package constraints

import (
	"strings"

	pkgerrors "graphcanvas/pkg/errors"
)

// Constraint declares that a relationship type is legal between a pair of
// node types. A directed constraint matches only the declared orientation;
// an undirected one matches either.
type Constraint struct {
	SourceType string `json:"source_type" yaml:"source_type" validate:"required"`
	TargetType string `json:"target_type" yaml:"target_type" validate:"required"`
	EdgeType   string `json:"edge_type" yaml:"edge_type" validate:"required"`
	Label      string `json:"label" yaml:"label"`
	Directed   bool   `json:"directed" yaml:"directed"`
}

// Matches reports whether the constraint permits an edge from sourceType to
// targetType
func (c Constraint) Matches(sourceType, targetType string) bool {
	if c.SourceType == sourceType && c.TargetType == targetType {
		return true
	}
	if !c.Directed && c.SourceType == targetType && c.TargetType == sourceType {
		return true
	}
	return false
}

// DisplayLabel returns the label shown in a type-selection prompt, falling
// back to the edge type tag when no label was declared
func (c Constraint) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.EdgeType
}

// Catalog is the ordered set of edge-type constraints supplied by the host.
// Declaration order is significant: resolver results and prompt listings
// follow it.
type Catalog struct {
	rules []Constraint
}

// NewCatalog creates a catalog from host-declared rules, preserving order
func NewCatalog(rules ...Constraint) (*Catalog, error) {
	catalog := &Catalog{rules: make([]Constraint, 0, len(rules))}
	for _, rule := range rules {
		if err := catalog.Add(rule); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// Add appends a rule to the catalog after validation
func (c *Catalog) Add(rule Constraint) error {
	rule.SourceType = strings.TrimSpace(rule.SourceType)
	rule.TargetType = strings.TrimSpace(rule.TargetType)
	rule.EdgeType = strings.TrimSpace(rule.EdgeType)

	if rule.SourceType == "" || rule.TargetType == "" {
		return pkgerrors.NewValidationError("constraint node types cannot be empty")
	}
	if rule.EdgeType == "" {
		return pkgerrors.NewValidationError("constraint edge type cannot be empty")
	}

	c.rules = append(c.rules, rule)
	return nil
}

// Rules returns the constraints in declaration order
func (c *Catalog) Rules() []Constraint {
	out := make([]Constraint, len(c.rules))
	copy(out, c.rules)
	return out
}

// Len returns the number of declared constraints
func (c *Catalog) Len() int {
	return len(c.rules)
}
