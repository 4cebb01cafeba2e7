package validators

import (
	"fmt"
	"math"

	"graphcanvas/domain/config"
	"graphcanvas/domain/core/entities"
	"graphcanvas/pkg/errors"
)

// GraphValidator validates graph-level domain rules before data is accepted
// into the store. Rejections happen here so invalid references and degenerate
// coordinates never reach the distance math in the layout engine.
type GraphValidator struct {
	maxNodes             int
	maxEdges             int
	allowSelfConnections bool
}

// NewGraphValidator creates a validator with rules from the domain config
func NewGraphValidator(cfg *config.DomainConfig) *GraphValidator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &GraphValidator{
		maxNodes:             cfg.MaxNodesPerGraph,
		maxEdges:             cfg.MaxEdgesPerGraph,
		allowSelfConnections: cfg.AllowSelfConnections,
	}
}

// ValidateGraphData validates a full node/edge collection as supplied by the
// host. Unplaced nodes are fine (the layout seeds them); infinite coordinates
// and dangling edge references are not.
func (v *GraphValidator) ValidateGraphData(nodes []*entities.Node, edges []*entities.Edge) error {
	validationErrors := errors.NewValidationErrors()

	if len(nodes) > v.maxNodes {
		validationErrors.Add("nodes", fmt.Sprintf("node count %d exceeds maximum %d", len(nodes), v.maxNodes))
	}
	if len(edges) > v.maxEdges {
		validationErrors.Add("edges", fmt.Sprintf("edge count %d exceeds maximum %d", len(edges), v.maxEdges))
	}

	seen := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		id := node.ID().String()
		if seen[id] {
			validationErrors.Add("nodes", fmt.Sprintf("duplicate node id %q", id))
			continue
		}
		seen[id] = true

		pos := node.Position()
		if math.IsInf(pos.X(), 0) || math.IsInf(pos.Y(), 0) {
			validationErrors.Add("nodes", fmt.Sprintf("node %q has an infinite coordinate", id))
		}
	}

	for _, edge := range edges {
		if !seen[edge.SourceID().String()] {
			validationErrors.AddError(errors.NewDomainError(
				errors.DomainValidationError, "DANGLING_EDGE",
				fmt.Sprintf("edge %q references unknown source %q", edge.ID(), edge.SourceID().String())))
		}
		if !seen[edge.TargetID().String()] {
			validationErrors.AddError(errors.NewDomainError(
				errors.DomainValidationError, "DANGLING_EDGE",
				fmt.Sprintf("edge %q references unknown target %q", edge.ID(), edge.TargetID().String())))
		}
		if !v.allowSelfConnections && edge.SourceID().Equals(edge.TargetID()) {
			validationErrors.Add("edges", fmt.Sprintf("edge %q is a self connection", edge.ID()))
		}
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

// ValidateDimensions rejects viewport geometry the layout cannot run on
func (v *GraphValidator) ValidateDimensions(width, height float64) error {
	if width <= 0 || height <= 0 {
		return errors.NewDegenerateGeometryError(
			fmt.Sprintf("viewport dimensions %gx%g are not positive", width, height))
	}
	if math.IsNaN(width) || math.IsNaN(height) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return errors.NewDegenerateGeometryError("viewport dimensions are not finite")
	}
	return nil
}
