package queries

import (
	"context"

	"graphcanvas/application/queries/bus"
	"graphcanvas/domain/viewport"
	pkgerrors "graphcanvas/pkg/errors"
)

// GetViewportQuery fetches the current viewport transform
type GetViewportQuery struct{}

// Validate validates the query
func (q GetViewportQuery) Validate() error {
	return nil
}

// GetViewportResult is the current transform
type GetViewportResult struct {
	Transform viewport.Transform `json:"transform"`
}

// GetViewportHandler handles the GetViewportQuery
type GetViewportHandler struct {
	view *viewport.Controller
}

// NewGetViewportHandler creates a new handler instance
func NewGetViewportHandler(view *viewport.Controller) *GetViewportHandler {
	return &GetViewportHandler{view: view}
}

// Handle executes the query
func (h *GetViewportHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(GetViewportQuery); !ok {
		return nil, pkgerrors.NewInternalError("unexpected query type")
	}
	return &GetViewportResult{Transform: h.view.Transform()}, nil
}
