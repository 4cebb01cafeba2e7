package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"graphcanvas/application/queries"
	"graphcanvas/interfaces/editor"
	"graphcanvas/pkg/common"
	pkgerrors "graphcanvas/pkg/errors"
)

// InteractionHandler translates HTTP calls into pointer gestures, mode
// changes and viewport operations. It exists for remote-driven hosts and
// headless testing; embedded hosts call the editor facade directly.
type InteractionHandler struct {
	editor *editor.Editor
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(ed *editor.Editor, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{editor: ed, errors: errs, logger: logger}
}

// PointerEventRequest carries pointer coordinates in screen space
type PointerEventRequest struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	DeltaY       float64 `json:"delta_y,omitempty"`
	WithModifier bool    `json:"with_modifier,omitempty"`
}

// EdgeTypeChoiceRequest carries the edge type picked from a prompt
type EdgeTypeChoiceRequest struct {
	EdgeType string `json:"edge_type"`
}

// DimensionsRequest carries a viewport resize
type DimensionsRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointerDown handles POST /pointer/down
func (h *InteractionHandler) PointerDown(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePointer(w, r)
	if !ok {
		return
	}
	h.editor.PointerDown(req.X, req.Y, req.WithModifier)
	w.WriteHeader(http.StatusNoContent)
}

// PointerMove handles POST /pointer/move
func (h *InteractionHandler) PointerMove(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePointer(w, r)
	if !ok {
		return
	}
	h.editor.PointerMove(req.X, req.Y)
	w.WriteHeader(http.StatusNoContent)
}

// PointerUp handles POST /pointer/up
func (h *InteractionHandler) PointerUp(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePointer(w, r)
	if !ok {
		return
	}
	h.editor.PointerUp(req.X, req.Y)
	w.WriteHeader(http.StatusNoContent)
}

// DoubleClick handles POST /pointer/double-click
func (h *InteractionHandler) DoubleClick(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePointer(w, r)
	if !ok {
		return
	}
	h.editor.DoubleClick(req.X, req.Y)
	w.WriteHeader(http.StatusNoContent)
}

// Wheel handles POST /pointer/wheel
func (h *InteractionHandler) Wheel(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePointer(w, r)
	if !ok {
		return
	}
	h.editor.Wheel(req.X, req.Y, req.DeltaY)
	w.WriteHeader(http.StatusNoContent)
}

// CancelGesture handles POST /pointer/cancel
func (h *InteractionHandler) CancelGesture(w http.ResponseWriter, r *http.Request) {
	h.editor.CancelGesture()
	w.WriteHeader(http.StatusNoContent)
}

// ToggleEdgeCreation handles POST /mode/edge-creation
func (h *InteractionHandler) ToggleEdgeCreation(w http.ResponseWriter, r *http.Request) {
	h.editor.ToggleEdgeCreationMode()
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmEdgeType handles POST /edge-prompt/confirm
func (h *InteractionHandler) ConfirmEdgeType(w http.ResponseWriter, r *http.Request) {
	var req EdgeTypeChoiceRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.editor.ConfirmEdgeType(req.EdgeType); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DismissEdgePrompt handles DELETE /edge-prompt
func (h *InteractionHandler) DismissEdgePrompt(w http.ResponseWriter, r *http.Request) {
	h.editor.DismissEdgeTypePrompt()
	w.WriteHeader(http.StatusNoContent)
}

// SetDimensions handles PUT /viewport/dimensions
func (h *InteractionHandler) SetDimensions(w http.ResponseWriter, r *http.Request) {
	var req DimensionsRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.editor.SetDimensions(req.Width, req.Height); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetViewport handles GET /viewport
func (h *InteractionHandler) GetViewport(w http.ResponseWriter, r *http.Request) {
	result, err := h.editor.Query(r.Context(), queries.GetViewportQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ZoomIn handles POST /viewport/zoom-in
func (h *InteractionHandler) ZoomIn(w http.ResponseWriter, r *http.Request) {
	h.editor.ZoomIn()
	w.WriteHeader(http.StatusNoContent)
}

// ZoomOut handles POST /viewport/zoom-out
func (h *InteractionHandler) ZoomOut(w http.ResponseWriter, r *http.Request) {
	h.editor.ZoomOut()
	w.WriteHeader(http.StatusNoContent)
}

// ResetView handles POST /viewport/reset
func (h *InteractionHandler) ResetView(w http.ResponseWriter, r *http.Request) {
	h.editor.ResetView()
	w.WriteHeader(http.StatusNoContent)
}

// FitToContent handles POST /viewport/fit
func (h *InteractionHandler) FitToContent(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.FitToContent(); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InteractionHandler) parsePointer(w http.ResponseWriter, r *http.Request) (PointerEventRequest, bool) {
	var req PointerEventRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return req, false
	}
	return req, true
}
