package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"graphcanvas/application/commands"
	"graphcanvas/application/queries"
	"graphcanvas/interfaces/editor"
	"graphcanvas/pkg/common"
	pkgerrors "graphcanvas/pkg/errors"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	editor *editor.Editor
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(ed *editor.Editor, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{editor: ed, errors: errs, logger: logger}
}

// CreateNode handles POST /nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var cmd commands.AddNodeCommand
	if err := common.ParseJSONBody(r, &cmd, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}

	if cmd.NodeID == "" {
		cmd.NodeID = uuid.New().String()
	}

	if err := h.editor.Execute(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"node_id": cmd.NodeID,
	})
}

// GetNode handles GET /nodes/{nodeID}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	result, err := h.editor.Query(r.Context(), queries.GetNodeQuery{NodeID: chi.URLParam(r, "nodeID")})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateNode handles PUT /nodes/{nodeID}
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateNodeCommand
	if err := common.ParseJSONBody(r, &cmd, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	cmd.NodeID = chi.URLParam(r, "nodeID")

	if err := h.editor.Execute(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"node_id": cmd.NodeID,
	})
}

// DeleteNode handles DELETE /nodes/{nodeID}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteNodeCommand{NodeID: chi.URLParam(r, "nodeID")}
	if err := h.editor.Execute(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveNode handles PUT /nodes/{nodeID}/position
func (h *NodeHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	var cmd commands.MoveNodeCommand
	if err := common.ParseJSONBody(r, &cmd, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	cmd.NodeID = chi.URLParam(r, "nodeID")

	if err := h.editor.Execute(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"node_id": cmd.NodeID})
}

// PinNode handles PUT /nodes/{nodeID}/pin
func (h *NodeHandler) PinNode(w http.ResponseWriter, r *http.Request) {
	var cmd commands.PinNodeCommand
	if err := common.ParseJSONBody(r, &cmd, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	cmd.NodeID = chi.URLParam(r, "nodeID")

	if err := h.editor.Execute(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"node_id": cmd.NodeID})
}

// UnpinNode handles DELETE /nodes/{nodeID}/pin
func (h *NodeHandler) UnpinNode(w http.ResponseWriter, r *http.Request) {
	cmd := commands.UnpinNodeCommand{NodeID: chi.URLParam(r, "nodeID")}
	if err := h.editor.Execute(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectNode handles PUT /selection
func (h *NodeHandler) SelectNode(w http.ResponseWriter, r *http.Request) {
	var cmd commands.SelectNodeCommand
	if err := common.ParseJSONBody(r, &cmd, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.editor.Execute(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"node_id": cmd.NodeID})
}

// GetSelection handles GET /selection
func (h *NodeHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	result, err := h.editor.Query(r.Context(), queries.GetSelectionQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ClearSelection handles DELETE /selection
func (h *NodeHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.Execute(r.Context(), commands.ClearSelectionCommand{}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
