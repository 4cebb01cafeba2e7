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

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	editor *editor.Editor
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(ed *editor.Editor, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *EdgeHandler {
	return &EdgeHandler{editor: ed, errors: errs, logger: logger}
}

// CreateEdge handles POST /edges
func (h *EdgeHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateEdgeCommand
	if err := common.ParseJSONBody(r, &cmd, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	if cmd.EdgeID == "" {
		cmd.EdgeID = uuid.New().String()
	}

	if err := h.editor.Execute(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"edge_id": cmd.EdgeID,
	})
}

// DeleteEdge handles DELETE /edges/{edgeID}
func (h *EdgeHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteEdgeCommand{EdgeID: chi.URLParam(r, "edgeID")}
	if err := h.editor.Execute(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLegalEdgeTypes handles GET /edge-types, answering which relationship
// types may connect the given node pair
func (h *EdgeHandler) GetLegalEdgeTypes(w http.ResponseWriter, r *http.Request) {
	query := queries.GetLegalEdgeTypesQuery{
		SourceID: r.URL.Query().Get("source"),
		TargetID: r.URL.Query().Get("target"),
	}

	result, err := h.editor.Query(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
