package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"graphcanvas/application/commands"
	"graphcanvas/application/queries"
	"graphcanvas/interfaces/editor"
	"graphcanvas/interfaces/render"
	"graphcanvas/pkg/common"
	pkgerrors "graphcanvas/pkg/errors"
)

// GraphHandler handles graph-level HTTP requests
type GraphHandler struct {
	editor *editor.Editor
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(ed *editor.Editor, errs *pkgerrors.ErrorHandler, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{editor: ed, errors: errs, logger: logger}
}

// LoadGraph handles PUT /graph, replacing the whole graph atomically
func (h *GraphHandler) LoadGraph(w http.ResponseWriter, r *http.Request) {
	var cmd commands.LoadGraphCommand
	if err := common.ParseJSONBody(r, &cmd, 10<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.editor.Execute(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.editor.StartLayout(); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"nodes": len(cmd.Nodes),
		"edges": len(cmd.Edges),
	})
}

// GetGraphData handles GET /graph
func (h *GraphHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	result, err := h.editor.Query(r.Context(), queries.GetGraphDataQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetStatistics handles GET /graph/statistics
func (h *GraphHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.editor.Query(r.Context(), queries.GetStatisticsQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetFrame handles GET /frame, returning the current render description
func (h *GraphHandler) GetFrame(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.editor.Frame())
}

// GetFrameSVG handles GET /frame.svg, rendering the current frame headlessly
func (h *GraphHandler) GetFrameSVG(w http.ResponseWriter, r *http.Request) {
	frame := h.editor.Frame()
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if err := render.WriteSVG(w, frame); err != nil {
		h.logger.Error("svg render failed", zap.Error(err))
	}
}
