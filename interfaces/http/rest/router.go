package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"graphcanvas/infrastructure/config"
	"graphcanvas/interfaces/editor"
	"graphcanvas/interfaces/http/rest/handlers"
	"graphcanvas/interfaces/http/rest/middleware"
	pkgerrors "graphcanvas/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	editor *editor.Editor
	cfg    *config.Config
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(ed *editor.Editor, cfg *config.Config, logger *zap.Logger) *Router {
	return &Router{editor: ed, cfg: cfg, logger: logger}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.cfg.IsDevelopment())
	graphHandler := handlers.NewGraphHandler(rt.editor, errorHandler, rt.logger)
	nodeHandler := handlers.NewNodeHandler(rt.editor, errorHandler, rt.logger)
	edgeHandler := handlers.NewEdgeHandler(rt.editor, errorHandler, rt.logger)
	interactionHandler := handlers.NewInteractionHandler(rt.editor, errorHandler, rt.logger)

	// Health check
	router.Get("/health", rt.healthCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// Graph endpoints
		r.Put("/graph", graphHandler.LoadGraph)
		r.Get("/graph", graphHandler.GetGraphData)
		r.Get("/graph/statistics", graphHandler.GetStatistics)
		r.Get("/frame", graphHandler.GetFrame)
		r.Get("/frame.svg", graphHandler.GetFrameSVG)

		// Node endpoints
		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", nodeHandler.CreateNode)
			r.Get("/{nodeID}", nodeHandler.GetNode)
			r.Put("/{nodeID}", nodeHandler.UpdateNode)
			r.Delete("/{nodeID}", nodeHandler.DeleteNode)
			r.Put("/{nodeID}/position", nodeHandler.MoveNode)
			r.Put("/{nodeID}/pin", nodeHandler.PinNode)
			r.Delete("/{nodeID}/pin", nodeHandler.UnpinNode)
		})

		// Edge endpoints
		r.Route("/edges", func(r chi.Router) {
			r.Post("/", edgeHandler.CreateEdge)
			r.Delete("/{edgeID}", edgeHandler.DeleteEdge)
		})
		r.Get("/edge-types", edgeHandler.GetLegalEdgeTypes)

		// Selection endpoints
		r.Route("/selection", func(r chi.Router) {
			r.Get("/", nodeHandler.GetSelection)
			r.Put("/", nodeHandler.SelectNode)
			r.Delete("/", nodeHandler.ClearSelection)
		})

		// Pointer gesture endpoints
		r.Route("/pointer", func(r chi.Router) {
			r.Post("/down", interactionHandler.PointerDown)
			r.Post("/move", interactionHandler.PointerMove)
			r.Post("/up", interactionHandler.PointerUp)
			r.Post("/double-click", interactionHandler.DoubleClick)
			r.Post("/wheel", interactionHandler.Wheel)
			r.Post("/cancel", interactionHandler.CancelGesture)
		})

		// Mode and prompt endpoints
		r.Post("/mode/edge-creation", interactionHandler.ToggleEdgeCreation)
		r.Post("/edge-prompt/confirm", interactionHandler.ConfirmEdgeType)
		r.Delete("/edge-prompt", interactionHandler.DismissEdgePrompt)

		// Viewport endpoints
		r.Route("/viewport", func(r chi.Router) {
			r.Get("/", interactionHandler.GetViewport)
			r.Put("/dimensions", interactionHandler.SetDimensions)
			r.Post("/zoom-in", interactionHandler.ZoomIn)
			r.Post("/zoom-out", interactionHandler.ZoomOut)
			r.Post("/reset", interactionHandler.ResetView)
			r.Post("/fit", interactionHandler.FitToContent)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
