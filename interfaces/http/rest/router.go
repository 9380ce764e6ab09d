package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/m-sergey/archi-scripting-plugin/application/workspace"
	"github.com/m-sergey/archi-scripting-plugin/interfaces/http/rest/handlers"
	"github.com/m-sergey/archi-scripting-plugin/interfaces/http/rest/middleware"
	pkgerrors "github.com/m-sergey/archi-scripting-plugin/pkg/errors"
	"github.com/m-sergey/archi-scripting-plugin/pkg/observability"
)

// Options toggles the optional parts of the router
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	// Metrics, when set, records HTTP metrics and serves /metrics
	Metrics *observability.Collector
}

// Router creates and configures the HTTP router
type Router struct {
	ws     *workspace.Workspace
	errs   *pkgerrors.ErrorHandler
	opts   Options
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(ws *workspace.Workspace, errs *pkgerrors.ErrorHandler, opts Options, logger *zap.Logger) *Router {
	return &Router{ws: ws, errs: errs, opts: opts, logger: logger}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.opts.Metrics != nil {
		router.Use(rt.opts.Metrics.HTTPMiddleware)
	}

	if rt.opts.EnableCORS {
		origins := rt.opts.AllowedOrigins
		if len(origins) == 0 {
			origins = []string{"http://localhost:*"}
		}
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	if rt.opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.opts.Metrics.Handler())
	}

	var onModels func(int)
	if rt.opts.Metrics != nil {
		gauge := rt.opts.Metrics.OpenModels
		onModels = func(n int) { gauge.Set(float64(n)) }
	}

	models := handlers.NewModelHandler(rt.ws, rt.errs, rt.logger, onModels)
	objects := handlers.NewObjectHandler(rt.ws, rt.errs, rt.logger)
	views := handlers.NewViewHandler(rt.ws, rt.errs, rt.logger)
	history := handlers.NewHistoryHandler(rt.ws, rt.errs, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(rt.opts.RateLimit, rt.opts.RateBurst))

		r.Route("/models", func(r chi.Router) {
			r.Post("/", models.CreateModel)
			r.Get("/", models.ListModels)
			r.Route("/{modelID}", func(r chi.Router) {
				r.Get("/", models.GetModel)
				r.Delete("/", models.CloseModel)
				r.Post("/elements", models.CreateElement)
				r.Post("/relationships", models.CreateRelationship)
				r.Post("/views", models.CreateView)
				r.Get("/specializations", models.ListSpecializations)
				r.Post("/specializations", models.CreateSpecialization)
				r.Delete("/specializations", models.DeleteSpecialization)
				r.Get("/find", models.Find)
			})
		})

		r.Route("/objects/{id}", func(r chi.Router) {
			r.Get("/", objects.GetObject)
			r.Delete("/", objects.DeleteObject)
			r.Get("/attributes/{key}", objects.GetAttribute)
			r.Put("/attributes/{key}", objects.SetAttribute)
			r.Get("/properties", objects.GetProperties)
			r.Put("/properties", objects.SetProperty)
			r.Delete("/properties/{key}", objects.RemoveProperty)
			r.Get("/children", objects.Children)
			r.Get("/parent", objects.Parent)
			r.Get("/ancestors", objects.Ancestors)
			r.Get("/find", objects.Find)
		})

		r.Route("/views/{id}", func(r chi.Router) {
			r.Post("/objects", views.AddObject)
			r.Post("/connections", views.Connect)
			r.Get("/references", views.References)
		})

		r.Get("/history", history.History)
		r.Post("/undo", history.Undo)
		r.Post("/redo", history.Redo)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
