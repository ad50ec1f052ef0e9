package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/middleware"
)

// Handlers groups the API handlers mounted by NewRouter.
type Handlers struct {
	About    *AboutHandler
	Projects *ProjectHandler
	Resume   *ResumeHandler
	Contact  *ContactHandler
	Health   *HealthHandler
}

// RouterOptions tunes the middleware chain.
type RouterOptions struct {
	// CORSOrigins lists the origins allowed to call /api.
	CORSOrigins []string
	// RequestTimeout cancels the request context after this long. Zero disables it.
	RequestTimeout time.Duration
	// ContactLimit contact submissions are accepted per ContactWindow and client IP.
	ContactLimit  int
	ContactWindow time.Duration
	// Web, if set, serves every path outside /api.
	Web http.Handler
}

// NewRouter builds the portfolio HTTP handler.
//
// Routes:
//
//	GET    /api                 → Root
//	GET    /api/about           → About.Get
//	PUT    /api/about           → About.Put
//	GET    /api/projects        → Projects.List
//	POST   /api/projects        → Projects.Create
//	GET    /api/projects/{id}   → Projects.Get
//	PUT    /api/projects/{id}   → Projects.Update
//	DELETE /api/projects/{id}   → Projects.Delete
//	GET    /api/resume          → Resume.List
//	POST   /api/resume          → Resume.Create
//	GET    /api/resume/{id}     → Resume.Get
//	PUT    /api/resume/{id}     → Resume.Update
//	DELETE /api/resume/{id}     → Resume.Delete
//	POST   /api/contact         → Contact.Submit (rate limited per IP)
//	GET    /healthz, /metrics
func NewRouter(h Handlers, opts RouterOptions, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithMetrics)
	r.Use(chiMiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}

	r.Get("/healthz", h.Health.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(opts.CORSOrigins))
		// Only allow bodies with Content-Type: application/json
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Get("/", Root)

		r.Get("/about", h.About.Get)
		r.Put("/about", h.About.Put)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.Projects.List)
			r.Post("/", h.Projects.Create)
			r.Get("/{id}", h.Projects.Get)
			r.Put("/{id}", h.Projects.Update)
			r.Delete("/{id}", h.Projects.Delete)
		})

		r.Route("/resume", func(r chi.Router) {
			r.Get("/", h.Resume.List)
			r.Post("/", h.Resume.Create)
			r.Get("/{id}", h.Resume.Get)
			r.Put("/{id}", h.Resume.Update)
			r.Delete("/{id}", h.Resume.Delete)
		})

		r.With(middleware.RateLimitByIP(opts.ContactLimit, opts.ContactWindow, TooManyContacts)).
			Post("/contact", h.Contact.Submit)
	})

	if opts.Web != nil {
		r.Mount("/", opts.Web)
	}

	return r
}
