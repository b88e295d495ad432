package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/EcoHunt_Go/internal/database"
	"github.com/osse101/EcoHunt_Go/internal/eventlog"
	"github.com/osse101/EcoHunt_Go/internal/handler"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/metrics"
	"github.com/osse101/EcoHunt_Go/internal/sse"
	"github.com/osse101/EcoHunt_Go/internal/submission"
)

// Options configures the HTTP surface
type Options struct {
	Port            int
	APIKey          string
	TrustedProxies  []string
	MaxRequestBytes int64
}

// Dependencies are the services the routes call. DBPool, EventLog and Hub
// are optional. Routes that need a missing dependency are not mounted.
type Dependencies struct {
	DBPool      database.Pool
	Submissions submission.Service
	Scorer      handler.ImpactScorer
	EventLog    eventlog.Service
	Hub         *sse.Hub
}

// Server is the engine's HTTP front
type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer builds the router and the underlying http.Server
func NewServer(opts Options, deps Dependencies) *Server {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector()

	// Outermost first
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle(MetricsPath, promhttp.Handler())
	r.Get(SwaggerPath, httpSwagger.WrapHandler)

	r.Route(APIPrefix, func(r chi.Router) {
		// Bounded bodies
		r.Group(func(r chi.Router) {
			r.Use(RequestSizeLimitMiddleware(opts.MaxRequestBytes))

			r.Post("/activities", handler.HandleSubmitActivity(deps.Submissions))
			r.Post("/activities/batch", handler.HandleSubmitBatch(deps.Submissions))
			r.Post("/rewards/issue", handler.HandleIssueReward(deps.Submissions))
			r.Post("/score/carbon", handler.HandleCarbonScore(deps.Scorer))
			r.Post("/score/sustainability", handler.HandleSustainabilityScore(deps.Scorer))
		})

		// Long-lived streams are not size limited
		r.Post("/activities/stream", handler.HandleStreamActivities(deps.Submissions))
		if deps.Hub != nil {
			r.Get("/events/stream", sse.Handler(deps.Hub))
		}

		r.Get("/orchestrator/stats", handler.HandleOrchestratorStats(deps.Submissions))
		if deps.EventLog != nil {
			r.Get("/users/{userID}/events", handler.HandleGetUserEvents(deps.EventLog))
		}
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Stop is called. It returns http.ErrServerClosed after
// a graceful shutdown.
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
