package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"incidentTrust/internal/api/handlers/http/admin"
	"incidentTrust/internal/api/handlers/http/public"
	"incidentTrust/internal/api/handlers/http/system"
	"incidentTrust/internal/config"
	"incidentTrust/internal/middleware"
	"incidentTrust/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

type Handlers struct {
	Admin  *admin.Handler
	Public *public.Handler
	System *system.Handler
	// Guests meters guest actions on mutating public routes.
	Guests middleware.GuestActionConsumer
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, svc *service.Service, checks map[string]system.Check, gatherer prometheus.Gatherer) *Server {
	h := Handlers{
		Admin:    admin.NewHandler(logger, svc, svc),
		Public:   public.NewHandler(logger, svc, svc, svc),
		System:   system.NewHandler(logger, checks),
		Guests:   svc,
		Gatherer: gatherer,
	}

	return &Server{
		logger: logger,
		router: InitRouter(ctx, cfg, h, logger),
		cfg:    *cfg,
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func InitRouter(ctx context.Context, cfg *config.Config, h Handlers, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.Identity(logger))

	r.Route("/api/v1", func(api chi.Router) {
		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(middleware.RequireRole(logger, middleware.RoleOfficial, middleware.RoleAdmin))
			ar.Use(middleware.Limit(ctx, float64(cfg.RateLimit.RPS), cfg.RateLimit.Burst, cfg.RateLimit.TTL, logger))

			ar.Route("/incidents", func(ir chi.Router) {
				ir.Get("/", h.Admin.ListIncidents)
				ir.Post("/{id}/transitions", h.Admin.TransitionIncident)
				ir.Post("/{id}/score", h.Admin.RecomputeScore)
			})
			ar.Post("/guests/{id}/grants", h.Admin.GrantGuestActions)
		})

		// PUBLIC
		api.Route("/guests", func(gr chi.Router) {
			gr.Use(middleware.Limit(ctx, float64(cfg.RateLimit.RPS), cfg.RateLimit.Burst, cfg.RateLimit.TTL, logger))
			gr.Post("/", h.Public.RegisterGuest)
			gr.Get("/{id}", h.Public.GetGuest)
		})

		api.Route("/incidents", func(pr chi.Router) {
			pr.Use(middleware.Limit(ctx, float64(cfg.RateLimit.RPS), cfg.RateLimit.Burst, cfg.RateLimit.TTL, logger))

			pr.With(
				middleware.RequireVoter(logger),
				middleware.GuestQuota(logger, h.Guests),
			).Post("/", h.Public.CreateIncident)
			pr.Get("/nearby", h.Public.NearbyIncidents)

			pr.Route("/{id}", func(ir chi.Router) {
				ir.Get("/", h.Public.GetIncident)
				ir.With(
					middleware.RequireVoter(logger),
					middleware.GuestQuota(logger, h.Guests),
				).Post("/upvotes", h.Public.AddUpvote)
				ir.With(middleware.RequireVoter(logger)).Delete("/upvotes", h.Public.RemoveUpvote)
			})
		})

		// SYSTEM
		api.Get("/health", h.System.SystemHealth)
		api.Get("/ready", h.System.Readiness)
	})

	if h.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
