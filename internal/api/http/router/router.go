package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/courseauth/internal/api/http/handler"
	"github.com/dtroode/courseauth/internal/api/http/middleware"
	"github.com/dtroode/courseauth/internal/logger"
)

// Router assembles the browser-facing site.
type Router struct {
	verificationService handler.VerificationService
	sessionService      handler.SessionService
	cfg                 handler.Config
	logger              *logger.Logger
}

func New(
	verificationService handler.VerificationService,
	sessionService handler.SessionService,
	cfg handler.Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		verificationService: verificationService,
		sessionService:      sessionService,
		cfg:                 cfg,
		logger:              logger,
	}
}

// Register builds the chi mux with request id, recovery and logging.
func (r *Router) Register() http.Handler {
	site := handler.NewSite(r.verificationService, r.sessionService, r.cfg, r.logger)
	logging := middleware.NewLogging(r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(logging.Handle)
	mux.Use(chimiddleware.Recoverer)

	mux.Get("/healthz", site.Health)
	mux.Get("/verify/{token}/", site.Verify)
	mux.Post("/hx/login/", site.Login)
	mux.Post("/logout/", site.Logout)

	return mux
}
