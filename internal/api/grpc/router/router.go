package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/courseauth/internal/api/grpc/api"
	"github.com/dtroode/courseauth/internal/api/grpc/handler"
	"github.com/dtroode/courseauth/internal/api/grpc/middleware"
	"github.com/dtroode/courseauth/internal/logger"
	"github.com/dtroode/courseauth/internal/model"
)

// Router assembles the gRPC server: services, interceptors and health.
type Router struct {
	verificationService handler.VerificationService
	sessionService      handler.SessionService
	contextManager      model.ContextManager
	logger              *logger.Logger
}

func New(
	verificationService handler.VerificationService,
	sessionService handler.SessionService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		verificationService: verificationService,
		sessionService:      sessionService,
		contextManager:      contextManager,
		logger:              logger,
	}
}

// requiresSession selects the methods guarded by the auth interceptor.
func requiresSession(_ context.Context, c interceptors.CallMeta) bool {
	switch c.FullMethod() {
	case api.WhoAmIMethod, api.LogoutMethod, api.ListEventsMethod:
		return true
	default:
		return false
	}
}

// Register builds the server with logging and session authentication.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessionService, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresSession),
			),
		),
	)

	api.RegisterVerificationServer(s, handler.NewVerification(r.verificationService, r.sessionService, r.contextManager, r.logger))

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return s
}
