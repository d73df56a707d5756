package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/courseauth/internal/api/grpc/api"
	"github.com/dtroode/courseauth/internal/logger"
	"github.com/dtroode/courseauth/internal/model"
	"github.com/dtroode/courseauth/internal/service"
)

const deliveryFailedMessage = "We could not send the verification email, please try again"

// VerificationService issues and checks verification tokens.
type VerificationService interface {
	StartVerificationEvent(ctx context.Context, email string) (model.VerificationEvent, bool, error)
	VerifyToken(ctx context.Context, token string, maxAttempts int) (model.VerifyResult, error)
	EmailIsVerified(ctx context.Context, email string) (bool, error)
	Identity(ctx context.Context, id uuid.UUID) (model.Identity, bool, error)
	ListEvents(ctx context.Context, email string) ([]model.VerificationEvent, error)
	SenderAddress() string
}

// SessionService binds verified identities to session tokens.
type SessionService interface {
	Bind(ctx context.Context, identity model.Identity) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Clear(ctx context.Context, token string) error
}

var _ api.VerificationServer = (*Verification)(nil)

// Verification handles the gRPC endpoints of the verification service.
type Verification struct {
	verificationService VerificationService
	sessionService      SessionService
	contextManager      model.ContextManager
	validate            *validator.Validate
	logger              *logger.Logger
}

func NewVerification(
	verificationService VerificationService,
	sessionService SessionService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Verification {
	return &Verification{
		verificationService: verificationService,
		sessionService:      sessionService,
		contextManager:      contextManager,
		validate:            validator.New(validator.WithRequiredStructEnabled()),
		logger:              logger,
	}
}

// StartVerification creates a verification event and mails its link.
func (h *Verification) StartVerification(ctx context.Context, req *api.StartVerificationRequest) (*api.StartVerificationResponse, error) {
	if err := h.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	h.logger.Debug("Verification handler: processing start request",
		"email", req.Email)

	event, delivered, err := h.verificationService.StartVerificationEvent(ctx, req.Email)
	if err != nil {
		h.logger.Error("Verification handler: start failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	message := service.LoginSuccessMessage(h.verificationService.SenderAddress())
	if !delivered {
		message = deliveryFailedMessage
	}

	return &api.StartVerificationResponse{
		EventID:   event.ID.String(),
		Delivered: delivered,
		Message:   message,
	}, nil
}

// VerifyToken checks a presented token and binds a session on success.
// Rejected tokens are reported in the response, not as errors.
func (h *Verification) VerifyToken(ctx context.Context, req *api.VerifyTokenRequest) (*api.VerifyTokenResponse, error) {
	if err := h.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	result, err := h.verificationService.VerifyToken(ctx, req.Token, req.MaxAttempts)
	if err != nil {
		h.logger.Error("Verification handler: verify failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	resp := &api.VerifyTokenResponse{
		OK:      result.OK,
		Reason:  string(result.Reason),
		Message: result.Message,
	}
	if !result.OK {
		return resp, nil
	}

	sessionToken, err := h.sessionService.Bind(ctx, *result.Identity)
	if err != nil {
		h.logger.Error("Verification handler: failed to bind session",
			"email_id", result.Identity.ID,
			"error", err.Error())
		return nil, handleError(err)
	}

	resp.EmailID = result.Identity.ID.String()
	resp.SessionToken = sessionToken
	return resp, nil
}

// EmailStatus reports the verification predicate for an address.
func (h *Verification) EmailStatus(ctx context.Context, req *api.EmailStatusRequest) (*api.EmailStatusResponse, error) {
	if err := h.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	verified, err := h.verificationService.EmailIsVerified(ctx, req.Email)
	if err != nil {
		h.logger.Error("Verification handler: email status failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &api.EmailStatusResponse{Verified: verified}, nil
}

// WhoAmI returns the identity bound to the caller's session.
func (h *Verification) WhoAmI(ctx context.Context, _ *api.WhoAmIRequest) (*api.WhoAmIResponse, error) {
	identity, err := h.sessionIdentity(ctx)
	if err != nil {
		return nil, err
	}

	return &api.WhoAmIResponse{
		EmailID:     identity.ID.String(),
		Email:       identity.Email,
		DisplayName: displayName(identity),
	}, nil
}

// Logout clears the caller's session.
func (h *Verification) Logout(ctx context.Context, _ *api.LogoutRequest) (*api.LogoutResponse, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, err
	}

	if err := h.sessionService.Clear(ctx, token); err != nil {
		h.logger.Error("Verification handler: logout failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	return &api.LogoutResponse{}, nil
}

// ListEvents returns the verification history of the caller's identity.
func (h *Verification) ListEvents(ctx context.Context, _ *api.ListEventsRequest) (*api.ListEventsResponse, error) {
	identity, err := h.sessionIdentity(ctx)
	if err != nil {
		return nil, err
	}

	events, err := h.verificationService.ListEvents(ctx, identity.Email)
	if err != nil {
		h.logger.Error("Verification handler: list events failed",
			"email_id", identity.ID,
			"error", err.Error())
		return nil, handleError(err)
	}

	resp := &api.ListEventsResponse{Events: make([]api.Event, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, api.Event{
			ID:            e.ID.String(),
			Attempts:      e.Attempts,
			Expired:       e.Expired,
			ExpiredAt:     e.ExpiredAt,
			LastAttemptAt: e.LastAttemptAt,
			CreatedAt:     e.CreatedAt,
		})
	}
	return resp, nil
}

// sessionIdentity loads the identity the auth interceptor put in ctx.
func (h *Verification) sessionIdentity(ctx context.Context) (model.Identity, error) {
	emailID, ok := h.contextManager.GetEmailIDFromContext(ctx)
	if !ok {
		return model.Identity{}, status.Error(codes.Unauthenticated, "session is not valid")
	}

	identity, found, err := h.verificationService.Identity(ctx, emailID)
	if err != nil {
		return model.Identity{}, handleError(err)
	}
	if !found {
		return model.Identity{}, status.Error(codes.Unauthenticated, "session is not valid")
	}
	return identity, nil
}

func displayName(v model.HasDisplayName) string {
	return v.DisplayName()
}
