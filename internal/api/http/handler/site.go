package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/courseauth/internal/logger"
	"github.com/dtroode/courseauth/internal/model"
	"github.com/dtroode/courseauth/internal/service"
)

const (
	SessionCookie = "session"
	NextCookie    = "next"

	loginPath             = "/login/"
	deliveryFailedMessage = "We could not send the verification email, please try again"
)

// VerificationService issues and checks verification tokens.
type VerificationService interface {
	StartVerificationEvent(ctx context.Context, email string) (model.VerificationEvent, bool, error)
	VerifyToken(ctx context.Context, token string, maxAttempts int) (model.VerifyResult, error)
	SenderAddress() string
}

// SessionService binds verified identities to session tokens.
type SessionService interface {
	Bind(ctx context.Context, identity model.Identity) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Clear(ctx context.Context, token string) error
}

// Config controls the session cookie.
type Config struct {
	CookieSecure bool
	SessionTTL   time.Duration
}

// Site serves the browser-facing login flow.
type Site struct {
	verificationService VerificationService
	sessionService      SessionService
	cfg                 Config
	validate            *validator.Validate
	logger              *logger.Logger
}

func NewSite(
	verificationService VerificationService,
	sessionService SessionService,
	cfg Config,
	logger *logger.Logger,
) *Site {
	return &Site{
		verificationService: verificationService,
		sessionService:      sessionService,
		cfg:                 cfg,
		validate:            validator.New(validator.WithRequiredStructEnabled()),
		logger:              logger,
	}
}

type loginForm struct {
	Email string `validate:"required,email"`
}

// LoginResponse is the body returned to the login form.
type LoginResponse struct {
	ShowForm  bool   `json:"show_form"`
	Delivered bool   `json:"delivered"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Verify handles the link from the verification email.
func (h *Site) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	result, err := h.verificationService.VerifyToken(ctx, token, 0)
	if err != nil {
		h.logger.Error("Site handler: verify failed",
			"error", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if !result.OK {
		h.clearSession(w, r)
		http.Redirect(w, r, loginPath+"?error="+url.QueryEscape(result.Message), http.StatusFound)
		return
	}

	sessionToken, err := h.sessionService.Bind(ctx, *result.Identity)
	if err != nil {
		h.logger.Error("Site handler: failed to bind session",
			"email_id", result.Identity.ID,
			"error", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.sessionCookie(sessionToken))

	next := "/"
	if c, err := r.Cookie(NextCookie); err == nil {
		next = service.SafeNext(c.Value)
		http.SetCookie(w, expiredCookie(NextCookie, false))
	}

	http.Redirect(w, r, next, http.StatusFound)
}

// Login starts a verification for the submitted email.
func (h *Site) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bound, err := h.hasSession(r)
	if err != nil {
		h.logger.Error("Site handler: failed to resolve session",
			"error", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if bound {
		render.JSON(w, r, LoginResponse{ShowForm: false})
		return
	}

	if err := r.ParseForm(); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, LoginResponse{ShowForm: true, Error: "malformed form"})
		return
	}

	form := loginForm{Email: r.PostFormValue("email")}
	if err := h.validate.Struct(form); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, LoginResponse{ShowForm: true, Error: "Enter a valid email address."})
		return
	}

	_, delivered, err := h.verificationService.StartVerificationEvent(ctx, form.Email)
	if err != nil {
		h.logger.Error("Site handler: start failed",
			"email", form.Email,
			"error", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := LoginResponse{ShowForm: true, Delivered: delivered}
	if delivered {
		resp.Message = service.LoginSuccessMessage(h.verificationService.SenderAddress())
	} else {
		resp.Message = deliveryFailedMessage
	}
	render.JSON(w, r, resp)
}

// Logout clears the bound session and sends the browser home.
func (h *Site) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w, r)
	w.Header().Set("HX-Redirect", "/")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Health reports liveness.
func (h *Site) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// hasSession reports whether the request carries a usable session cookie.
func (h *Site) hasSession(r *http.Request) (bool, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return false, nil
	}

	_, err = h.sessionService.Resolve(r.Context(), c.Value)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, model.ErrInvalidSession),
		errors.Is(err, model.ErrSessionRevoked),
		errors.Is(err, model.ErrSessionExpired):
		return false, nil
	default:
		return false, err
	}
}

func (h *Site) clearSession(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return
	}

	if err := h.sessionService.Clear(r.Context(), c.Value); err != nil {
		h.logger.Warn("Site handler: failed to clear session",
			"error", err.Error())
	}
	http.SetCookie(w, expiredCookie(SessionCookie, h.cfg.CookieSecure))
}

func (h *Site) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredCookie(name string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
