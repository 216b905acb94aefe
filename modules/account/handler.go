package account

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foliogen/foliogen/pkg/cookie"
	"github.com/foliogen/foliogen/svc/auth"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "fg_session"

// AuthService is the slice of svc/auth the HTTP layer depends on.
type AuthService interface {
	Signup(ctx context.Context, params auth.SignupParams) (*auth.SignupResult, error)
	VerifyEmail(ctx context.Context, email, code string) (*auth.Session, error)
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// Handler exposes the auth flows as a JSON API.
type Handler struct {
	svc     AuthService
	cookies *cookie.Manager
	logger  *slog.Logger
}

// Option configures a Handler during construction.
type Option func(*Handler)

// WithLogger sets a custom logger for the handler.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.logger = log
		}
	}
}

// NewHandler wires the auth service to HTTP. The cookie manager decides the
// Secure flag and other cookie attributes per environment.
func NewHandler(svc AuthService, cookies *cookie.Manager, opts ...Option) *Handler {
	h := &Handler{
		svc:     svc,
		cookies: cookies,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router mounts the auth endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.signup)
	r.Post("/verify-email", h.verifyEmail)
	r.Post("/resend-verification", h.resendVerification)
	r.Post("/login", h.login)
	r.Post("/forgot-password", h.forgotPassword)
	r.Post("/reset-password", h.resetPassword)
	r.Post("/logout", h.logout)

	return r
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type accountResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

type signupResponse struct {
	Account       accountResponse `json:"account"`
	CodeDelivered bool            `json:"code_delivered"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.svc.Signup(r.Context(), auth.SignupParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, signupResponse{
		Account:       toAccountResponse(result.Account),
		CodeDelivered: result.CodeDelivered,
	})
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type sessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   accountResponse `json:"account"`
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.svc.VerifyEmail(r.Context(), req.Email, req.Code)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.setSessionCookie(w, session)
	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

type emailRequest struct {
	Email string `json:"email"`
}

// genericCodeSent is the body for both the found and not-found cases of
// resend/forgot flows. Byte-identical responses keep these endpoints useless
// for probing which emails are registered.
var genericCodeSent = messageResponse{Message: "If an account exists for that email, a code has been sent."}

func (h *Handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.ResendVerification(r.Context(), req.Email); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusAccepted, genericCodeSent)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.setSessionCookie(w, session)
	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusAccepted, genericCodeSent)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "Password updated. You can now log in."})
}

// logout deletes the cookie; tokens are stateless so there is nothing to
// revoke server-side.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Delete(w, SessionCookieName)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, session *auth.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	h.cookies.Set(w, SessionCookieName, session.Token, cookie.WithMaxAge(maxAge))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body."})
		return false
	}
	return true
}

func toAccountResponse(a *auth.Account) accountResponse {
	return accountResponse{
		ID:            a.ID.String(),
		Email:         a.Email,
		Name:          a.Name,
		EmailVerified: a.EmailVerified,
	}
}

func toSessionResponse(s *auth.Session) sessionResponse {
	return sessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Account:   toAccountResponse(s.Account),
	}
}
