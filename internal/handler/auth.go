package handler

import (
	"log/slog"
	"net/http"
	"net/mail"

	"inkwell/internal/httputil"
	"inkwell/internal/upstream"
)

// AuthHandler hands authentication off to the external identity provider.
// No credentials are handled here: magic links are emailed by the provider
// and Google sign-in is a redirect.
type AuthHandler struct {
	backend *upstream.Client
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(backend *upstream.Client, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		backend: backend,
		logger:  logger,
	}
}

// RequestMagicLink asks the provider to email a sign-in link
// POST /auth/magic-link
func (h *AuthHandler) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "a valid email address is required")
		return
	}

	if err := h.backend.RequestMagicLink(r.Context(), req.Email); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// GoogleSignIn redirects to the provider's Google OAuth entry point
// GET /auth/google
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.backend.GoogleAuthURL(), http.StatusFound)
}
