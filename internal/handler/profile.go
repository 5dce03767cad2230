package handler

import (
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/httputil"
	"inkwell/internal/quota"
	"inkwell/internal/service"
	"inkwell/internal/upstream"
)

// ProfileHandler handles profile and quota HTTP requests
type ProfileHandler struct {
	backend *upstream.Client
	quotas  *service.QuotaService
	gate    *quota.Gate
	logger  *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(backend *upstream.Client, quotas *service.QuotaService, gate *quota.Gate, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		backend: backend,
		quotas:  quotas,
		gate:    gate,
		logger:  logger,
	}
}

// GetProfile fetches the backend profile and resyncs the local quota record
// with the backend's authoritative counters.
// GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := requireAuth(w, r)
	if !ok {
		return
	}

	profile, err := h.backend.GetProfile(r.Context(), id.Token)
	if err != nil {
		handleError(w, err)
		return
	}

	state, err := h.quotas.Resync(r.Context(), id.OwnerID, profile)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"quota":   state,
	})
}

// GetQuota returns the caller's quota snapshot plus the current gate
// decisions, so the dashboard can disable buttons without a round trip per
// action. Works for anonymous visitors too (demo mode).
// GET /api/quota
func (h *ProfileHandler) GetQuota(w http.ResponseWriter, r *http.Request) {
	id := requestIdentity(r)

	state, err := h.quotas.Snapshot(r.Context(), id.OwnerID)
	if err != nil {
		handleError(w, err)
		return
	}

	now := time.Now()
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"quota":        state,
		"can_generate": h.gate.CanGenerateArticle(state, id.Authenticated, now),
		"can_use_tool": h.gate.CanUseTool(state, id.Authenticated, now),
	})
}
