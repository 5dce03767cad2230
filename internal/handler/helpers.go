package handler

import (
	"net/http"

	"inkwell/internal/httputil"
)

// identity is who is making the request: an authenticated user or an
// anonymous demo visitor. OwnerID keys the quota record either way.
type identity struct {
	OwnerID       string
	Token         string
	Authenticated bool
}

func requestIdentity(r *http.Request) identity {
	if userID := httputil.GetUserID(r); userID != "" {
		return identity{
			OwnerID:       userID,
			Token:         httputil.GetAccessToken(r),
			Authenticated: true,
		}
	}
	return identity{OwnerID: httputil.GetVisitorID(r)}
}

// requireAuth rejects anonymous callers. Returns the identity and whether
// the request may proceed.
func requireAuth(w http.ResponseWriter, r *http.Request) (identity, bool) {
	id := requestIdentity(r)
	if !id.Authenticated {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return id, false
	}
	return id, true
}
