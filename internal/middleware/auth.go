package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/auth"
	"inkwell/internal/httputil"
)

// visitorHeader carries the anonymous visitor ID the dashboard stores in
// durable client storage. It keys the demo-mode quota record.
const visitorHeader = "X-Visitor-Id"

// Auth verifies the bearer token when one is present and stores the user ID
// and raw token in the request context. Requests without a token stay
// anonymous - demo mode depends on that - so a missing header is not an
// error, but a token that fails verification is rejected outright.
func Auth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, withVisitor(r))
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			r = httputil.WithUserID(r, claims.Subject)
			r = httputil.WithAccessToken(r, token)
			next.ServeHTTP(w, r)
		})
	}
}

// withVisitor attaches the caller-supplied visitor ID, minting one when the
// header is absent so first-visit demo requests still get a quota record.
func withVisitor(r *http.Request) *http.Request {
	visitorID := r.Header.Get(visitorHeader)
	if visitorID == "" || uuid.Validate(visitorID) != nil {
		visitorID = uuid.NewString()
	}
	return httputil.WithVisitorID(r, visitorID)
}
