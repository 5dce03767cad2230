package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey    contextKey = "userID"
	tokenKey     contextKey = "accessToken"
	visitorIDKey contextKey = "visitorID"
)

// WithUserID adds the authenticated user's ID to the request context
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
}

// GetUserID retrieves the authenticated user ID from context, returns empty
// string for anonymous requests
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// WithAccessToken stashes the verified bearer token so the upstream client
// can forward it on delegated calls
func WithAccessToken(r *http.Request, token string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), tokenKey, token))
}

// GetAccessToken retrieves the bearer token from context, empty if anonymous
func GetAccessToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}

// WithVisitorID adds the anonymous visitor ID (demo mode) to the context
func WithVisitorID(r *http.Request, visitorID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), visitorIDKey, visitorID))
}

// GetVisitorID retrieves the anonymous visitor ID from context
func GetVisitorID(r *http.Request) string {
	visitorID, _ := r.Context().Value(visitorIDKey).(string)
	return visitorID
}
