package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
)

type stubVerifier struct {
	claims *models.AuthClaims
	err    error
}

func (s *stubVerifier) VerifyToken(string) (*models.AuthClaims, error) { return s.claims, s.err }
func (s *stubVerifier) Close() error                                   { return nil }

func TestAuthMiddleware(t *testing.T) {
	validClaims := &models.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-42"},
	}

	t.Run("valid token sets user and token context", func(t *testing.T) {
		var gotUserID, gotToken string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID = httputil.GetUserID(r)
			gotToken = httputil.GetAccessToken(r)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()

		Auth(&stubVerifier{claims: validClaims})(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotUserID != "user-42" {
			t.Errorf("user ID = %q, want user-42", gotUserID)
		}
		if gotToken != "good-token" {
			t.Errorf("token = %q, want good-token", gotToken)
		}
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()

		Auth(&stubVerifier{err: errors.New("expired")})(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		Auth(&stubVerifier{claims: validClaims})(http.NotFoundHandler()).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("missing header proceeds anonymously with supplied visitor ID", func(t *testing.T) {
		visitorID := uuid.NewString()
		var gotUserID, gotVisitor string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID = httputil.GetUserID(r)
			gotVisitor = httputil.GetVisitorID(r)
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/generate-draft", nil)
		req.Header.Set("X-Visitor-Id", visitorID)
		rec := httptest.NewRecorder()

		Auth(&stubVerifier{err: errors.New("should not be called")})(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotUserID != "" {
			t.Errorf("user ID = %q, want empty for anonymous request", gotUserID)
		}
		if gotVisitor != visitorID {
			t.Errorf("visitor ID = %q, want %q", gotVisitor, visitorID)
		}
	})

	t.Run("bogus visitor ID replaced with a fresh one", func(t *testing.T) {
		var gotVisitor string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotVisitor = httputil.GetVisitorID(r)
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/generate-draft", nil)
		req.Header.Set("X-Visitor-Id", "<script>not-a-uuid</script>")
		rec := httptest.NewRecorder()

		Auth(&stubVerifier{})(next).ServeHTTP(rec, req)

		if gotVisitor == "" || uuid.Validate(gotVisitor) != nil {
			t.Errorf("visitor ID = %q, want a freshly minted UUID", gotVisitor)
		}
	})
}
