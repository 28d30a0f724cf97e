package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, sub string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

type fakeBlacklist struct {
	revoked map[string]bool
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, token string) bool {
	return f.revoked[token]
}

func runMiddleware(auth *Auth, header string) (*httptest.ResponseRecorder, string) {
	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/v1/user", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	auth.Middleware(next).ServeHTTP(rec, req)
	return rec, gotUserID
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	auth := NewAuth(testSecret, nil)
	token := signToken(t, testSecret, "user-123", time.Hour)

	rec, userID := runMiddleware(auth, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if userID != "user-123" {
		t.Errorf("expected user-123 in context, got %q", userID)
	}
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	auth := NewAuth(testSecret, nil)

	rec, _ := runMiddleware(auth, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without Authorization header, got %d", rec.Code)
	}
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	auth := NewAuth(testSecret, nil)
	token := signToken(t, testSecret, "user-123", time.Hour)

	rec, _ := runMiddleware(auth, token) // missing "Bearer " prefix
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for malformed header, got %d", rec.Code)
	}
}

func TestMiddlewareRejectsWrongSignature(t *testing.T) {
	auth := NewAuth(testSecret, nil)
	token := signToken(t, []byte("other-secret"), "user-123", time.Hour)

	rec, _ := runMiddleware(auth, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for forged token, got %d", rec.Code)
	}
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	auth := NewAuth(testSecret, nil)
	token := signToken(t, testSecret, "user-123", -time.Minute)

	rec, _ := runMiddleware(auth, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestMiddlewareRejectsBlacklistedToken(t *testing.T) {
	token := signToken(t, testSecret, "user-123", time.Hour)
	auth := NewAuth(testSecret, &fakeBlacklist{revoked: map[string]bool{token: true}})

	rec, _ := runMiddleware(auth, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", rec.Code)
	}
}
