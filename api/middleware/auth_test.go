package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "middleware-secret", Issuer: "storefront-test", ExpirationMinutes: 5}
}

func adminProtected(called *bool) http.Handler {
	return AdminAuth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if AdminTokenIDFromContext(r.Context()) == "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	token, _, err := pkgAuth.MintAdminToken(testJWTConfig(), time.Now())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	adminProtected(&called).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent || !called {
		t.Fatalf("expected handler to run with admin context, got %d", rec.Code)
	}
}

func TestAdminAuthRejectsBeforeHandler(t *testing.T) {
	other := testJWTConfig()
	other.Secret = "someone-else"
	forged, _, err := pkgAuth.MintAdminToken(other, time.Now())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	expired, _, err := pkgAuth.MintAdminToken(testJWTConfig(), time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	for name, header := range map[string]string{
		"missing": "",
		"garbage": "Bearer not-a-jwt",
		"forged":  "Bearer " + forged,
		"expired": "Bearer " + expired,
	} {
		t.Run(name, func(t *testing.T) {
			called := false
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			adminProtected(&called).ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if called {
				t.Fatalf("handler must not run")
			}
		})
	}
}
