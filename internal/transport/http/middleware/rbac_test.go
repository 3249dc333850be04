package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"talent/internal/domain/auth"
)

type stubPerms struct {
	allowed map[string]bool
}

func (s stubPerms) HasPermission(_ context.Context, _, permission string) (bool, error) {
	return s.allowed[permission], nil
}

func requestAs(user auth.UserContext) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), ctxKeyUser, user)
	return req.WithContext(ctx)
}

func TestRequirePermissionAllows(t *testing.T) {
	called := false
	handler := RequirePermission("evaluations.team", stubPerms{allowed: map[string]bool{"evaluations.team": true}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(auth.UserContext{UserID: "u1", RoleID: "r1"}))
	if !called {
		t.Fatal("expected handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequirePermissionForbids(t *testing.T) {
	handler := RequirePermission("admin.backup", stubPerms{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(auth.UserContext{UserID: "u1", RoleID: "r1"}))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequirePermissionNeedsUser(t *testing.T) {
	handler := RequirePermission("goals.read", stubPerms{allowed: map[string]bool{"goals.read": true}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
