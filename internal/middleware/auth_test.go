package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	allow map[string]bool
	err   error
}

func (f *fakeChecker) Can(ctx context.Context, userID int, role, feature, action string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.allow[feature+":"+action], nil
}

func requestWithIdentity(userID int, role string) *http.Request {
	r := httptest.NewRequest("GET", "/api/credits", nil)
	ctx := context.WithValue(r.Context(), UserIDKey, userID)
	ctx = context.WithValue(ctx, RoleKey, role)
	ctx = context.WithValue(ctx, OwnerIDKey, 1)
	return r.WithContext(ctx)
}

func TestRequirePermissionAllowed(t *testing.T) {
	checker := &fakeChecker{allow: map[string]bool{"credits:view": true}}
	called := false
	handler := RequirePermission(checker, "credits", "view")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithIdentity(7, "worker"))

	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePermissionDenied(t *testing.T) {
	checker := &fakeChecker{allow: map[string]bool{}}
	handler := RequirePermission(checker, "credits", "delete")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run when permission is denied")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithIdentity(7, "worker"))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminRejectsWorker(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run for workers")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithIdentity(7, "worker"))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	called := false
	handler := RequireAdmin(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithIdentity(1, "admin"))

	require.True(t, called)
}
