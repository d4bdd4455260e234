package middleware

import (
	"context"
	"net/http"
	"strings"

	"vyapar-backend/internal/auth"
	"vyapar-backend/pkg/utils"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	EmailKey   contextKey = "email"
	RoleKey    contextKey = "role"
	OwnerIDKey contextKey = "owner_id"
)

// Authenticate validates the Bearer token and stores the identity in the
// request context.
func Authenticate(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.Error(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.Error(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := jwtManager.ValidateToken(parts[1])
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			ctx = context.WithValue(ctx, OwnerIDKey, claims.OwnerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests from non-admin users
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetRoleFromContext(r.Context())
		if !ok || role != "admin" {
			utils.Error(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PermissionChecker decides whether a user may perform an action on a
// feature. Implemented by services.PermissionService.
type PermissionChecker interface {
	Can(ctx context.Context, userID int, role, feature, action string) (bool, error)
}

// RequirePermission gates a route on the worker permission matrix.
// Admins always pass.
func RequirePermission(checker PermissionChecker, feature, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, _ := GetUserIDFromContext(r.Context())
			role, _ := GetRoleFromContext(r.Context())

			allowed, err := checker.Can(r.Context(), userID, role, feature, action)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "permission check failed")
				return
			}
			if !allowed {
				utils.Error(w, http.StatusForbidden, "permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIDFromContext retrieves the authenticated user id
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetEmailFromContext retrieves the authenticated user's email
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

// GetRoleFromContext retrieves the authenticated user's role
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// GetOwnerIDFromContext retrieves the owner scope id
func GetOwnerIDFromContext(ctx context.Context) (int, bool) {
	ownerID, ok := ctx.Value(OwnerIDKey).(int)
	return ownerID, ok
}
