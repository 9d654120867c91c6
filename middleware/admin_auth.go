package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"govmadad/utils"
)

type contextKey string

// AdminUserKey is the request-context key carrying the authenticated admin username.
const AdminUserKey contextKey = "admin_user"

// AdminAuthMiddleware guards the administrative endpoints that mutate
// complaint status and response.
type AdminAuthMiddleware struct {
	jwtSecret []byte
}

// NewAdminAuthMiddleware creates admin auth middleware with the given JWT secret.
func NewAdminAuthMiddleware(jwtSecret string) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{jwtSecret: []byte(jwtSecret)}
}

// RequireAdmin validates the Bearer token and rejects anything that is not an
// admin-scoped session.
func (m *AdminAuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization header required")
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			unauthorized(w, "Authorization header must be a Bearer token")
			return
		}

		username, err := utils.ValidateAdminJWT(token, m.jwtSecret)
		if err != nil {
			unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), AdminUserKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized", "message": message})
}
