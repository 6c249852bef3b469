// Package middleware provides HTTP middleware for authentication of the admin API.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// adminKey is the context key for storing the authenticated admin email.
const adminKey ContextKey = "admin"

// TokenValidator validates bearer tokens. It keeps this package free of the
// JWT implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (AdminGetter, error)
}

// AdminGetter exposes the admin identity carried by validated claims.
type AdminGetter interface {
	GetAdminEmail() string
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the
// admin email to the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, claims.GetAdminEmail())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}

// GetAdminEmail extracts the authenticated admin from the request context.
func GetAdminEmail(r *http.Request) (string, error) {
	email, ok := r.Context().Value(adminKey).(string)
	if !ok || email == "" {
		return "", errors.New("admin not found in request context")
	}
	return email, nil
}

// AdminKey returns the context key for the admin email (for testing purposes).
func AdminKey() ContextKey {
	return adminKey
}
