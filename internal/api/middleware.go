package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "actor_claims"

// authMiddleware validates the bearer token and stores the claims in the
// request context for handlers to read.
func authMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, fmt.Errorf("missing bearer token: %w", domain.ErrUnauthorized))
				return
			}
			claims, err := tokens.ValidateToken(token)
			if err != nil {
				writeError(w, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized))
				return
			}
			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFrom(r *http.Request) (*security.ActorClaims, error) {
	claims, ok := r.Context().Value(claimsContextKey).(*security.ActorClaims)
	if !ok {
		return nil, fmt.Errorf("no authenticated actor: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}

// requireRole returns the claims only when the authenticated actor holds one
// of the given roles.
func requireRole(r *http.Request, roles ...domain.ActorRole) (*security.ActorClaims, error) {
	claims, err := claimsFrom(r)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if claims.Role == role {
			return claims, nil
		}
	}
	return nil, fmt.Errorf("role %s cannot perform this operation: %w", claims.Role, domain.ErrUnauthorized)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logger.Info("http request",
			"method", r.Method, "path", r.URL.Path,
			"status", recorder.status, "duration_ms", time.Since(start).Milliseconds())
	})
}
