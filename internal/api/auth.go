package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/eventscout/eventscout/internal/auth"
	"github.com/eventscout/eventscout/internal/middleware"
)

// RequireAuth returns middleware that validates a Bearer token on the request
// and stores the authenticated user ID in the context.
func RequireAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				ctx := middleware.SetErrorCode(r.Context(), ErrCodeAuthFailed)
				WriteError(w, ctx, http.StatusUnauthorized, ErrCodeAuthFailed, "Missing Authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				ctx := middleware.SetErrorCode(r.Context(), ErrCodeAuthFailed)
				WriteError(w, ctx, http.StatusUnauthorized, ErrCodeAuthFailed, "Authorization header must use Bearer scheme")
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				msg := "Invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					msg = "Token has expired"
				}
				ctx := middleware.SetErrorCode(r.Context(), ErrCodeAuthFailed)
				WriteError(w, ctx, http.StatusUnauthorized, ErrCodeAuthFailed, msg)
				return
			}

			ctx := middleware.SetUserID(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
