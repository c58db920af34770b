package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// AdminAuthMiddleware validates a Bearer admin JWT and stores its subject in
// the request context. It replaces the old in-page password prompt: the
// secret never leaves the server.
func AdminAuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractBearerToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			claims, vErr := ValidateAdminToken(tokenStr, secret)
			switch {
			case vErr == nil:
			case errors.Is(vErr, jwt.ErrTokenExpired):
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
				)
				return
			case errors.Is(vErr, ErrNotAdmin):
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeForbidden, "Insufficient permissions", nil, vErr,
				)
				return
			default:
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, vErr,
				)
				return
			}

			ctx := context.WithValue(r.Context(), utils.CtxKeyAdminSubject, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", ErrMissingToken
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tok == "" {
		return "", ErrMissingToken
	}
	return tok, nil
}
