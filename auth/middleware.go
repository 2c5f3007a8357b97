package auth

import (
	"net/http"
	"strings"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/config"
)

// JWTMiddleware returns middleware that gates a route group on a bearer
// token. Exactly three outcomes:
//
//   - no Authorization header: 401, downstream never called;
//   - header present but the token is malformed, forged, or expired: 403;
//   - valid token: claims attached to the request context, proceed.
func JWTMiddleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				WriteError(w, r, apperror.NewForbiddenError("Authorization header format must be Bearer {token}", nil))
				return
			}

			claims, err := VerifyToken(parts[1], cfg.JWTSecret)
			if err != nil {
				WriteError(w, r, apperror.NewForbiddenError("Invalid or expired token", err))
				return
			}

			ctx := NewContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
