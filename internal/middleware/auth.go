package middleware

import (
	"net/http"

	"pawmart-web/internal/auth"
	"pawmart-web/internal/logger"
	"pawmart-web/internal/utils"

	"go.uber.org/zap"
)

// Auth identifies the caller from the backend access token.
//
// Requests without a token pass through anonymously. A token that fails
// verification is rejected with 401. The raw token is kept in the context so
// backend calls made for this request carry it.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.WithAccessToken(r.Context(), token)

			claims, err := auth.ParseToken(token, secret)
			switch {
			case err == nil:
				ctx = utils.SetUserContext(ctx, claims.UserID, claims.Email, claims.Role)
			case secret == "":
				// Without a secret the token is only forwarded; the backend decides.
			default:
				logger.FromCtx(ctx).Info("rejected access token", zap.Error(err))
				utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.IsAdmin(utils.GetUserRoleFromContext(r.Context())) {
			utils.WriteJSONError(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
