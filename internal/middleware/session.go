package middleware

import (
	"net/http"

	"pawmart-web/internal/auth"
	"pawmart-web/internal/logger"
	"pawmart-web/internal/session"
	"pawmart-web/internal/utils"
)

// Session attaches the caller's session state, when one is open, to the
// request context. A session only resolves for the user that opened it.
func Session(reg *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := auth.ExtractSessionID(r)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			st, ok := reg.Get(id)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			if uid, ok := utils.GetUserIDFromContext(r.Context()); ok && uid != st.User.ID {
				next.ServeHTTP(w, r)
				return
			}

			ctx := session.WithState(r.Context(), st)
			ctx = logger.WithSessionID(ctx, st.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests without an open session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "no active session", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
