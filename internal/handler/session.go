package handler

import (
	"net/http"

	"pawmart-web/internal/auth"
	"pawmart-web/internal/logger"
	"pawmart-web/internal/session"
	"pawmart-web/internal/user"
	"pawmart-web/internal/utils"

	"go.uber.org/zap"
)

type sessionView struct {
	SessionID string           `json:"sessionId"`
	User      user.SessionUser `json:"user"`
	CartCount int              `json:"cartCount"`
}

// OpenSession starts a session for the signed-in backend user. Any session
// the browser already had is closed first.
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx).With(zap.String("handler", "OpenSession"))

	u, err := h.Users.Session(ctx)
	if err != nil {
		log.Info("backend session lookup failed", zap.Error(err))
		writeError(w, r, user.ErrUserNotAuthenticated, "Please sign in")
		return
	}
	if uid, ok := utils.GetUserIDFromContext(ctx); ok && uid != u.ID {
		log.Warn("token user does not match backend session",
			zap.String("token_user", uid),
			zap.String("token_email", utils.GetUserEmailFromContext(ctx)),
			zap.String("session_user", u.ID),
		)
		writeError(w, r, user.ErrUserNotAuthenticated, "Please sign in")
		return
	}

	if prev, ok := session.FromContext(ctx); ok {
		h.Sessions.Close(prev.ID)
	}

	st := h.Sessions.Open(*u)
	st.Cart.FetchCart(logger.WithSessionID(ctx, st.ID))

	http.SetCookie(w, auth.SessionCookieFor(st.ID, h.SecureCookies))
	writeOK(w, sessionView{SessionID: st.ID, User: st.User, CartCount: st.Cart.ItemCount()}, nil)
}

func (h *Handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	st, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, r, user.ErrUserNotAuthenticated, "No active session")
		return
	}
	writeOK(w, sessionView{SessionID: st.ID, User: st.User, CartCount: st.Cart.ItemCount()}, nil)
}

// CloseSession tears the session down at logout. It succeeds even when no
// session is open.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if st, ok := session.FromContext(r.Context()); ok {
		h.Sessions.Close(st.ID)
	}
	http.SetCookie(w, auth.SessionCookieFor("", h.SecureCookies))
	writeOK(w, nil, nil)
}
