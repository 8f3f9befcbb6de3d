package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"webshop-backend/models"
	"webshop-backend/store"
	"webshop-backend/utils"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "webshop_session"

// Key type for context
type contextKey string

const userContextKey = contextKey("user")

// UserFrom extracts the authenticated user from a request context, if any.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// WithUser returns a context carrying the given user as the authenticated
// identity. Used by the session middleware and by handler tests.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// Session resolves the session cookie into a user identity on every request.
type Session struct {
	Sessions store.SessionStore
	Users    store.UserStore
	Codec    *utils.SessionCodec
	Logger   logrus.FieldLogger
}

// NewSession creates the session-resolving middleware.
func NewSession(sessions store.SessionStore, users store.UserStore, codec *utils.SessionCodec, logger logrus.FieldLogger) *Session {
	return &Session{
		Sessions: sessions,
		Users:    users,
		Codec:    codec,
		Logger:   logger,
	}
}

// Middleware attaches the resolved user to the request context. A missing,
// invalid or expired session is not an error: the request simply proceeds
// unauthenticated and route guards decide what that means.
func (s *Session) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.resolve(r)
		if user != nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Session) resolve(r *http.Request) *models.User {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sessionID, err := s.Codec.Parse(cookie.Value)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	session, err := s.Sessions.Find(ctx, sessionID)
	if err != nil {
		if err != store.ErrNotFound {
			s.Logger.WithError(err).Warn("session lookup failed")
		}
		return nil
	}
	if session.Expired(time.Now()) {
		return nil
	}

	user, err := s.Users.FindByID(ctx, session.UserID)
	if err != nil {
		if err != store.ErrNotFound {
			s.Logger.WithError(err).Warn("session user lookup failed")
		}
		return nil
	}
	return user
}

// RequireAuth rejects requests that carry no resolved identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin ensures that the resolved identity has admin privileges.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok || !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "Forbidden: Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
