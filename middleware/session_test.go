package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webshop-backend/models"
	"webshop-backend/store"
	"webshop-backend/utils"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type sessionEnv struct {
	users    *store.MemoryUserStore
	sessions *store.MemorySessionStore
	codec    *utils.SessionCodec
	mw       *Session
	user     *models.User
}

func newSessionEnv(t *testing.T) *sessionEnv {
	t.Helper()
	users := store.NewMemoryUserStore()
	sessions := store.NewMemorySessionStore()
	codec := utils.NewSessionCodec("test-secret")

	user := &models.User{Username: "alice", Role: models.RoleUser}
	users.Put(user)

	return &sessionEnv{
		users:    users,
		sessions: sessions,
		codec:    codec,
		mw:       NewSession(sessions, users, codec, testLogger()),
		user:     user,
	}
}

// sessionCookie creates a persisted session for the env user and returns the
// cookie a logged-in client would hold.
func (e *sessionEnv) sessionCookie(t *testing.T, expiresAt time.Time) *http.Cookie {
	t.Helper()
	session := &models.Session{ID: uuid.NewString(), UserID: e.user.ID, ExpiresAt: expiresAt}
	require.NoError(t, e.sessions.Create(context.Background(), session))
	token, err := e.codec.Sign(session.ID, expiresAt)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookie, Value: token}
}

// identity runs a request through the middleware and reports the identity
// the inner handler observed.
func (e *sessionEnv) identity(t *testing.T, cookie *http.Cookie) (*models.User, bool) {
	t.Helper()
	var got *models.User
	var ok bool
	handler := e.mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = UserFrom(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, "middleware itself must not reject")
	return got, ok
}

func TestSessionResolvesIdentity(t *testing.T) {
	env := newSessionEnv(t)

	user, ok := env.identity(t, env.sessionCookie(t, time.Now().Add(time.Hour)))
	require.True(t, ok)
	assert.Equal(t, env.user.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestSessionFallsThroughUnauthenticated(t *testing.T) {
	env := newSessionEnv(t)

	t.Run("no cookie", func(t *testing.T) {
		_, ok := env.identity(t, nil)
		assert.False(t, ok)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, ok := env.identity(t, &http.Cookie{Name: SessionCookie, Value: "garbage"})
		assert.False(t, ok)
	})

	t.Run("unknown session", func(t *testing.T) {
		token, err := env.codec.Sign(uuid.NewString(), time.Now().Add(time.Hour))
		require.NoError(t, err)
		_, ok := env.identity(t, &http.Cookie{Name: SessionCookie, Value: token})
		assert.False(t, ok)
	})

	t.Run("deleted user", func(t *testing.T) {
		cookie := env.sessionCookie(t, time.Now().Add(time.Hour))
		env.mw = NewSession(env.sessions, store.NewMemoryUserStore(), env.codec, testLogger())
		_, ok := env.identity(t, cookie)
		assert.False(t, ok)
	})
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("without identity", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireAuth(next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/add-to-cart", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("with identity", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/add-to-cart", nil)
		r = r.WithContext(WithUser(r.Context(), &models.User{Username: "alice"}))
		w := httptest.NewRecorder()
		RequireAuth(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("plain user", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/admin/seed", nil)
		r = r.WithContext(WithUser(r.Context(), &models.User{Role: models.RoleUser}))
		w := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/admin/seed", nil)
		r = r.WithContext(WithUser(r.Context(), &models.User{Role: models.RoleAdmin}))
		w := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSessionExpired(t *testing.T) {
	env := newSessionEnv(t)

	_, ok := env.identity(t, env.sessionCookie(t, time.Now().Add(-time.Minute)))
	assert.False(t, ok)
}
