package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"webshop-backend/middleware"
	"webshop-backend/models"
	"webshop-backend/store"
	"webshop-backend/utils"
)

// ErrInvalidCredentials indicates that provided login credentials are incorrect.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthController handles login and logout.
type AuthController struct {
	Users      store.UserStore
	Sessions   store.SessionStore
	Codec      *utils.SessionCodec
	SessionTTL time.Duration
	Logger     logrus.FieldLogger
}

// NewAuthController creates a new AuthController.
func NewAuthController(users store.UserStore, sessions store.SessionStore, codec *utils.SessionCodec, sessionTTL time.Duration, logger logrus.FieldLogger) *AuthController {
	return &AuthController{
		Users:      users,
		Sessions:   sessions,
		Codec:      codec,
		SessionTTL: sessionTTL,
		Logger:     logger,
	}
}

// Authenticate verifies a username/password pair against the user store.
// An unknown username and a wrong password both yield ErrInvalidCredentials.
func (ac *AuthController) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := ac.Users.FindByUsername(ctx, username)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login handles user authentication and establishes a session.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(creds); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := ac.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		if err == ErrInvalidCredentials {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		internalError(w, ac.Logger, err)
		return
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(ac.SessionTTL),
	}
	if err := ac.Sessions.Create(ctx, session); err != nil {
		internalError(w, ac.Logger, err)
		return
	}

	token, err := ac.Codec.Sign(session.ID, session.ExpiresAt)
	if err != nil {
		internalError(w, ac.Logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged in",
		"user":    user,
	})
}

// Logout destroys the caller's session and clears the cookie.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookie)
	if err == nil && cookie.Value != "" {
		if sessionID, err := ac.Codec.Parse(cookie.Value); err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()
			if err := ac.Sessions.Delete(ctx, sessionID); err != nil {
				internalError(w, ac.Logger, err)
				return
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
