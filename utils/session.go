package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// SessionClaims represents the claims carried by a session cookie. The
// cookie only transports the server-side session id; identity is always
// resolved by looking the session up in the session store.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

// SessionCodec signs and verifies session cookie values.
type SessionCodec struct {
	key []byte
}

// NewSessionCodec creates a codec using the given signing secret.
func NewSessionCodec(secret string) *SessionCodec {
	return &SessionCodec{key: []byte(secret)}
}

// Sign produces a signed token carrying the session id.
func (c *SessionCodec) Sign(sessionID string, expiresAt time.Time) (string, error) {
	claims := &SessionClaims{
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.key)
}

// Parse verifies a token and returns the session id it carries.
func (c *SessionCodec) Parse(tokenStr string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.key, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	return claims.SessionID, nil
}
