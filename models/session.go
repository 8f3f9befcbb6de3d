package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session associates an opaque token handed to the client with a user
// identity. Records live in the session store so identity survives process
// restarts.
type Session struct {
	ID        string             `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
