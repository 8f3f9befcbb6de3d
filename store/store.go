package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"webshop-backend/models"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("not found")

// ProductStore persists catalog entries.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, products []models.Product) error
}

// UserStore persists user records, cart included.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// AddCartLine increments the quantity of the user's cart line for
	// productID by qty, inserting the line when absent, and returns the
	// updated user. The update is a conditional increment-or-insert at the
	// store level, not a read-modify-write, so concurrent adds for the same
	// user cannot lose updates or duplicate lines.
	AddCartLine(ctx context.Context, userID, productID primitive.ObjectID, qty int) (*models.User, error)
}

// SessionStore persists login sessions keyed by their opaque identifier.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}
