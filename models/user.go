package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// CartLine is one product-quantity pairing in a user's cart. At most one
// line exists per product; adding the same product again increments the
// quantity instead of appending a duplicate.
type CartLine struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// User represents a user in the system. The cart is embedded in the user
// document. Password holds a bcrypt hash and is never serialized into
// responses.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"` // "user" or "admin"
	Cart     []CartLine         `bson:"cart" json:"cart"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
