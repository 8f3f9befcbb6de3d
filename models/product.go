package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents one catalog entry. Products are written only by the
// seeding routine; request handlers never mutate them.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Features    string             `bson:"features" json:"features"`
	Price       float64            `bson:"price" json:"price"`
	Keywords    string             `bson:"keywords" json:"keywords"`
	URL         string             `bson:"url" json:"url"`
	Category    string             `bson:"category" json:"category"`
	Subcategory string             `bson:"subcategory" json:"subcategory"`
	Images      string             `bson:"images" json:"images"`
}
