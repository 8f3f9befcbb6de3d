package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"webshop-backend/models"
)

// MongoUserStore implements UserStore on a MongoDB collection.
type MongoUserStore struct {
	collection *mongo.Collection
}

// NewUserStore creates a UserStore backed by the "users" collection.
func NewUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{
		collection: db.Collection("users"),
	}
}

// FindByID retrieves a user by identifier.
func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername retrieves a user by its unique username.
func (s *MongoUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddCartLine performs an atomic increment-or-insert on the embedded cart.
func (s *MongoUserStore) AddCartLine(ctx context.Context, userID, productID primitive.ObjectID, qty int) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// Increment the existing line if one matches.
	user, err := s.findOneAndUpdate(ctx,
		bson.M{"_id": userID, "cart.productId": productID},
		bson.M{"$inc": bson.M{"cart.$.quantity": qty}},
		opts)
	if err == nil || err != ErrNotFound {
		return user, err
	}

	// No line yet. The $ne guard keeps a concurrent adder from pushing a
	// second line for the same product.
	user, err = s.findOneAndUpdate(ctx,
		bson.M{"_id": userID, "cart.productId": bson.M{"$ne": productID}},
		bson.M{"$push": bson.M{"cart": models.CartLine{ProductID: productID, Quantity: qty}}},
		opts)
	if err == nil || err != ErrNotFound {
		return user, err
	}

	// A concurrent adder inserted the line between the two updates; retry
	// the increment. ErrNotFound here means the user itself is gone.
	return s.findOneAndUpdate(ctx,
		bson.M{"_id": userID, "cart.productId": productID},
		bson.M{"$inc": bson.M{"cart.$.quantity": qty}},
		opts)
}

func (s *MongoUserStore) findOneAndUpdate(ctx context.Context, filter, update bson.M, opts *options.FindOneAndUpdateOptions) (*models.User, error) {
	var user models.User
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
