package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"webshop-backend/models"
)

// MongoSessionStore implements SessionStore on a MongoDB collection.
type MongoSessionStore struct {
	collection *mongo.Collection
}

// NewSessionStore creates a SessionStore backed by the "sessions" collection.
func NewSessionStore(db *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{
		collection: db.Collection("sessions"),
	}
}

// Create persists a new session record.
func (s *MongoSessionStore) Create(ctx context.Context, session *models.Session) error {
	_, err := s.collection.InsertOne(ctx, session)
	return err
}

// Find retrieves a session by its identifier.
func (s *MongoSessionStore) Find(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session record. Deleting an unknown id is not an error.
func (s *MongoSessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{"_id": id})
	return err
}
