package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"webshop-backend/models"
)

// MongoProductStore implements ProductStore on a MongoDB collection.
type MongoProductStore struct {
	collection *mongo.Collection
}

// NewProductStore creates a ProductStore backed by the "products" collection.
func NewProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{
		collection: db.Collection("products"),
	}
}

// FindByID retrieves a single product by its identifier.
func (s *MongoProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAll retrieves every product in store iteration order.
func (s *MongoProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// DeleteAll removes every product. Used only by seeding.
func (s *MongoProductStore) DeleteAll(ctx context.Context) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{})
	return err
}

// InsertMany bulk-inserts products. Used only by seeding.
func (s *MongoProductStore) InsertMany(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	_, err := s.collection.InsertMany(ctx, docs)
	return err
}
