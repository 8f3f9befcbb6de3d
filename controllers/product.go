package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"webshop-backend/store"
)

// ProductController handles catalog reads.
type ProductController struct {
	Products store.ProductStore
	Logger   logrus.FieldLogger
}

// NewProductController creates a new ProductController.
func NewProductController(products store.ProductStore, logger logrus.FieldLogger) *ProductController {
	return &ProductController{
		Products: products,
		Logger:   logger,
	}
}

// GetProducts retrieves all products
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	products, err := pc.Products.FindAll(ctx)
	if err != nil {
		internalError(w, pc.Logger, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	// A malformed identifier cannot match any product, so it reads as 404.
	id, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := pc.Products.FindByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		internalError(w, pc.Logger, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}
