package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"webshop-backend/middleware"
	"webshop-backend/store"
)

// CartController handles cart mutations on the authenticated user.
type CartController struct {
	Products store.ProductStore
	Users    store.UserStore
	Logger   logrus.FieldLogger
}

// NewCartController creates a new CartController.
func NewCartController(products store.ProductStore, users store.UserStore, logger logrus.FieldLogger) *CartController {
	return &CartController{
		Products: products,
		Users:    users,
		Logger:   logger,
	}
}

// AddToCart adds a product to the authenticated user's cart. Adding a
// product already in the cart increments that line's quantity.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		ProductID string `json:"productId" validate:"required"`
		Quantity  int    `json:"quantity" validate:"gte=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	quantity := body.Quantity
	if quantity < 1 {
		quantity = 1
	}

	// A malformed identifier cannot match any product, so it reads as 404.
	productID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := cc.Products.FindByID(ctx, productID); err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		internalError(w, cc.Logger, err)
		return
	}

	updated, err := cc.Users.AddCartLine(ctx, user.ID, productID, quantity)
	if err != nil {
		internalError(w, cc.Logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item added to the cart",
		"user":    updated,
	})
}
