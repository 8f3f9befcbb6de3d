package routes

import (
	"github.com/gorilla/mux"

	"webshop-backend/controllers"
	"webshop-backend/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, session *middleware.Session, authController *controllers.AuthController, productController *controllers.ProductController, cartController *controllers.CartController, adminController *controllers.AdminController) {
	// Session resolution runs on every request; routes decide whether an
	// identity is required.
	router.Use(session.Middleware)

	// Public routes
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{productId}", productController.GetProductByID).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.RequireAuth)
	protected.HandleFunc("/logout", authController.Logout).Methods("POST")
	protected.HandleFunc("/add-to-cart", cartController.AddToCart).Methods("POST")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAuth)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/seed", adminController.SeedDatabase).Methods("POST")
}
