// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"webshop-backend/config"
	"webshop-backend/controllers"
	"webshop-backend/middleware"
	"webshop-backend/routes"
	"webshop-backend/seed"
	"webshop-backend/store"
	"webshop-backend/utils"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatalf("connect mongodb: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Errorf("disconnect mongodb: %v", err)
		}
	}()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatalf("ping mongodb: %v", err)
	}

	db := client.Database(cfg.Mongo.Database)
	productStore := store.NewProductStore(db)
	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)

	seeder := seed.NewSeeder(productStore, cfg.Seed.File, logger)

	// "seed" subcommand: replace the catalog from the seed file and exit.
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		count, err := seeder.Seed(ctx)
		if err != nil {
			logger.Fatalf("seed database: %v", err)
		}
		logger.Infof("seeded %d products", count)
		return
	}

	codec := utils.NewSessionCodec(cfg.Session.Secret)

	// Initialize controllers
	authController := controllers.NewAuthController(userStore, sessionStore, codec, cfg.Session.TTL, logger)
	productController := controllers.NewProductController(productStore, logger)
	cartController := controllers.NewCartController(productStore, userStore, logger)
	adminController := controllers.NewAdminController(seeder, logger)

	// Set up the router
	router := mux.NewRouter()
	session := middleware.NewSession(sessionStore, userStore, codec, logger)
	routes.RegisterRoutes(router, session, authController, productController, cartController, adminController)

	addr := ":" + cfg.Server.Port
	if cfg.Server.CertFile == "" || cfg.Server.KeyFile == "" {
		logger.Warn("no TLS certificate configured, serving plain HTTP")
		logger.Infof("server is running at http://localhost%s", addr)
		logger.Fatal(http.ListenAndServe(addr, router))
	}

	logger.Infof("server is running at https://localhost%s", addr)
	logger.Fatal(http.ListenAndServeTLS(addr, cfg.Server.CertFile, cfg.Server.KeyFile, router))
}
