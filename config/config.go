package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Port     string
		CertFile string
		KeyFile  string
	}
	Mongo struct {
		URI      string
		Database string
	}
	Session struct {
		Secret string
		TTL    time.Duration
	}
	Seed struct {
		File string
	}
}

// Load reads configuration from environment variables and an optional config file.
func Load() (Config, error) {
	// Load .env first so viper sees its values through the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("WEBSHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.certfile", "")
	v.SetDefault("server.keyfile", "")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "webshop")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 14*24*time.Hour)
	v.SetDefault("seed.file", "products.json")

	// Bare PORT is honored the way the hosting environment supplies it.
	_ = v.BindEnv("server.port", "WEBSHOP_SERVER_PORT", "PORT")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Session.Secret == "" {
		return Config{}, fmt.Errorf("session secret is required (WEBSHOP_SESSION_SECRET)")
	}

	return cfg, nil
}
