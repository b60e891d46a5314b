// Package config loads runtime configuration from environment variables.
// A local .env file is honoured when present; every value has a default so
// the service boots with the in-memory store and no broker out of the box.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"share-auction/utils"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

// Config holds all runtime configuration values.
type Config struct {
	Port    string // HTTP port to listen on
	Storage string // "memory" or "mysql"

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	AMQPURL     string // empty disables event publishing
	RunNotifier bool   // start the stand-in notifier consumer

	BidWindowHours int // default bid collection window
}

// Load reads configuration from the environment. When STORAGE=mysql the
// database coordinates are required and missing values are fatal.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getenv("APP_PORT", "8080"),
		Storage:        getenv("STORAGE", StorageMemory),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         os.Getenv("DB_NAME"),
		AMQPURL:        os.Getenv("AMQP_URL"),
		RunNotifier:    getbool("RUN_NOTIFIER"),
		BidWindowHours: getint("BID_WINDOW_HOURS", 72),
	}

	if cfg.Storage != StorageMemory && cfg.Storage != StorageMySQL {
		utils.Fatal("invalid STORAGE value", map[string]any{"storage": cfg.Storage})
	}
	if cfg.Storage == StorageMySQL {
		if cfg.DBUser == "" || cfg.DBName == "" {
			utils.Fatal("STORAGE=mysql requires DB_USER and DB_NAME", nil)
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.Fatal("invalid integer env var", map[string]any{"key": key, "value": v})
	}
	return n
}

func getbool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
