// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration knobs for the HTTP server and stores.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	UserDBPath      string
	BcryptCost      int
	PublicDir       string
	LoginDir        string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from the environment with defaults. A .env
// file in the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":3000"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 5),
		UserDBPath:      getenv("USER_DB_PATH", "users.db"),
		BcryptCost:      atoienv("BCRYPT_COST", 10),
		PublicDir:       getenv("PUBLIC_DIR", "public"),
		LoginDir:        getenv("LOGIN_DIR", "login"),
	}
}
