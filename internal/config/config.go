package config

import (
	"os"
	"strings"
)

// Config is pass-through environment configuration; presence of MongoURI
// is what selects the durable store over the in-memory fallback.
type Config struct {
	Addr      string
	MongoURI  string
	Database  string
	APIBase   string
	DevStatic bool
}

func Default() *Config {
	return &Config{
		Addr:     ":8080",
		Database: "taskboard",
	}
}

// FromEnv loads configuration from environment variables, falling back
// to defaults when unset.
func FromEnv() *Config {
	cfg := Default()

	if v := getEnv("TASKBOARD_ADDR"); v != "" {
		cfg.Addr = v
	} else if p := getEnv("PORT"); p != "" {
		cfg.Addr = ":" + p
	}
	if v := getEnv("MONGODB_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := getEnv("TASKBOARD_DB"); v != "" {
		cfg.Database = v
	}
	if v := getEnv("TASKBOARD_API_BASE"); v != "" {
		cfg.APIBase = v
	}
	cfg.DevStatic = getEnvBool("TASKBOARD_DEV_STATIC")

	return cfg
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvBool(key string) bool {
	switch strings.ToLower(getEnv(key)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
