// Package config loads .env files and exposes typed env getters shared by
// both report commands.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tlandry-heckleandcode/ai-news/lib/logger"
)

// LoadEnv tries the usual .env locations. Running without any .env file is
// fine when the variables come from the environment itself.
func LoadEnv() {
	err := godotenv.Load(".env")
	if err != nil {
		err = godotenv.Load("config/.env")
		if err != nil {
			err = godotenv.Load("../.env")
			if err != nil {
				log.Printf("No .env file found, using environment variables")
			}
		}
	}
}

func Get(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func GetFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %g", key, value, defaultValue)
		return defaultValue
	}
	return f
}

// GetBool treats only the literal string "true" (any case) as true.
func GetBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

// GetList splits a comma-separated variable, trimming blanks.
func GetList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// LogOpts assembles logger options from LOG_* variables.
func LogOpts(defaultPath string) logger.Options {
	return logger.Options{
		Path:       Get("LOG_PATH", defaultPath),
		MaxSizeMB:  GetInt("LOG_MAX_SIZE", 10),
		MaxBackups: GetInt("LOG_MAX_BACKUPS", 5),
		MaxAgeDays: GetInt("LOG_MAX_AGE", 30),
		Level:      logger.ParseLevel(Get("LOG_LEVEL", "INFO")),
	}
}
