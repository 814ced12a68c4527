package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads the .env file into the process environment.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
		return err
	}
	return nil
}

// GetEnv returns the value of an environment variable or a default.
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
