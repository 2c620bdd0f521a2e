package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const envFile = ".env.local"

// LoadEnv loads environment variables from .env.local if APP_ENV is "local".
// Variables already present in the process environment win over the file.
func LoadEnv() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
		os.Setenv("APP_ENV", appEnv)
	}

	if appEnv != "local" {
		log.Printf("Running in %s environment. Not loading %s.", appEnv, envFile)
		return
	}

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Warning: %s not found, or error loading: %v. Relying on system environment variables.", envFile, err)
		return
	}
	log.Printf("Loaded %s for local development.", envFile)
}
