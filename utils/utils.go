package utils

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// GoDotEnvVariable reads an environment variable, loading .env first when
// present. A missing .env file is fine; deployments set real env vars.
func GoDotEnvVariable(key string) string {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Could not load .env file")
	}
	return os.Getenv(key)
}
