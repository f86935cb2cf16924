package main

import (
	"os"

	"github.com/joho/godotenv"

	"rental-marketplace/internal/commands"
	"rental-marketplace/internal/logging"
)

func main() {
	_ = godotenv.Load()

	log := logging.New(envOr("APP_NAME", "rentals"), os.Getenv("LOG_LEVEL"), os.Stdout)
	rt := commands.NewRuntime(log)

	err := commands.RootCmd(rt).Execute()
	if cerr := rt.Close(); cerr != nil {
		log.WithError(cerr).Warn("failed to close database")
	}
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
