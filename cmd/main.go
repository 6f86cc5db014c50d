package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ballotwise/ballotwise-backend/internal/app"
)

func main() {
	// Missing .env is fine in containers; real env vars win either way.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		a.Log.Error("HTTP server exited", "error", err)
		os.Exit(1)
	}
}
