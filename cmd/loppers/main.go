package main

import (
	"github.com/joho/godotenv"

	"github.com/mvp-joe/loppers/internal/cli"
)

func main() {
	// LOPPERS_* settings may live in a .env file in the working directory.
	_ = godotenv.Load()

	cli.Execute()
}
