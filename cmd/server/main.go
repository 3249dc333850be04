package main

import (
	"github.com/joho/godotenv"

	"talent/internal/app/server"
)

func main() {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	server.Run()
}
