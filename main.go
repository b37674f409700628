package main

import (
	"github.com/joho/godotenv"

	"edacli/cmd"
)

func main() {
	// .env is optional; absence is the normal case outside development.
	_ = godotenv.Load()
	cmd.Execute()
}
