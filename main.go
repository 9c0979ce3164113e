package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/dstepanov/warehouse-api/cmd/app"
)

// @securityDefinitions.basic BasicAuth
// @description Username and password of a registered account.
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
