// main.go
package main

import (
	"log"

	"github.com/nanuputtu02/VOTEMATE/config"
	"github.com/nanuputtu02/VOTEMATE/routes"
)

func main() {
	config.LoadConfig()
	config.ConnectDatabase()

	router := routes.SetupRouter()

	log.Printf("Starting server on http://localhost:%s", config.Port)
	if err := router.Run(":" + config.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
