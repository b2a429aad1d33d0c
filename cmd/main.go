package main

import (
	"os"

	"github.com/jdu211109/UniLunch/config"
	"github.com/jdu211109/UniLunch/routes"
	"github.com/jdu211109/UniLunch/services"
	"github.com/jdu211109/UniLunch/utils"
)

func main() {
	config.LoadEnv()
	config.InitDB()
	utils.InitMailer()
	utils.InitS3()

	hub := services.NewRealtimeHub()
	services.InitOrderEvents(hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(hub)
	r.Run(":" + port)
}
