package main

import (
	"os"

	"github.com/paccolajoao/yazio-consumer/config"
	"github.com/paccolajoao/yazio-consumer/routes"
	"github.com/paccolajoao/yazio-consumer/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	r.Run(":" + port)
}
