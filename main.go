package main

import (
	"log"

	"barnearbeid/config"
	_ "barnearbeid/docs"
	"barnearbeid/routes"
	"barnearbeid/services"

	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	router := gin.Default()

	if err := config.LoadEnv(); err != nil {
		log.Println("Fant ingen .env-fil, bruker miljøvariabler")
	}

	config.ConnectDB()

	config.ConnectCloudinary()

	redisCli, err := config.ConnectRedis()
	if err != nil {
		panic("Failed to connect to Redis!")
	}

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}

	router.Use(cors.New(configCors))

	routes.SetupRoutes(router, config.DB, redisCli, config.Cloudinary)

	services.InitializeRatingScheduler()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Run(":" + config.GetEnv("PORT", "8083"))
}
