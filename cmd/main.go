package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/middleware"
	"github.com/v900meme-wq/room-api/routes"
	"github.com/v900meme-wq/room-api/utils"
)

func main() {
	cfg := config.Load()
	log := utils.GetLogger()
	defer log.Sync()

	// Kết nối DB + AutoMigrate
	config.ConnectDB(cfg)

	// Tạo instance router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	// Setup routes
	routes.SetupRoutes(r)

	log.Info("Server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
