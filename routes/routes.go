package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/v900meme-wq/room-api/controllers"
	"github.com/v900meme-wq/room-api/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", middleware.RateLimitLogin(), controllers.Login)
		}

		users := api.Group("/users")
		users.Use(middleware.AuthJWT())
		{
			users.POST("", middleware.RequireAdmin(), controllers.CreateUser)
			users.GET("", middleware.RequireAdmin(), controllers.ListUsers)
			users.GET("/:id", controllers.GetUser) // user thường chỉ xem được chính mình
			users.PATCH("/:id", middleware.RequireAdmin(), controllers.UpdateUser)
			users.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteUser)
		}

		houses := api.Group("/houses")
		houses.Use(middleware.AuthJWT())
		{
			houses.POST("", controllers.CreateHouse)
			houses.GET("", controllers.ListHouses)
			houses.GET("/:id", middleware.CheckHouseOwner(), controllers.GetHouse)
			houses.PATCH("/:id", middleware.CheckHouseOwner(), controllers.UpdateHouse)
			houses.DELETE("/:id", middleware.CheckHouseOwner(), controllers.DeleteHouse)
		}

		rooms := api.Group("/rooms")
		rooms.Use(middleware.AuthJWT())
		{
			rooms.POST("", controllers.CreateRoom)
			rooms.GET("", controllers.ListRooms)
			rooms.GET("/:id", middleware.CheckRoomOwner(), controllers.GetRoom)
			rooms.PATCH("/:id", middleware.CheckRoomOwner(), controllers.UpdateRoom)
			rooms.DELETE("/:id", middleware.CheckRoomOwner(), controllers.DeleteRoom)
		}

		payments := api.Group("/payments")
		payments.Use(middleware.AuthJWT())
		{
			payments.POST("", controllers.CreatePayment)
			payments.GET("", controllers.ListPayments)
			payments.GET("/room/:roomId/recent", controllers.GetRecentPaymentsByRoom)
			payments.GET("/:id", middleware.CheckPaymentOwner(), controllers.GetPayment)
			payments.PATCH("/:id", middleware.CheckPaymentOwner(), controllers.UpdatePayment)
			payments.DELETE("/:id", middleware.CheckPaymentOwner(), controllers.DeletePayment)
		}

		prices := api.Group("/prices")
		prices.Use(middleware.AuthJWT())
		{
			prices.GET("", controllers.ListPrices)
			prices.GET("/:id", controllers.GetPrice)
			prices.POST("", middleware.RequireAdmin(), controllers.CreatePrice)
			prices.PATCH("/:id", middleware.RequireAdmin(), controllers.UpdatePrice)
			prices.DELETE("/:id", middleware.RequireAdmin(), controllers.DeletePrice)
		}

		auditLogs := api.Group("/audit-logs")
		auditLogs.Use(middleware.AuthJWT(), middleware.RequireAdmin())
		{
			auditLogs.GET("", controllers.ListAuditLogs)
			auditLogs.GET("/entity", controllers.ListAuditLogsByEntity)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthJWT(), middleware.RequireAdmin())
		{
			admin.GET("/dashboard", controllers.GetDashboard)
			admin.GET("/users/stats", controllers.GetUserStats)
			admin.GET("/houses/stats", controllers.GetHouseStats)
			admin.GET("/rooms/stats", controllers.GetRoomStats)
		}
	}
}
