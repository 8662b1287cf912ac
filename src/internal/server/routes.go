package server

import (
	"commerce-admin-svc/src/clients"
	"commerce-admin-svc/src/internal/dependency"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(enableCORS)

	setupHealthEndpoint(deps)
	setupAPIRoutes(router, deps)
}

func setupHealthEndpoint(deps *dependency.Manager) {
	router := deps.Router
	mongodb := deps.Mongodb
	redisClient := deps.Redis
	cfg := deps.Config

	router.GET("/health", func(c *gin.Context) {
		log.Info("Health check endpoint requested")

		mongoStatus := "ok"
		if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
			mongoStatus = "error: " + err.Error()
		}

		redisStatus := "ok"
		if err := redisClient.Client.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error: " + err.Error()
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mongodb":   mongoStatus,
			"redis":     redisStatus,
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		log.Info("Detailed health check endpoint requested")

		c.JSON(200, gin.H{
			"status":  "operational",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
			"components": gin.H{
				"database": gin.H{
					"mongodb": getStatus(isMongoConnected(mongodb, c)),
					"redis":   getStatus(isRedisConnected(redisClient.Client, c)),
				},
				"services": gin.H{
					"auth":         "operational",
					"cache":        "operational",
					"activity-log": "operational",
				},
			},
		})
	})
}

func setupAPIRoutes(router *gin.Engine, deps *dependency.Manager) {
	authMiddleware := deps.AuthMiddleware

	router.GET("/api/v1/status", func(c *gin.Context) {
		log.Info("API status requested")
		c.JSON(200, gin.H{
			"api_version": "v1",
			"status":      "operational",
			"service":     "commerce-admin-svc",
		})
	})

	api := router.Group("/api/v1")
	api.Use(authMiddleware.Identify())
	{
		api.POST("/auth/login", deps.AuthHandler.Login)

		users := api.Group("/users")
		{
			users.POST("", deps.UserHandler.Create)
			users.GET("", deps.UserHandler.List)
			// Registered before /:id so "stats" is not parsed as an identifier.
			users.GET("/stats", deps.UserHandler.Stats)
			users.GET("/:id", deps.UserHandler.Get)
			users.PUT("/:id", deps.UserHandler.Update)
			users.DELETE("/:id", deps.UserHandler.Delete)
		}

		products := api.Group("/products")
		{
			products.POST("", deps.ProductHandler.Create)
			products.GET("", deps.ProductHandler.List)
			// Registered before /:id so "top" is not parsed as an identifier.
			products.GET("/top", deps.ProductHandler.Top)
			products.GET("/:id", deps.ProductHandler.Get)
			products.PUT("/:id", deps.ProductHandler.Update)
			products.DELETE("/:id", deps.ProductHandler.Delete)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", deps.OrderHandler.Create)
			orders.GET("", deps.OrderHandler.List)
			orders.GET("/:id", deps.OrderHandler.Get)
			orders.PUT("/:id", deps.OrderHandler.Update)
			orders.DELETE("/:id", deps.OrderHandler.Delete)
		}

		logs := api.Group("/activity-logs")
		{
			logs.GET("", deps.ActivityHandler.List)
			logs.GET("/top-activities", deps.ActivityHandler.TopActivities)
			logs.GET("/user/:userId", deps.ActivityHandler.ListByUser)
			logs.GET("/resource/:resource/:resourceId", deps.ActivityHandler.ListByResource)
			logs.GET("/:id", deps.ActivityHandler.GetByID)
		}

		uploads := api.Group("/uploads")
		{
			uploads.POST("/image", deps.UploadHandler.UploadImage)
			uploads.DELETE("/image", deps.UploadHandler.DeleteImage)
		}
	}
}

func isMongoConnected(mongodb *clients.MongoDB, c *gin.Context) bool {
	if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
		return false
	}
	return true
}

func isRedisConnected(redisClient *redis.Client, c *gin.Context) bool {
	if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
		return false
	}
	return true
}

func enableCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}

func getStatus(b bool) string {
	if b {
		return "connected"
	}
	return "disconnected"
}
