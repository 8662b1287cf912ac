package dependency

import (
	"commerce-admin-svc/src/clients"
	"commerce-admin-svc/src/internal/activity"
	"commerce-admin-svc/src/internal/auth"
	"commerce-admin-svc/src/internal/cache"
	"commerce-admin-svc/src/internal/config"
	"commerce-admin-svc/src/internal/middleware"
	"commerce-admin-svc/src/internal/order"
	"commerce-admin-svc/src/internal/product"
	"commerce-admin-svc/src/internal/upload"
	"commerce-admin-svc/src/internal/user"

	"github.com/gin-gonic/gin"
)

// Manager owns every constructed component. The store clients are built
// once at startup and injected here; nothing reaches for a global handle.
type Manager struct {
	Router   *gin.Engine
	Config   *config.Configuration
	Mongodb  *clients.MongoDB
	Redis    *clients.RedisClient
	RabbitMQ *clients.RabbitMQ

	CacheService cache.Service

	ActivityRecorder activity.Recorder
	ActivityService  activity.Service
	ActivityHandler  activity.Handler

	UserService user.Service
	UserHandler user.Handler

	ProductRepository product.Repository
	ProductService    product.Service
	ProductHandler    product.Handler

	OrderService order.Service
	OrderHandler order.Handler

	AuthService    auth.Service
	AuthHandler    auth.Handler
	AuthMiddleware *middleware.AuthMiddleware

	UploadHandler upload.Handler
}

func NewDependencyManager(router *gin.Engine,
	mongodb *clients.MongoDB,
	redisClient *clients.RedisClient,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {

	cacheService := cache.NewCacheService(redisClient.Client, cfg)

	activityRepo := activity.NewRepository(mongodb, cfg.Database.Collections.ActivityLogs)
	activityPublisher := activity.NewPublisher(rabbitMQ.Channel, cfg)
	activityRecorder := activity.NewRecorder(activityRepo, activityPublisher, cfg)
	activityService := activity.NewService(activityRepo, cfg)
	activityHandler := activity.NewHandler(cfg, activityService, cacheService)

	userRepo := user.NewUserRepository(mongodb, cfg.Database.Collections.Users)
	userService := user.NewUserService(userRepo, activityRecorder, cfg)
	userHandler := user.NewHandler(cfg, userService)

	productRepo := product.NewProductRepository(mongodb, cfg.Database.Collections.Products)
	productService := product.NewProductService(productRepo, activityRecorder, cfg)
	productHandler := product.NewHandler(cfg, productService)

	orderRepo := order.NewOrderRepository(mongodb, cfg.Database.Collections.Orders)
	orderService := order.NewOrderService(orderRepo, activityRecorder, cfg)
	orderHandler := order.NewHandler(cfg, orderService)

	authService := auth.NewAuthService(userService, cfg)
	authHandler := auth.NewHandler(cfg, authService)
	authMiddleware := middleware.NewAuthMiddleware(cfg.Security.JwtKey)

	uploadHandler := upload.NewHandler(cfg)

	return &Manager{
		Router:   router,
		Config:   cfg,
		Mongodb:  mongodb,
		Redis:    redisClient,
		RabbitMQ: rabbitMQ,

		CacheService: cacheService,

		ActivityRecorder: activityRecorder,
		ActivityService:  activityService,
		ActivityHandler:  activityHandler,

		UserService: userService,
		UserHandler: userHandler,

		ProductRepository: productRepo,
		ProductService:    productService,
		ProductHandler:    productHandler,

		OrderService: orderService,
		OrderHandler: orderHandler,

		AuthService:    authService,
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,

		UploadHandler: uploadHandler,
	}
}
