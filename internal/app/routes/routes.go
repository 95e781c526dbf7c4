package routes

import (
	"time"

	"pgstay-http-service/internal/app/controllers"
	"pgstay-http-service/internal/app/middleware"
	"pgstay-http-service/internal/domain/services/container"
	"pgstay-http-service/internal/infrastructure/config"

	_ "pgstay-http-service/docs" // swagger文档，由swag init生成

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db, serviceContainer.GetRedisService())
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查的路由

	// 健康状态路由组
	healthGroup := api.Group("/health")
	healthGroup.GET("/status", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Second}), controllers.HandleHealthFunc(container, "status"))

	// 认证路由 - 登录注册限流较严，防止撞库
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.PathRateLimiter(5, 10))
	authGroup.POST("/register", controllers.HandleAuthFunc(container, "register"))
	authGroup.POST("/login", controllers.HandleAuthFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	api.Use(middleware.IPRateLimiter(30, 50))

	// 任意已登录用户可访问的路由
	authenticated := api.Group("/")
	authenticated.Use(middleware.Authenticate())
	authenticated.GET("/auth/me", controllers.HandleAuthFunc(container, "me"))
	authenticated.POST("/auth/logout", controllers.HandleAuthFunc(container, "logout"))
	authenticated.GET("/rooms", controllers.HandleRoomFunc(container, "getRooms"))
	authenticated.GET("/complaints", controllers.HandleComplaintFunc(container, "getComplaints"))

	// 房东路由
	landlord := api.Group("/")
	landlord.Use(middleware.AuthenticateLandlord())
	landlord.POST("/auth/create-tenant", controllers.HandleAuthFunc(container, "createTenant"))
	landlord.POST("/rooms", controllers.HandleRoomFunc(container, "createRoom"))
	landlord.GET("/tenants", controllers.HandleTenantFunc(container, "getTenants"))
	landlord.PATCH("/tenants/:id", controllers.HandleTenantFunc(container, "updateTenant"))
	landlord.DELETE("/tenants/:id", controllers.HandleTenantFunc(container, "deleteTenant"))
	landlord.PATCH("/complaints/:id", controllers.HandleComplaintFunc(container, "updateComplaint"))
	landlord.PATCH("/payments/:id", controllers.HandlePaymentFunc(container, "updatePaymentStatus"))

	// 租客路由
	tenant := api.Group("/")
	tenant.Use(middleware.AuthenticateTenant())
	tenant.GET("/tenants/me", controllers.HandleTenantFunc(container, "getMyProfile"))
	tenant.POST("/complaints", controllers.HandleComplaintFunc(container, "createComplaint"))
	paymentsGroup := tenant.Group("/payments")
	paymentsGroup.GET("/current-month", controllers.HandlePaymentFunc(container, "getCurrentMonthStatus"))
	paymentsGroup.GET("/status/:month", controllers.HandlePaymentFunc(container, "getMonthStatus"))
	paymentsGroup.POST("", controllers.HandlePaymentFunc(container, "submitPayment"))
}
