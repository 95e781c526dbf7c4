package controllers

import (
	"pgstay-http-service/internal/domain/services/container"
	"pgstay-http-service/internal/error/code"
	"pgstay-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// HealthController 处理健康检查请求
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController 创建一个新的健康检查控制器
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// Ping 健康检查端点
// @Summary      服务存活检查
// @Description  检查服务是否在运行
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /ping [get]
func (c *HealthController) Ping() {
	response.Success(c.Ctx, gin.H{
		"message": "pong",
		"status":  "healthy",
	})
}

// Status 健康状态端点，报告数据库和Redis的连接状态
// @Summary      服务健康状态
// @Description  检查数据库和Redis连接状态
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health/status [get]
func (c *HealthController) Status() {
	dbStatus := "ok"
	sqlDB, err := c.Container.GetDB().DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}

	redisStatus := "disabled"
	if redisService := c.Container.GetRedisService(); redisService != nil {
		redisStatus = "ok"
		if err := redisService.Ping(); err != nil {
			redisStatus = "unavailable"
		}
	}

	response.Success(c.Ctx, gin.H{
		"database": dbStatus,
		"redis":    redisStatus,
	})
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}
