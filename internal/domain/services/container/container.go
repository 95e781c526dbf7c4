package container

import (
	"log"
	"sync"

	"pgstay-http-service/internal/domain/services"
	"pgstay-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 业务服务
	userService      services.InterfaceUserService
	roomService      services.InterfaceRoomService
	tenantService    services.InterfaceTenantService
	complaintService services.InterfaceComplaintService
	paymentService   services.InterfacePaymentService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)

	// Redis未启用时注销令牌黑名单不可用
	if c.config.RedisEnabled {
		c.redisService = services.NewRedisService(c.config)
		if err := c.redisService.Ping(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用令牌黑名单", err)
			c.redisService = nil
		}
	}

	// 初始化业务服务
	c.userService = services.NewUserService(c.db, c.config)
	c.roomService = services.NewRoomService(c.db, c.config)
	c.tenantService = services.NewTenantService(c.db, c.config)
	c.complaintService = services.NewComplaintService(c.db, c.config)
	c.paymentService = services.NewPaymentService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "user":
		return c.userService
	case "room":
		return c.roomService
	case "tenant":
		return c.tenantService
	case "complaint":
		return c.complaintService
	case "payment":
		return c.paymentService
	default:
		return nil
	}
}

// GetRedisService 获取Redis服务，未启用时返回nil
func (c *ServiceContainer) GetRedisService() services.InterfaceRedisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redisService
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
