// @title           PGStay HTTP Service API
// @version         1.0
// @description     A paying-guest accommodation management system: rooms, tenants, complaints and rent payments
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@pgstay.in

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"pgstay-http-service/internal/app/routes"
	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/domain/services"
	"pgstay-http-service/internal/infrastructure/config"
	"pgstay-http-service/internal/infrastructure/database"
	Logger "pgstay-http-service/pkg/logger"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 设置最大处理器数量，提高并发性能
	runtime.GOMAXPROCS(runtime.NumCPU())

	// 初始化日志配置
	if err := Logger.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		Logger.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		Logger.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 创建数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("无法创建数据库连接池: %v", err)
	}
	db := pool.GetDB()

	// 根据配置执行不同的数据库操作
	if cfg.DBMigrationMode == "drop" {
		// 删除并重建表
		log.Println("警告: 在drop模式下运行，将删除并重建所有表")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("删除并重建表失败: %v", err)
		}
	} else {
		// 默认AutoMigrate，只会添加新列和新表，不会删除或修改列
		log.Println("在标准模式下运行，将只添加新列和新表")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("自动迁移失败: %v", err)
		}
	}

	// 确保系统中有默认房东账号
	ensureLandlordExists(db, cfg)

	// 初始化路由
	r := routes.SetupRouter(db, cfg)

	// 使用配置中的端口
	port := cfg.ServerPort

	// 打印系统信息
	printSystemInfo(pool)

	// 启动服务器 - 监听所有接口(0.0.0.0)而不是只监听localhost
	Logger.Info("服务器启动在: http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		Logger.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// autoMigrate 自动迁移所有模型（只添加新列和新表）
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Room{},
		&models.User{},
		&models.Complaint{},
		&models.Payment{},
	)

	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	err := db.Migrator().DropTable(
		&models.Payment{},
		&models.Complaint{},
		&models.User{},
		&models.Room{},
	)
	if err != nil {
		return err
	}

	return autoMigrate(db)
}

// ensureLandlordExists 确保系统中有默认房东账号
func ensureLandlordExists(db *gorm.DB, cfg *config.Config) {
	userService := services.NewUserService(db, cfg)
	if err := userService.EnsureDefaultLandlord(
		cfg.DefaultLandlordUsername,
		cfg.DefaultLandlordPassword,
		cfg.DefaultLandlordName,
	); err != nil {
		Logger.Error("创建默认房东账号失败: %v", err)
	}
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	Logger.Info("CPU核心数: %d", runtime.NumCPU())

	stats, err := pool.Stats()
	if err != nil {
		Logger.Warning("获取连接池统计信息失败: %v", err)
		return
	}
	Logger.Info("数据库连接池: 最大连接数=%v, 当前连接数=%v", stats["max_open_connections"], stats["open_connections"])
}
