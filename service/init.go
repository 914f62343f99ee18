/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、仓库迁移与各业务服务的装配
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保数据库与仓库结构就绪后才装配业务服务并启动调度器
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres
 * @refs dev_docs/model.md
 */

package service

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cast"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taxihub-service/service/cache"
	"taxihub-service/service/cleaning"
	"taxihub-service/service/database"
	"taxihub-service/service/sampledata"
	"taxihub-service/service/scheduler"
	"taxihub-service/service/warehouse"
)

var (
	DB                      *gorm.DB
	GlobalCacheService      *cache.Service
	GlobalTripService       *TripService
	GlobalAnalyticsService  *AnalyticsService
	GlobalWarehouseLoader   *warehouse.Loader
	GlobalCleaningService   *cleaning.Service
	GlobalSchedulerService  *scheduler.CleaningScheduler
	GlobalSampleDataService *sampledata.Service
)

func init() {
	initDatabase()
	runMigrations()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		// 使用分离的环境变量构建连接字符串
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "nyc_taxi")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	log.Println("开始运行数据库迁移...")

	if err := database.AutoMigrate(DB); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	log.Println("数据库表结构迁移完成")

	if err := database.InitializeData(DB); err != nil {
		log.Fatalf("运营商基础数据初始化失败: %v", err)
	}
	log.Println("运营商基础数据初始化完成")

	if err := database.AutoMigrateView(DB); err != nil {
		log.Fatalf("行程明细视图迁移失败: %v", err)
	}
	log.Println("行程明细视图迁移完成")

	log.Println("所有数据库迁移任务完成")
}

// initServices 初始化服务
func initServices() {
	GlobalCacheService = cache.NewService()
	GlobalTripService = NewTripService(DB)
	GlobalAnalyticsService = NewAnalyticsService(DB, GlobalCacheService)

	batchSize := cast.ToInt(os.Getenv("WAREHOUSE_BATCH_SIZE"))
	GlobalWarehouseLoader = warehouse.NewLoader(DB, batchSize)
	GlobalCleaningService = cleaning.NewService(GlobalWarehouseLoader)

	GlobalSampleDataService = sampledata.NewService(time.Now().UnixNano())

	// 定时清洗完成后统一失效统计缓存
	GlobalSchedulerService = scheduler.NewCleaningScheduler(GlobalCleaningService)
	GlobalSchedulerService.SetAfterRun(GlobalAnalyticsService.InvalidateCache)
	if err := GlobalSchedulerService.StartScheduler(); err != nil {
		log.Printf("启动清洗任务调度器失败: %v", err)
	}

	log.Println("服务初始化完成")
}
