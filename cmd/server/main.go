package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Hariokas/PersonRegistrationSystem/internal/app/routes"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/config"
	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/database"
	"github.com/Hariokas/PersonRegistrationSystem/pkg/logger"
	"github.com/Hariokas/PersonRegistrationSystem/utils"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// @title           Person Registration Service API
// @version         1.0
// @description     人员登记服务：账户、人员档案和居住地址管理
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// .env不存在时直接使用进程环境变量
	if err := godotenv.Load(); err != nil {
		fmt.Println("未找到.env文件，使用进程环境变量")
	}

	cfg := config.GetConfig()

	if err := logger.SetupLogger(cfg.LogDir); err != nil {
		fmt.Printf("日志系统初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		logger.Error("数据库初始化失败: %v", err)
		os.Exit(1)
	}
	defer pool.Close()
	db := pool.GetDB()

	if err := migrate(db, cfg.DBMigrationMode); err != nil {
		logger.Error("数据库迁移失败: %v", err)
		os.Exit(1)
	}

	if err := ensureAdminExists(db, cfg); err != nil {
		logger.Error("初始化管理员账户失败: %v", err)
		os.Exit(1)
	}

	redisClient := newRedisClient(cfg)

	router := routes.SetupRouter(db, cfg, redisClient)
	addr := ":" + cfg.ServerPort
	logger.Info("服务启动，监听 %s", addr)
	if err := router.Run(addr); err != nil {
		logger.Error("服务退出: %v", err)
		os.Exit(1)
	}
}

// migrate 执行数据库迁移。
// auto 增量建表，drop 先删全部业务表再重建（仅用于开发环境）。
func migrate(db *gorm.DB, mode string) error {
	if mode == "drop" {
		logger.Warning("迁移模式为drop，将删除并重建全部业务表")
		if err := db.Migrator().DropTable(&models.Residence{}, &models.Person{}, &models.User{}); err != nil {
			return err
		}
	}
	return db.AutoMigrate(&models.User{}, &models.Person{}, &models.Residence{})
}

// ensureAdminExists 确保系统中存在管理员账户。
// 仅在admin账户不存在且配置了初始密码时创建。
func ensureAdminExists(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.DefaultAdminPassword == "" {
		logger.Warning("系统中没有管理员账户，且未配置DEFAULT_ADMIN_PASSWORD")
		return nil
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		return err
	}
	digest, err := utils.HashPassword(cfg.DefaultAdminPassword, salt)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin1",
		Password: digest,
		Salt:     salt,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("已创建初始管理员账户: %s", admin.Username)
	return nil
}

// newRedisClient 创建Redis客户端，未配置或连不上时返回nil，服务降级运行
func newRedisClient(cfg *config.Config) *redis.Client {
	addr := cfg.GetRedisAddr()
	if addr == "" {
		logger.Info("未配置Redis，跳过缓存初始化")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warning("Redis连接失败，缓存降级: %v", err)
		client.Close()
		return nil
	}
	logger.Info("Redis连接成功: %s", addr)
	return client
}
