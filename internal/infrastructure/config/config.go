package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config 保存服务运行所需的全部配置，统一从环境变量读取
type Config struct {
	// 服务器配置
	ServerPort string
	LogDir     string

	// 数据库配置
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBMigrationMode string // auto 或 drop

	// Redis配置
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT配置
	JWTSecretKey       string
	JWTExpirationHours int

	// 头像文件存储目录
	UploadDir string

	// 初始管理员账户密码（仅在账户不存在时使用）
	DefaultAdminPassword string
}

var (
	instance *Config
	once     sync.Once
)

// LoadConfig 从环境变量加载配置
func LoadConfig() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogDir:     getEnv("LOG_DIR", "logs"),

		DBHost:          getEnvRequired("DB_HOST"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnvRequired("DB_USER"),
		DBPassword:      getEnvRequired("DB_PASSWORD"),
		DBName:          getEnvRequired("DB_NAME"),
		DBMigrationMode: getEnv("DB_MIGRATION_MODE", "auto"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		JWTSecretKey:       getEnvRequired("JWT_SECRET_KEY"),
		JWTExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),

		UploadDir: getEnv("UPLOAD_DIR", "profile_pictures"),

		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
	}
}

// GetConfig 获取全局配置单例
func GetConfig() *Config {
	once.Do(func() {
		instance = LoadConfig()
	})
	return instance
}

// GetDSN 获取MySQL连接字符串
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisAddr 获取Redis地址，未配置时返回空字符串
func (c *Config) GetRedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// getEnv 获取环境变量，不存在时返回默认值
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvRequired 获取必需的环境变量，不存在时panic
func getEnvRequired(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		panic(fmt.Sprintf("必需的环境变量 %s 未设置", key))
	}
	return value
}

// getEnvAsInt 获取整数类型的环境变量
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
