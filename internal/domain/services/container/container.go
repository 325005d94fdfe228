package container

import (
	"sync"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services"
	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/config"
	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/storage"
	"github.com/Hariokas/PersonRegistrationSystem/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 服务容器，统一创建和获取各业务服务
type ServiceContainer struct {
	db          *gorm.DB
	config      *config.Config
	redisClient *redis.Client

	jwtService       services.InterfaceJWTService
	redisService     services.InterfaceRedisService
	resolver         services.InterfaceOwnershipResolver
	userService      services.InterfaceUserService
	personService    services.InterfacePersonService
	residenceService services.InterfaceResidenceService
	pictureStore     storage.InterfacePictureStore

	mu sync.RWMutex
}

// NewServiceContainer 创建服务容器并初始化全部服务。
// redisClient可为nil，此时角色查询不走缓存。
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	c := &ServiceContainer{
		db:          db,
		config:      cfg,
		redisClient: redisClient,
	}
	c.initializeServices()
	return c
}

// initializeServices 按依赖顺序初始化服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.redisClient != nil {
		c.redisService = services.NewRedisService(c.redisClient)
	} else {
		logger.Warning("未配置Redis，角色查询将直连数据库")
	}

	c.pictureStore = storage.NewLocalPictureStore(c.config.UploadDir)
	c.jwtService = services.NewJWTService(c.config)
	c.resolver = services.NewOwnershipResolver(c.db)
	c.userService = services.NewUserService(c.db, c.redisService, c.pictureStore)
	c.personService = services.NewPersonService(c.db, c.resolver, c.pictureStore)
	c.residenceService = services.NewResidenceService(c.db, c.resolver)
}

// GetService 按名称获取服务实例
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "resolver":
		return c.resolver
	case "user":
		return c.userService
	case "person":
		return c.personService
	case "residence":
		return c.residenceService
	case "picture":
		return c.pictureStore
	default:
		return nil
	}
}

// GetDB 获取数据库句柄
func (c *ServiceContainer) GetDB() *gorm.DB {
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetRedisClient 获取Redis客户端，可能为nil
func (c *ServiceContainer) GetRedisClient() *redis.Client {
	return c.redisClient
}
