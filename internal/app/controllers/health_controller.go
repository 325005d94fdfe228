package controllers

import (
	"github.com/Hariokas/PersonRegistrationSystem/internal/app/middleware"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services/container"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// HealthController 健康检查控制器
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
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Ping 存活检查
// @Summary      存活检查
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /ping [get]
func (c *HealthController) Ping() {
	response.Success(c.Ctx, gin.H{"message": "pong"})
}

// Status 运行状态检查，汇报数据库、Redis和响应缓存的状态
// @Summary      运行状态
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health/status [get]
func (c *HealthController) Status() {
	dbStatus := "ok"
	sqlDB, err := c.Container.GetDB().DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}

	redisStatus := "disabled"
	if redisService, ok := c.Container.GetService("redis").(services.InterfaceRedisService); ok && redisService != nil {
		if err := redisService.Ping(); err != nil {
			redisStatus = "unavailable"
		} else {
			redisStatus = "ok"
		}
	}

	response.Success(c.Ctx, gin.H{
		"database": dbStatus,
		"redis":    redisStatus,
		"cache":    middleware.CacheStats(),
	})
}
