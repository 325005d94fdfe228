package controllers

import (
	"github.com/Hariokas/PersonRegistrationSystem/internal/app/middleware"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services/container"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// currentActor 读取当前请求的操作者身份。
// 角色以数据库中的当前值为准，令牌中的角色只用于接口准入。
// 失败时已写出响应，调用方直接返回即可。
func currentActor(ctx *gin.Context, c *container.ServiceContainer) (uint, models.Role, bool) {
	actorID := middleware.GetUserID(ctx)
	if actorID == 0 {
		response.Fail(ctx, code.ErrTokenInvalid)
		return 0, models.RoleNone, false
	}

	userService := c.GetService("user").(services.InterfaceUserService)
	role, err := userService.GetUserRoleByID(actorID)
	if err != nil {
		// 令牌对应的账户已不存在
		response.Fail(ctx, code.ErrTokenInvalid)
		return 0, models.RoleNone, false
	}
	return actorID, role, true
}
