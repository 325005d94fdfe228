package middleware

import (
	"strings"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/response"
	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// 上下文键，认证中间件写入，控制器读取
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件使用的JWT服务
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken 从Authorization头中取出Bearer令牌
func extractToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authentication 校验令牌并把身份信息写入请求上下文
func Authentication() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := extractToken(ctx)
		if tokenString == "" {
			response.Unauthorized(ctx)
			ctx.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.Unauthorized(ctx)
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserID, claims.UserID)
		ctx.Set(ContextUsername, claims.Username)
		ctx.Set(ContextRole, models.Role(claims.Role))
		ctx.Next()
	}
}

// RequireAdmin 管理接口的角色门槛，须挂在Authentication之后。
// 令牌角色只做接口准入，资源归属的授权决策由服务层按数据库中的角色执行。
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if GetRole(ctx) != models.RoleAdmin {
			response.Fail(ctx, code.ErrUnauthorized)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// GetUserID 读取当前请求的用户ID
func GetUserID(ctx *gin.Context) uint {
	if v, ok := ctx.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetUsername 读取当前请求的用户名
func GetUsername(ctx *gin.Context) string {
	if v, ok := ctx.Get(ContextUsername); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}

// GetRole 读取当前请求的令牌角色
func GetRole(ctx *gin.Context) models.Role {
	if v, ok := ctx.Get(ContextRole); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return models.RoleNone
}
