package controllers

import (
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services/container"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Register()
	Login()
}

// JWTController 处理注册和登录请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest 表示注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"johndoe1"`
	Password string `json:"password" binding:"required" example:"Passw0rd!"`
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"johndoe1"`
	Password string `json:"password" binding:"required" example:"Passw0rd!"`
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"101002"`
	Message string      `json:"message" example:"用户名或密码错误"`
	Data    interface{} `json:"data"`
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Register 处理用户注册
// @Summary      用户注册
// @Description  创建新账户，用户名6-20位字母数字，密码须包含大小写字母、数字和特殊字符
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "注册请求参数"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "校验失败"
// @Failure      409  {object}  ErrorResponse  "用户名已被占用"
// @Router       /auth/register [post]
func (c *JWTController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Register(req.Username, req.Password)
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}

// Login 处理用户登录
// @Summary      用户登录
// @Description  校验登录凭据并返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录请求参数"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "用户名或密码错误"
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Authenticate(req.Username, req.Password)
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(user)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token":      token,
		"user_id":    user.ID,
		"role":       user.Role,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	})
}
