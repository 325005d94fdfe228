package controllers

import (
	"strconv"

	"github.com/Hariokas/PersonRegistrationSystem/internal/app/middleware"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services/container"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceUserController 定义用户控制器接口
type InterfaceUserController interface {
	DeleteUser()
	GetUser()
	GetUserByName()
}

// UserController 用户账户控制器
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeleteUserRequest 注销账户请求。
// 普通用户须填写本人用户名确认，管理员可按ID指定目标账户。
type DeleteUserRequest struct {
	ID       uint   `json:"id" example:"2"`
	Username string `json:"username" example:"johndoe1"`
}

// HandleUserFunc 返回一个处理用户请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "deleteUser":
			controller.DeleteUser()
		case "getUser":
			controller.GetUser()
		case "getUserByName":
			controller.GetUserByName()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// DeleteUser 注销账户
// @Summary      注销账户
// @Description  注销账户并级联删除名下的人员档案和居住地址，管理员可注销非管理员账户
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body DeleteUserRequest true "注销请求参数"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users [delete]
// @Security     BearerAuth
func (c *UserController) DeleteUser() {
	var req DeleteUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}
	actorUsername := middleware.GetUsername(c.Ctx)

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.DeleteUser(actorID, actorUsername, actorRole, req.ID, req.Username); err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}

// GetUser 按ID查询账户
// @Summary      查询账户（管理员）
// @Description  根据ID查询账户信息，仅管理员可用
// @Tags         User
// @Produce      json
// @Param        id path int true "账户ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (c *UserController) GetUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(uint(id))
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}

// GetUserByName 按用户名查询账户
// @Summary      按用户名查询账户（管理员）
// @Description  根据用户名查询账户信息（不区分大小写），仅管理员可用
// @Tags         User
// @Produce      json
// @Param        name path string true "用户名"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /users/by-name/{name} [get]
// @Security     BearerAuth
func (c *UserController) GetUserByName() {
	name := c.Ctx.Param("name")
	if name == "" {
		response.ParamError(c.Ctx, "无效的用户名参数")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByName(name)
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}
