package controllers

import (
	"strconv"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services/container"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceResidenceController 定义居住地址控制器接口
type InterfaceResidenceController interface {
	CreateResidence()
	GetResidence()
	GetResidenceByPerson()
	UpdateResidence()
	DeleteResidence()
}

// ResidenceController 居住地址控制器
type ResidenceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidenceController 创建一个新的居住地址控制器
func NewResidenceController(ctx *gin.Context, container *container.ServiceContainer) *ResidenceController {
	return &ResidenceController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateResidenceRequest 登记居住地址请求
type CreateResidenceRequest struct {
	PersonID        uint   `json:"person_id" binding:"required" example:"1"`
	City            string `json:"city" binding:"required" example:"Riga"`
	Street          string `json:"street" binding:"required" example:"Brivibas"`
	HouseNumber     string `json:"house_number" binding:"required" example:"10"`
	ApartmentNumber string `json:"apartment_number" example:"4"`
}

// UpdateResidenceRequest 部分更新请求，未出现的字段保持原值
type UpdateResidenceRequest struct {
	City            *string `json:"city" example:"Vilnius"`
	Street          *string `json:"street" example:"Gedimino"`
	HouseNumber     *string `json:"house_number" example:"12"`
	ApartmentNumber *string `json:"apartment_number" example:"7"`
}

// HandleResidenceFunc 返回一个处理居住地址请求的Gin处理函数
func HandleResidenceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidenceController(ctx, container)

		switch method {
		case "createResidence":
			controller.CreateResidence()
		case "getResidence":
			controller.GetResidence()
		case "getResidenceByPerson":
			controller.GetResidenceByPerson()
		case "updateResidence":
			controller.UpdateResidence()
		case "deleteResidence":
			controller.DeleteResidence()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// residenceIDParam 解析路径中的地址ID
func (c *ResidenceController) residenceIDParam() (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return 0, false
	}
	return uint(id), true
}

// CreateResidence 登记居住地址
// @Summary      登记居住地址
// @Description  为人员档案登记居住地址，档案须归属于本人且尚未登记地址
// @Tags         Residence
// @Accept       json
// @Produce      json
// @Param        request body CreateResidenceRequest true "地址信息"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /residences [post]
// @Security     BearerAuth
func (c *ResidenceController) CreateResidence() {
	var req CreateResidenceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	residenceService := c.Container.GetService("residence").(services.InterfaceResidenceService)
	residence, err := residenceService.CreateResidence(actorID, actorRole, services.ResidenceCreateInput{
		PersonID:        req.PersonID,
		City:            req.City,
		Street:          req.Street,
		HouseNumber:     req.HouseNumber,
		ApartmentNumber: req.ApartmentNumber,
	})
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, residence)
}

// GetResidence 查询居住地址
// @Summary      查询居住地址
// @Description  按ID查询居住地址，沿归属链校验到账户
// @Tags         Residence
// @Produce      json
// @Param        id path int true "地址ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /residences/{id} [get]
// @Security     BearerAuth
func (c *ResidenceController) GetResidence() {
	residenceID, ok := c.residenceIDParam()
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	residenceService := c.Container.GetService("residence").(services.InterfaceResidenceService)
	residence, err := residenceService.GetResidenceByID(actorID, actorRole, residenceID)
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, residence)
}

// GetResidenceByPerson 按人员档案查询居住地址
// @Summary      按人员查询居住地址
// @Description  查询人员档案登记的居住地址，仅档案归属人可见
// @Tags         Residence
// @Produce      json
// @Param        personId path int true "人员ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /residences/by-person/{personId} [get]
// @Security     BearerAuth
func (c *ResidenceController) GetResidenceByPerson() {
	personID, err := strconv.ParseUint(c.Ctx.Param("personId"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的人员ID参数")
		return
	}
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	residenceService := c.Container.GetService("residence").(services.InterfaceResidenceService)
	residence, err := residenceService.GetResidenceByPersonID(actorID, actorRole, uint(personID))
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, residence)
}

// UpdateResidence 部分更新居住地址
// @Summary      更新居住地址
// @Description  更新居住地址，未出现的字段保持原值，仅档案归属人可用
// @Tags         Residence
// @Accept       json
// @Produce      json
// @Param        id path int true "地址ID"
// @Param        request body UpdateResidenceRequest true "更新内容"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /residences/{id} [put]
// @Security     BearerAuth
func (c *ResidenceController) UpdateResidence() {
	residenceID, ok := c.residenceIDParam()
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	var req UpdateResidenceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	residenceService := c.Container.GetService("residence").(services.InterfaceResidenceService)
	residence, err := residenceService.UpdateResidence(actorID, actorRole, residenceID, services.ResidenceUpdateInput{
		City:            req.City,
		Street:          req.Street,
		HouseNumber:     req.HouseNumber,
		ApartmentNumber: req.ApartmentNumber,
	})
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, residence)
}

// DeleteResidence 删除居住地址
// @Summary      删除居住地址
// @Description  删除居住地址，归属人或管理员可用
// @Tags         Residence
// @Produce      json
// @Param        id path int true "地址ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /residences/{id} [delete]
// @Security     BearerAuth
func (c *ResidenceController) DeleteResidence() {
	residenceID, ok := c.residenceIDParam()
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	residenceService := c.Container.GetService("residence").(services.InterfaceResidenceService)
	if err := residenceService.DeleteResidence(actorID, actorRole, residenceID); err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}
