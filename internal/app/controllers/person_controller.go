package controllers

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services/container"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfacePersonController 定义人员档案控制器接口
type InterfacePersonController interface {
	CreatePerson()
	GetPerson()
	GetPersonAsAdmin()
	ListPersons()
	UpdatePerson()
	DeletePerson()
	GetPicture()
	UpdatePicture()
	DeletePicture()
}

// PersonController 人员档案控制器
type PersonController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPersonController 创建一个新的人员档案控制器
func NewPersonController(ctx *gin.Context, container *container.ServiceContainer) *PersonController {
	return &PersonController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdatePersonRequest 部分更新请求，留空的字段保持原值
type UpdatePersonRequest struct {
	FirstName    string `json:"first_name" example:"John"`
	LastName     string `json:"last_name" example:"Doe"`
	Gender       string `json:"gender" example:"male"`
	DateOfBirth  string `json:"date_of_birth" example:"1990-05-01"`
	PersonalCode string `json:"personal_code" example:"39005010018"`
	Phone        string `json:"phone" example:"+37060000000"`
	Email        string `json:"email" example:"john@example.com"`
}

// HandlePersonFunc 返回一个处理人员档案请求的Gin处理函数
func HandlePersonFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPersonController(ctx, container)

		switch method {
		case "createPerson":
			controller.CreatePerson()
		case "getPerson":
			controller.GetPerson()
		case "getPersonAsAdmin":
			controller.GetPersonAsAdmin()
		case "listPersons":
			controller.ListPersons()
		case "updatePerson":
			controller.UpdatePerson()
		case "deletePerson":
			controller.DeletePerson()
		case "getPicture":
			controller.GetPicture()
		case "updatePicture":
			controller.UpdatePicture()
		case "deletePicture":
			controller.DeletePicture()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// personIDParam 解析路径中的人员ID
func (c *PersonController) personIDParam() (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return 0, false
	}
	return uint(id), true
}

// readFormFile 读取multipart表单中的文件内容
func readFormFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// CreatePerson 登记人员档案
// @Summary      登记人员档案
// @Description  在当前账户名下登记人员档案，头像必传并缩放为200x200，可随附居住地址
// @Tags         Person
// @Accept       multipart/form-data
// @Produce      json
// @Param        first_name formData string true "名字"
// @Param        last_name formData string true "姓氏"
// @Param        gender formData string true "性别(male/female/other/unknown)"
// @Param        date_of_birth formData string true "出生日期(YYYY-MM-DD)"
// @Param        personal_code formData string true "个人识别码"
// @Param        phone formData string true "电话号码"
// @Param        email formData string true "电子邮箱"
// @Param        profile_picture formData file true "头像图片"
// @Param        city formData string false "城市"
// @Param        street formData string false "街道"
// @Param        house_number formData string false "门牌号"
// @Param        apartment_number formData string false "公寓号"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /persons [post]
// @Security     BearerAuth
func (c *PersonController) CreatePerson() {
	actorID, _, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	input := services.PersonCreateInput{
		FirstName:    c.Ctx.PostForm("first_name"),
		LastName:     c.Ctx.PostForm("last_name"),
		Gender:       models.Gender(c.Ctx.PostForm("gender")),
		DateOfBirth:  c.Ctx.PostForm("date_of_birth"),
		PersonalCode: c.Ctx.PostForm("personal_code"),
		Phone:        c.Ctx.PostForm("phone"),
		Email:        c.Ctx.PostForm("email"),
	}

	fileHeader, err := c.Ctx.FormFile("profile_picture")
	if err != nil {
		response.ParamError(c.Ctx, "缺少头像图片")
		return
	}
	picture, err := readFormFile(fileHeader)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	input.Picture = picture

	// 地址字段任意一项非空时随档案一并登记
	city := c.Ctx.PostForm("city")
	street := c.Ctx.PostForm("street")
	houseNumber := c.Ctx.PostForm("house_number")
	apartmentNumber := c.Ctx.PostForm("apartment_number")
	if city != "" || street != "" || houseNumber != "" {
		input.Residence = &services.PersonResidenceInput{
			City:            city,
			Street:          street,
			HouseNumber:     houseNumber,
			ApartmentNumber: apartmentNumber,
		}
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	person, err := personService.CreatePerson(actorID, input)
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, person)
}

// GetPerson 查询人员档案
// @Summary      查询人员档案
// @Description  查询单份人员档案，仅档案归属人可见
// @Tags         Person
// @Produce      json
// @Param        id path int true "人员ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /persons/{id} [get]
// @Security     BearerAuth
func (c *PersonController) GetPerson() {
	personID, ok := c.personIDParam()
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	person, err := personService.GetPersonByID(actorID, actorRole, personID)
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, person)
}

// GetPersonAsAdmin 管理接口的人员查询
// @Summary      查询人员档案（管理员）
// @Description  返回最小字段的人员视图，仅管理员可用
// @Tags         Person
// @Produce      json
// @Param        id path int true "人员ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /persons/admin/{id} [get]
// @Security     BearerAuth
func (c *PersonController) GetPersonAsAdmin() {
	personID, ok := c.personIDParam()
	if !ok {
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	person, err := personService.GetPersonAsAdminByID(personID)
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, person)
}

// ListPersons 列出账户名下的人员档案
// @Summary      人员档案列表
// @Description  列出本人账户的人员档案，管理员可通过user_id查询任意账户
// @Tags         Person
// @Produce      json
// @Param        user_id query int false "账户ID（仅管理员生效）"
// @Success      200  {object}  response.Response
// @Router       /persons [get]
// @Security     BearerAuth
func (c *PersonController) ListPersons() {
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	var requestedUserID uint
	if raw := c.Ctx.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.ParamError(c.Ctx, "无效的user_id参数")
			return
		}
		requestedUserID = uint(id)
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	people, err := personService.ListPersonsByUser(actorID, actorRole, requestedUserID)
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, people)
}

// UpdatePerson 部分更新人员档案
// @Summary      更新人员档案
// @Description  更新人员档案，留空的字段保持原值，仅档案归属人可用
// @Tags         Person
// @Accept       json
// @Produce      json
// @Param        id path int true "人员ID"
// @Param        request body UpdatePersonRequest true "更新内容"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /persons/{id} [put]
// @Security     BearerAuth
func (c *PersonController) UpdatePerson() {
	personID, ok := c.personIDParam()
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	var req UpdatePersonRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	input := services.PersonUpdateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Gender:       models.Gender(req.Gender),
		DateOfBirth:  req.DateOfBirth,
		PersonalCode: req.PersonalCode,
		Phone:        req.Phone,
		Email:        req.Email,
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	person, err := personService.UpdatePerson(actorID, actorRole, personID, input)
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, person)
}

// DeletePerson 删除人员档案
// @Summary      删除人员档案
// @Description  删除人员档案并级联删除居住地址，归属人或管理员可用
// @Tags         Person
// @Produce      json
// @Param        id path int true "人员ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /persons/{id} [delete]
// @Security     BearerAuth
func (c *PersonController) DeletePerson() {
	personID, ok := c.personIDParam()
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	if err := personService.DeletePerson(actorID, actorRole, personID); err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}

// GetPicture 获取头像
// @Summary      获取头像
// @Description  返回头像图片内容，仅档案归属人可见
// @Tags         Person
// @Produce      jpeg
// @Param        id path int true "人员ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  ErrorResponse
// @Router       /persons/{id}/picture [get]
// @Security     BearerAuth
func (c *PersonController) GetPicture() {
	personID, ok := c.personIDParam()
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	picture, err := personService.GetPicture(actorID, actorRole, personID)
	if err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	c.Ctx.Data(200, "image/jpeg", picture)
}

// UpdatePicture 替换头像
// @Summary      替换头像
// @Description  上传新头像替换旧头像，旧文件随后删除
// @Tags         Person
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "人员ID"
// @Param        profile_picture formData file true "头像图片"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /persons/{id}/picture [put]
// @Security     BearerAuth
func (c *PersonController) UpdatePicture() {
	personID, ok := c.personIDParam()
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	fileHeader, err := c.Ctx.FormFile("profile_picture")
	if err != nil {
		response.ParamError(c.Ctx, "缺少头像图片")
		return
	}
	picture, err := readFormFile(fileHeader)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	if err := personService.UpdatePicture(actorID, actorRole, personID, picture); err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}

// DeletePicture 删除头像
// @Summary      删除头像
// @Description  删除头像文件并清空档案中的头像路径
// @Tags         Person
// @Produce      json
// @Param        id path int true "人员ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /persons/{id}/picture [delete]
// @Security     BearerAuth
func (c *PersonController) DeletePicture() {
	personID, ok := c.personIDParam()
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(c.Ctx, c.Container)
	if !ok {
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)
	if err := personService.DeletePicture(actorID, actorRole, personID); err != nil {
		response.FailWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, nil)
}
