package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/policy"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/storage"
	"github.com/Hariokas/PersonRegistrationSystem/pkg/logger"

	"gorm.io/gorm"
)

// PersonResidenceInput 随人员档案一并登记的居住地址
type PersonResidenceInput struct {
	City            string
	Street          string
	HouseNumber     string
	ApartmentNumber string
}

// PersonCreateInput 登记人员档案的输入
type PersonCreateInput struct {
	FirstName    string
	LastName     string
	Gender       models.Gender
	DateOfBirth  string
	PersonalCode string
	Phone        string
	Email        string
	Picture      []byte
	Residence    *PersonResidenceInput
}

// PersonUpdateInput 部分更新的输入，空字段保持原值
type PersonUpdateInput struct {
	FirstName    string
	LastName     string
	Gender       models.Gender
	DateOfBirth  string
	PersonalCode string
	Phone        string
	Email        string
}

// InterfacePersonService 定义人员档案服务接口。
// 操作者身份（actorID/actorRole）由调用方显式传入，不从任何隐式上下文读取。
type InterfacePersonService interface {
	CreatePerson(userID uint, input PersonCreateInput) (*models.PersonDTO, error)
	GetPersonByID(actorID uint, actorRole models.Role, personID uint) (*models.PersonDTO, error)
	GetPersonAsAdminByID(personID uint) (*models.AdminPersonDTO, error)
	ListPersonsByUser(actorID uint, actorRole models.Role, requestedUserID uint) ([]models.PersonDTO, error)
	UpdatePerson(actorID uint, actorRole models.Role, personID uint, input PersonUpdateInput) (*models.PersonDTO, error)
	DeletePerson(actorID uint, actorRole models.Role, personID uint) error
	GetPicture(actorID uint, actorRole models.Role, personID uint) ([]byte, error)
	UpdatePicture(actorID uint, actorRole models.Role, personID uint, picture []byte) error
	DeletePicture(actorID uint, actorRole models.Role, personID uint) error
}

// PersonService 人员档案服务
type PersonService struct {
	db       *gorm.DB
	resolver InterfaceOwnershipResolver
	pictures storage.InterfacePictureStore
}

// NewPersonService 创建人员档案服务
func NewPersonService(db *gorm.DB, resolver InterfaceOwnershipResolver, pictures storage.InterfacePictureStore) InterfacePersonService {
	return &PersonService{db: db, resolver: resolver, pictures: pictures}
}

// validateCreate 校验登记输入的必填字段
func validateCreate(input PersonCreateInput) error {
	switch {
	case strings.TrimSpace(input.FirstName) == "":
		return code.NewErrorWithMessage(code.ErrValidation, "名字不能为空")
	case strings.TrimSpace(input.LastName) == "":
		return code.NewErrorWithMessage(code.ErrValidation, "姓氏不能为空")
	case strings.TrimSpace(input.PersonalCode) == "":
		return code.NewErrorWithMessage(code.ErrValidation, "个人识别码不能为空")
	case strings.TrimSpace(input.Phone) == "":
		return code.NewErrorWithMessage(code.ErrValidation, "电话号码不能为空")
	case strings.TrimSpace(input.Email) == "":
		return code.NewErrorWithMessage(code.ErrValidation, "电子邮箱不能为空")
	case len(input.Picture) == 0:
		return code.NewErrorWithMessage(code.ErrValidation, "头像图片不能为空")
	}
	if err := validateGender(input.Gender); err != nil {
		return err
	}
	return validateDateOfBirth(input.DateOfBirth)
}

func validateGender(g models.Gender) error {
	switch g {
	case models.GenderMale, models.GenderFemale, models.GenderOther, models.GenderUnknown:
		return nil
	default:
		return code.NewErrorWithMessage(code.ErrValidation, "性别取值无效")
	}
}

func validateDateOfBirth(d string) error {
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return code.NewErrorWithMessage(code.ErrValidation, "出生日期格式应为YYYY-MM-DD")
	}
	return nil
}

// CreatePerson 在指定账户名下登记人员档案，
// 头像经缩放后落盘，随附的居住地址与档案在同一事务中写入
func (s *PersonService) CreatePerson(userID uint, input PersonCreateInput) (*models.PersonDTO, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrUserNotFound)
		}
		return nil, err
	}

	picturePath, err := s.pictures.Save(input.Picture)
	if err != nil {
		return nil, err
	}

	person := &models.Person{
		FirstName:          strings.TrimSpace(input.FirstName),
		LastName:           strings.TrimSpace(input.LastName),
		Gender:             input.Gender,
		DateOfBirth:        input.DateOfBirth,
		PersonalCode:       strings.TrimSpace(input.PersonalCode),
		Phone:              strings.TrimSpace(input.Phone),
		Email:              strings.TrimSpace(input.Email),
		ProfilePicturePath: picturePath,
		UserID:             user.ID,
	}
	if input.Residence != nil {
		person.Residence = &models.Residence{
			City:            strings.TrimSpace(input.Residence.City),
			Street:          strings.TrimSpace(input.Residence.Street),
			HouseNumber:     strings.TrimSpace(input.Residence.HouseNumber),
			ApartmentNumber: strings.TrimSpace(input.Residence.ApartmentNumber),
		}
	}

	if err := s.db.Create(person).Error; err != nil {
		_ = s.pictures.Delete(picturePath)
		return nil, err
	}

	logger.Info("人员档案登记成功: %s %s (ID=%d)，账户ID=%d",
		person.FirstName, person.LastName, person.ID, userID)
	dto := person.ToDTO()
	return &dto, nil
}

// GetPersonByID 查询人员档案，仅档案归属人可见
func (s *PersonService) GetPersonByID(actorID uint, actorRole models.Role, personID uint) (*models.PersonDTO, error) {
	person, owner, err := s.resolver.ResolvePersonOwner(personID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationRead, *owner); err != nil {
		return nil, err
	}
	dto := person.ToDTO()
	return &dto, nil
}

// GetPersonAsAdminByID 管理接口的人员查询，返回最小字段视图。
// 角色检查在控制器层完成。
func (s *PersonService) GetPersonAsAdminByID(personID uint) (*models.AdminPersonDTO, error) {
	var person models.Person
	if err := s.db.First(&person, personID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrPersonNotFound)
		}
		return nil, err
	}
	dto := person.ToAdminDTO()
	return &dto, nil
}

// ListPersonsByUser 列出账户名下的人员档案。
// 管理员可以指定任意账户ID，普通用户的查询强制限定为本人账户。
func (s *PersonService) ListPersonsByUser(actorID uint, actorRole models.Role, requestedUserID uint) ([]models.PersonDTO, error) {
	targetID := actorID
	if actorRole == models.RoleAdmin && requestedUserID != 0 {
		targetID = requestedUserID
	}

	var people []models.Person
	err := s.db.Preload("Residence").Where("user_id = ?", targetID).Find(&people).Error
	if err != nil {
		return nil, err
	}

	dtos := make([]models.PersonDTO, 0, len(people))
	for i := range people {
		dtos = append(dtos, people[i].ToDTO())
	}
	return dtos, nil
}

// UpdatePerson 部分更新人员档案，空字段保持原值
func (s *PersonService) UpdatePerson(actorID uint, actorRole models.Role, personID uint, input PersonUpdateInput) (*models.PersonDTO, error) {
	person, owner, err := s.resolver.ResolvePersonOwner(personID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationUpdate, *owner); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if v := strings.TrimSpace(input.FirstName); v != "" {
		updates["first_name"] = v
	}
	if v := strings.TrimSpace(input.LastName); v != "" {
		updates["last_name"] = v
	}
	if input.Gender != "" {
		if err := validateGender(input.Gender); err != nil {
			return nil, err
		}
		updates["gender"] = input.Gender
	}
	if input.DateOfBirth != "" {
		if err := validateDateOfBirth(input.DateOfBirth); err != nil {
			return nil, err
		}
		updates["date_of_birth"] = input.DateOfBirth
	}
	if v := strings.TrimSpace(input.PersonalCode); v != "" {
		updates["personal_code"] = v
	}
	if v := strings.TrimSpace(input.Phone); v != "" {
		updates["phone"] = v
	}
	if v := strings.TrimSpace(input.Email); v != "" {
		updates["email"] = v
	}

	if len(updates) > 0 {
		if err := s.db.Model(person).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	updated, _, err := s.resolver.ResolvePersonOwner(personID)
	if err != nil {
		return nil, err
	}
	dto := updated.ToDTO()
	return &dto, nil
}

// DeletePerson 删除人员档案，级联删除居住地址并清理头像文件
func (s *PersonService) DeletePerson(actorID uint, actorRole models.Role, personID uint) error {
	person, owner, err := s.resolver.ResolvePersonOwner(personID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationDelete, *owner); err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("person_id = ?", person.ID).Delete(&models.Residence{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Person{}, person.ID).Error
	})
	if err != nil {
		return err
	}

	_ = s.pictures.Delete(person.ProfilePicturePath)
	logger.Info("人员档案已删除: ID=%d，操作者ID=%d", personID, actorID)
	return nil
}

// GetPicture 读取头像内容，仅档案归属人可见
func (s *PersonService) GetPicture(actorID uint, actorRole models.Role, personID uint) ([]byte, error) {
	person, owner, err := s.resolver.ResolvePersonOwner(personID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationRead, *owner); err != nil {
		return nil, err
	}
	return s.pictures.Load(person.ProfilePicturePath)
}

// UpdatePicture 替换头像，旧文件尽力删除
func (s *PersonService) UpdatePicture(actorID uint, actorRole models.Role, personID uint, picture []byte) error {
	if len(picture) == 0 {
		return code.NewErrorWithMessage(code.ErrValidation, "头像图片不能为空")
	}

	person, owner, err := s.resolver.ResolvePersonOwner(personID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationUpdate, *owner); err != nil {
		return err
	}

	newPath, err := s.pictures.Save(picture)
	if err != nil {
		return err
	}
	oldPath := person.ProfilePicturePath

	if err := s.db.Model(person).Update("profile_picture_path", newPath).Error; err != nil {
		_ = s.pictures.Delete(newPath)
		return err
	}

	_ = s.pictures.Delete(oldPath)
	return nil
}

// DeletePicture 删除头像并清空路径，这是唯一会清空字段的更新
func (s *PersonService) DeletePicture(actorID uint, actorRole models.Role, personID uint) error {
	person, owner, err := s.resolver.ResolvePersonOwner(personID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationUpdate, *owner); err != nil {
		return err
	}

	// Update会就地改写person的字段，先留住旧路径再清空
	oldPath := person.ProfilePicturePath
	if err := s.db.Model(person).Update("profile_picture_path", "").Error; err != nil {
		return err
	}
	_ = s.pictures.Delete(oldPath)
	return nil
}
