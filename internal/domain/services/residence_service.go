package services

import (
	"errors"
	"strings"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/policy"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/pkg/logger"

	"gorm.io/gorm"
)

// ResidenceCreateInput 登记居住地址的输入
type ResidenceCreateInput struct {
	PersonID        uint
	City            string
	Street          string
	HouseNumber     string
	ApartmentNumber string
}

// ResidenceUpdateInput 部分更新的输入，nil字段保持原值
type ResidenceUpdateInput struct {
	City            *string
	Street          *string
	HouseNumber     *string
	ApartmentNumber *string
}

// InterfaceResidenceService 定义居住地址服务接口
type InterfaceResidenceService interface {
	CreateResidence(actorID uint, actorRole models.Role, input ResidenceCreateInput) (*models.ResidenceDTO, error)
	GetResidenceByID(actorID uint, actorRole models.Role, residenceID uint) (*models.ResidenceDTO, error)
	GetResidenceByPersonID(actorID uint, actorRole models.Role, personID uint) (*models.ResidenceDTO, error)
	UpdateResidence(actorID uint, actorRole models.Role, residenceID uint, input ResidenceUpdateInput) (*models.ResidenceDTO, error)
	DeleteResidence(actorID uint, actorRole models.Role, residenceID uint) error
}

// ResidenceService 居住地址服务
type ResidenceService struct {
	db       *gorm.DB
	resolver InterfaceOwnershipResolver
}

// NewResidenceService 创建居住地址服务
func NewResidenceService(db *gorm.DB, resolver InterfaceOwnershipResolver) InterfaceResidenceService {
	return &ResidenceService{db: db, resolver: resolver}
}

// validateResidence 校验地址必填字段
func validateResidence(city, street, houseNumber string) error {
	switch {
	case strings.TrimSpace(city) == "":
		return code.NewErrorWithMessage(code.ErrValidation, "城市不能为空")
	case strings.TrimSpace(street) == "":
		return code.NewErrorWithMessage(code.ErrValidation, "街道不能为空")
	case strings.TrimSpace(houseNumber) == "":
		return code.NewErrorWithMessage(code.ErrValidation, "门牌号不能为空")
	}
	return nil
}

// CreateResidence 为人员档案登记居住地址，档案须归属于操作者本人
func (s *ResidenceService) CreateResidence(actorID uint, actorRole models.Role, input ResidenceCreateInput) (*models.ResidenceDTO, error) {
	if err := validateResidence(input.City, input.Street, input.HouseNumber); err != nil {
		return nil, err
	}

	person, owner, err := s.resolver.ResolvePersonOwner(input.PersonID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationUpdate, *owner); err != nil {
		return nil, err
	}
	if person.Residence != nil {
		return nil, code.NewErrorWithMessage(code.ErrValidation, "该人员已登记居住地址")
	}

	residence := &models.Residence{
		City:            strings.TrimSpace(input.City),
		Street:          strings.TrimSpace(input.Street),
		HouseNumber:     strings.TrimSpace(input.HouseNumber),
		ApartmentNumber: strings.TrimSpace(input.ApartmentNumber),
		PersonID:        person.ID,
	}
	if err := s.db.Create(residence).Error; err != nil {
		return nil, err
	}

	logger.Info("居住地址登记成功: ID=%d，人员ID=%d", residence.ID, person.ID)
	dto := residence.ToDTO()
	return &dto, nil
}

// GetResidenceByID 查询居住地址，沿归属链校验到账户
func (s *ResidenceService) GetResidenceByID(actorID uint, actorRole models.Role, residenceID uint) (*models.ResidenceDTO, error) {
	residence, owner, err := s.resolver.ResolveResidenceOwner(residenceID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationRead, *owner); err != nil {
		return nil, err
	}
	dto := residence.ToDTO()
	return &dto, nil
}

// GetResidenceByPersonID 按人员档案查询其居住地址
func (s *ResidenceService) GetResidenceByPersonID(actorID uint, actorRole models.Role, personID uint) (*models.ResidenceDTO, error) {
	person, owner, err := s.resolver.ResolvePersonOwner(personID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationRead, *owner); err != nil {
		return nil, err
	}

	var residence models.Residence
	err = s.db.Where("person_id = ?", person.ID).First(&residence).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrResidenceNotFound)
		}
		return nil, err
	}
	dto := residence.ToDTO()
	return &dto, nil
}

// UpdateResidence 部分更新居住地址，nil字段保持原值
func (s *ResidenceService) UpdateResidence(actorID uint, actorRole models.Role, residenceID uint, input ResidenceUpdateInput) (*models.ResidenceDTO, error) {
	residence, owner, err := s.resolver.ResolveResidenceOwner(residenceID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationUpdate, *owner); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.City != nil && strings.TrimSpace(*input.City) != "" {
		updates["city"] = strings.TrimSpace(*input.City)
	}
	if input.Street != nil && strings.TrimSpace(*input.Street) != "" {
		updates["street"] = strings.TrimSpace(*input.Street)
	}
	if input.HouseNumber != nil && strings.TrimSpace(*input.HouseNumber) != "" {
		updates["house_number"] = strings.TrimSpace(*input.HouseNumber)
	}
	if input.ApartmentNumber != nil && strings.TrimSpace(*input.ApartmentNumber) != "" {
		updates["apartment_number"] = strings.TrimSpace(*input.ApartmentNumber)
	}

	if len(updates) > 0 {
		if err := s.db.Model(residence).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Residence
	if err := s.db.First(&updated, residence.ID).Error; err != nil {
		return nil, err
	}
	dto := updated.ToDTO()
	return &dto, nil
}

// DeleteResidence 删除居住地址
func (s *ResidenceService) DeleteResidence(actorID uint, actorRole models.Role, residenceID uint) error {
	residence, owner, err := s.resolver.ResolveResidenceOwner(residenceID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actorID, actorRole, policy.OperationDelete, *owner); err != nil {
		return err
	}

	if err := s.db.Delete(&models.Residence{}, residence.ID).Error; err != nil {
		return err
	}
	logger.Info("居住地址已删除: ID=%d，操作者ID=%d", residenceID, actorID)
	return nil
}
