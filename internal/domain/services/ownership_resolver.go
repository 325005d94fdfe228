package services

import (
	"errors"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/policy"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"

	"gorm.io/gorm"
)

// InterfaceOwnershipResolver 定义归属链解析接口：
// 给定资源ID，一次性加载资源及其最终属主账户
type InterfaceOwnershipResolver interface {
	ResolvePersonOwner(personID uint) (*models.Person, *policy.Owner, error)
	ResolveResidenceOwner(residenceID uint) (*models.Residence, *policy.Owner, error)
}

// OwnershipResolver 基于gorm的归属链解析实现，只读
type OwnershipResolver struct {
	db *gorm.DB
}

// NewOwnershipResolver 创建归属链解析器
func NewOwnershipResolver(db *gorm.DB) InterfaceOwnershipResolver {
	return &OwnershipResolver{db: db}
}

// ResolvePersonOwner 加载人员档案及其归属账户
func (r *OwnershipResolver) ResolvePersonOwner(personID uint) (*models.Person, *policy.Owner, error) {
	var person models.Person
	err := r.db.Preload("User").Preload("Residence").First(&person, personID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, code.NewError(code.ErrPersonNotFound)
		}
		return nil, nil, err
	}
	// 归属链断裂是数据问题，不能当作权限拒绝返回
	if person.User == nil {
		return nil, nil, code.NewErrorWithMessage(code.ErrDatabase, "人员档案缺少归属账户")
	}
	return &person, &policy.Owner{UserID: person.UserID, Role: person.User.Role}, nil
}

// ResolveResidenceOwner 加载居住地址并沿 Residence→Person→User 链解析属主
func (r *OwnershipResolver) ResolveResidenceOwner(residenceID uint) (*models.Residence, *policy.Owner, error) {
	var residence models.Residence
	err := r.db.Preload("Person.User").First(&residence, residenceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, code.NewError(code.ErrResidenceNotFound)
		}
		return nil, nil, err
	}
	if residence.Person == nil || residence.Person.User == nil {
		return nil, nil, code.NewErrorWithMessage(code.ErrDatabase, "居住地址缺少归属账户")
	}
	return &residence, &policy.Owner{
		UserID: residence.Person.UserID,
		Role:   residence.Person.User.Role,
	}, nil
}
