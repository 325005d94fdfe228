package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/policy"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/storage"
	"github.com/Hariokas/PersonRegistrationSystem/pkg/logger"
	"github.com/Hariokas/PersonRegistrationSystem/utils"

	"gorm.io/gorm"
)

// 角色缓存的键前缀和有效期
const (
	roleCachePrefix = "user:role:"
	roleCacheTTL    = 5 * time.Minute
)

// InterfaceUserService 定义用户账户服务接口
type InterfaceUserService interface {
	Register(username, password string) (*models.UserDTO, error)
	Authenticate(username, password string) (*models.User, error)
	DeleteUser(actorID uint, actorUsername string, actorRole models.Role, targetID uint, targetUsername string) error
	GetUserByID(id uint) (*models.AdminUserDTO, error)
	GetUserByName(username string) (*models.AdminUserDTO, error)
	GetUserRoleByID(id uint) (models.Role, error)
}

// UserService 用户账户服务
type UserService struct {
	db       *gorm.DB
	redis    InterfaceRedisService // 可为nil，此时角色查询直连数据库
	pictures storage.InterfacePictureStore
}

// NewUserService 创建用户账户服务
func NewUserService(db *gorm.DB, redis InterfaceRedisService, pictures storage.InterfacePictureStore) InterfaceUserService {
	return &UserService{db: db, redis: redis, pictures: pictures}
}

// Register 注册新账户，用户名不区分大小写去重
func (s *UserService) Register(username, password string) (*models.UserDTO, error) {
	if err := utils.ValidateUser(username, password); err != nil {
		return nil, err
	}

	var count int64
	err := s.db.Model(&models.User{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, code.NewError(code.ErrUserAlreadyExist)
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		return nil, err
	}
	digest, err := utils.HashPassword(password, salt)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: digest,
		Salt:     salt,
		Role:     models.RoleUser,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	logger.Info("新用户注册成功: %s (ID=%d)", user.Username, user.ID)
	dto := user.ToDTO()
	return &dto, nil
}

// Authenticate 校验登录凭据，成功时返回账户。
// 用户不存在和密码错误返回同一个错误，不向调用方泄露区别。
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, code.NewError(code.ErrInvalidCredentials)
	}

	var user models.User
	err := s.db.Where("LOWER(username) = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrInvalidCredentials)
		}
		return nil, err
	}

	if !utils.CheckPassword(password, user.Salt, user.Password) {
		return nil, code.NewError(code.ErrInvalidCredentials)
	}
	return &user, nil
}

// DeleteUser 注销账户并级联删除名下的人员档案和居住地址。
// 普通用户只能注销本人账户（用户名须与令牌一致），
// 管理员可以按ID或用户名注销其他账户，但不能注销管理员账户。
func (s *UserService) DeleteUser(actorID uint, actorUsername string, actorRole models.Role, targetID uint, targetUsername string) error {
	if actorRole != models.RoleAdmin {
		if targetUsername == "" || !strings.EqualFold(targetUsername, actorUsername) {
			return code.NewErrorWithMessage(code.ErrValidation, "只能注销本人账户")
		}
		targetID = actorID
	} else if targetID == 0 {
		if targetUsername == "" {
			return code.NewErrorWithMessage(code.ErrValidation, "缺少要注销的账户标识")
		}
		var target models.User
		err := s.db.Where("LOWER(username) = ?", strings.ToLower(targetUsername)).First(&target).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return code.NewError(code.ErrUserNotFound)
			}
			return err
		}
		targetID = target.ID
	}

	var user models.User
	if err := s.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.NewError(code.ErrUserNotFound)
		}
		return err
	}

	owner := policy.Owner{UserID: user.ID, Role: user.Role}
	if err := policy.Authorize(actorID, actorRole, policy.OperationDelete, owner); err != nil {
		return err
	}

	// 先收集头像路径，事务提交后再清理文件
	var people []models.Person
	if err := s.db.Where("user_id = ?", user.ID).Find(&people).Error; err != nil {
		return err
	}
	picturePaths := make([]string, 0, len(people))
	for _, p := range people {
		if p.ProfilePicturePath != "" {
			picturePaths = append(picturePaths, p.ProfilePicturePath)
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range people {
			if err := tx.Where("person_id = ?", p.ID).Delete(&models.Residence{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Person{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}

	for _, path := range picturePaths {
		_ = s.pictures.Delete(path)
	}
	s.invalidateRoleCache(user.ID)

	logger.Info("账户已注销: %s (ID=%d)，操作者ID=%d", user.Username, user.ID, actorID)
	return nil
}

// GetUserByID 按ID查询账户，管理接口使用
func (s *UserService) GetUserByID(id uint) (*models.AdminUserDTO, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrUserNotFound)
		}
		return nil, err
	}
	dto := user.ToAdminDTO()
	return &dto, nil
}

// GetUserByName 按用户名查询账户（不区分大小写），管理接口使用
func (s *UserService) GetUserByName(username string) (*models.AdminUserDTO, error) {
	var user models.User
	err := s.db.Where("LOWER(username) = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrUserNotFound)
		}
		return nil, err
	}
	dto := user.ToAdminDTO()
	return &dto, nil
}

// GetUserRoleByID 查询账户当前角色，供控制器做授权决策。
// 结果在Redis中短暂缓存，注销账户时失效。
func (s *UserService) GetUserRoleByID(id uint) (models.Role, error) {
	key := fmt.Sprintf("%s%d", roleCachePrefix, id)
	if s.redis != nil {
		var role models.Role
		if err := s.redis.Get(key, &role); err == nil && role != "" {
			return role, nil
		}
	}

	var user models.User
	if err := s.db.Select("id", "role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RoleNone, code.NewError(code.ErrUserNotFound)
		}
		return models.RoleNone, err
	}

	if s.redis != nil {
		if err := s.redis.Set(key, user.Role, roleCacheTTL); err != nil {
			logger.Warning("写入角色缓存失败: %v", err)
		}
	}
	return user.Role, nil
}

// invalidateRoleCache 清除角色缓存
func (s *UserService) invalidateRoleCache(id uint) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(fmt.Sprintf("%s%d", roleCachePrefix, id)); err != nil {
		logger.Warning("清除角色缓存失败: %v", err)
	}
}
