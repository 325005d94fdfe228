package models

import "time"

// Role 用户角色
type Role string

const (
	RoleNone  Role = "none"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User 系统账户，一个账户名下可以登记多份人员档案
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"size:20;not null;uniqueIndex" json:"username"`
	Password string `gorm:"size:64;not null" json:"-"` // PBKDF2摘要，base64编码
	Salt     string `gorm:"size:32;not null" json:"-"`
	Role     Role   `gorm:"size:10;not null;default:user" json:"role"`

	People []Person `gorm:"foreignKey:UserID" json:"-"`
}

// UserDTO 普通接口返回的用户视图
type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// AdminUserDTO 管理接口返回的用户视图
type AdminUserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// ToDTO 转换为普通用户视图
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
	}
}

// ToAdminDTO 转换为管理视图
func (u *User) ToAdminDTO() AdminUserDTO {
	return AdminUserDTO{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}
