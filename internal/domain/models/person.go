package models

import "time"

// Gender 性别
type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
)

// Person 人员档案，归属于一个用户账户，最多关联一份居住地址
type Person struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName          string `gorm:"size:50;not null" json:"first_name"`
	LastName           string `gorm:"size:50;not null" json:"last_name"`
	Gender             Gender `gorm:"size:10;not null;default:unknown" json:"gender"`
	DateOfBirth        string `gorm:"size:10;not null" json:"date_of_birth"`
	PersonalCode       string `gorm:"size:20;not null" json:"personal_code"`
	Phone              string `gorm:"size:20;not null" json:"phone"`
	Email              string `gorm:"size:100;not null" json:"email"`
	ProfilePicturePath string `gorm:"size:255" json:"-"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`

	Residence *Residence `gorm:"foreignKey:PersonID" json:"residence,omitempty"`
}

// PersonDTO 档案归属人看到的人员视图
type PersonDTO struct {
	ID           uint          `json:"id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Gender       Gender        `json:"gender"`
	DateOfBirth  string        `json:"date_of_birth"`
	PersonalCode string        `json:"personal_code"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	Residence    *ResidenceDTO `json:"residence,omitempty"`
}

// AdminPersonDTO 管理接口返回的人员视图，只含最小字段
type AdminPersonDTO struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ToDTO 转换为归属人视图
func (p *Person) ToDTO() PersonDTO {
	dto := PersonDTO{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Gender:       p.Gender,
		DateOfBirth:  p.DateOfBirth,
		PersonalCode: p.PersonalCode,
		Phone:        p.Phone,
		Email:        p.Email,
	}
	if p.Residence != nil {
		r := p.Residence.ToDTO()
		dto.Residence = &r
	}
	return dto
}

// ToAdminDTO 转换为管理视图
func (p *Person) ToAdminDTO() AdminPersonDTO {
	return AdminPersonDTO{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}
