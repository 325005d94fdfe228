package models

import "time"

// Residence 居住地址，与人员档案一一对应
type Residence struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	City            string `gorm:"size:100;not null" json:"city"`
	Street          string `gorm:"size:100;not null" json:"street"`
	HouseNumber     string `gorm:"size:20;not null" json:"house_number"`
	ApartmentNumber string `gorm:"size:20" json:"apartment_number"`

	PersonID uint    `gorm:"not null;uniqueIndex" json:"person_id"`
	Person   *Person `gorm:"foreignKey:PersonID" json:"-"`
}

// ResidenceDTO 对外返回的居住地址视图
type ResidenceDTO struct {
	ID              uint   `json:"id"`
	City            string `json:"city"`
	Street          string `json:"street"`
	HouseNumber     string `json:"house_number"`
	ApartmentNumber string `json:"apartment_number,omitempty"`
	PersonID        uint   `json:"person_id"`
}

// ToDTO 转换为对外视图
func (r *Residence) ToDTO() ResidenceDTO {
	return ResidenceDTO{
		ID:              r.ID,
		City:            r.City,
		Street:          r.Street,
		HouseNumber:     r.HouseNumber,
		ApartmentNumber: r.ApartmentNumber,
		PersonID:        r.PersonID,
	}
}
