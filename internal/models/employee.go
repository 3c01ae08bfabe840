package models

import "time"

type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Surname   string `gorm:"size:100;not null" json:"surname"`
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	Specialty string `gorm:"size:100" json:"specialty"`

	// Soft delete: inactive employees keep their appointment history
	// but cannot receive new bookings.
	Active   bool      `gorm:"default:true" json:"active"`
	HireDate time.Time `json:"hire_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
