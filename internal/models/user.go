package models

type User struct {
	Base
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	FirstName    string `gorm:"size:50;not null" json:"first_name"`
	LastName     string `gorm:"size:50;not null" json:"last_name"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`
}
