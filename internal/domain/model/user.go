package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Email           string     `gorm:"not null;type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash    string     `gorm:"not null;type:varchar(255)" json:"-"`
	FirstName       string     `gorm:"not null;type:varchar(100)" json:"first_name"`
	LastName        string     `gorm:"not null;type:varchar(100)" json:"last_name"`
	PhoneNumber     *string    `gorm:"type:varchar(30)" json:"phone_number"`
	Role            UserRole   `gorm:"not null;type:varchar(20);default:'CUSTOMER'" json:"role"`
	IsEmailVerified bool       `gorm:"not null;default:false" json:"is_email_verified"`
	ReferralCode    string     `gorm:"not null;type:varchar(32);uniqueIndex" json:"referral_code"`
	ReferredByID    *uuid.UUID `gorm:"type:uuid;index" json:"referred_by_id"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	Addresses       []Address  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	BaseModel
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Address struct {
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Label     string    `gorm:"type:varchar(50)" json:"label"`
	Number    string    `gorm:"not null;type:varchar(20)" json:"number"`
	Street    string    `gorm:"not null;type:varchar(255)" json:"street"`
	City      string    `gorm:"not null;type:varchar(100)" json:"city"`
	State     string    `gorm:"not null;type:varchar(100)" json:"state"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	SoftDeleteModel
}
