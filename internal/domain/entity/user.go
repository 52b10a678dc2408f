package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents an operator account (admin or cashier)
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Username     string         `gorm:"size:255;unique;not null" json:"username"`
	FullName     string         `gorm:"size:255;not null" json:"full_name"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Role         enum.Role      `gorm:"size:50;not null;default:'cashier'" json:"role"`
	Active       bool           `gorm:"default:true" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Orders []Order `gorm:"foreignKey:CashierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == enum.RoleAdmin
}
