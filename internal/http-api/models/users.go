package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;size:128;not null" json:"email"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	Bio       string `gorm:"type:text" json:"bio"`
	Role      Role   `gorm:"type:varchar(30);default:'user';not null" json:"role"`

	// Bcrypt hash of the one-time confirmation code, never serialized.
	ConfirmationCodeHash string `gorm:"column:confirmation_code_hash" json:"-"`

	Superuser bool `gorm:"default:false;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

// EffectiveRole resolves the role used for policy decisions.
// Superusers always act as admin regardless of the stored role.
func (user *User) EffectiveRole() Role {
	if user.Superuser {
		return RoleAdmin
	}
	return user.Role
}

func (User) TableName() string {
	return "users"
}
