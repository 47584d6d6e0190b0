package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role tags a user may hold. Not mutually exclusive.
const (
	RoleStudent   = "student"
	RoleEducator  = "educator"
	RoleRecruiter = "recruiter"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Profile struct {
	gorm.Model
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
}

func (Profile) TableName() string {
	return "profiles"
}

type UserRole struct {
	gorm.Model
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_role" json:"user_id"`
	Role   string    `gorm:"not null;uniqueIndex:idx_user_role" json:"role"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleEducator, RoleRecruiter:
		return true
	}
	return false
}
