package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserModel — tài khoản đăng nhập + hồ sơ.
// Roles là mảng text: một user có thể giữ nhiều role (admin, teacher,
// class_teacher, accountant, kitchen).
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string    `gorm:"size:50;unique;not null" json:"user_name" validate:"required,min=3,max=50"`
	FullName string    `gorm:"size:100;not null" json:"full_name" validate:"required,min=2,max=100"`
	Email    string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Phone    *string   `gorm:"size:20;unique" json:"phone,omitempty" validate:"omitempty,min=9,max=15"`
	Password string    `gorm:"not null" json:"-"`
	GoogleID *string   `gorm:"size:255;unique" json:"google_id,omitempty"`

	Roles pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"roles"`

	// ClassID chỉ set khi user là GVCN — lớp mà user phụ trách.
	ClassID *uuid.UUID `gorm:"type:uuid" json:"class_id,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
