package dto

import "github.com/google/uuid"

// UpdateUserRequest — admin sửa hồ sơ / role. Field nil = giữ nguyên.
type UpdateUserRequest struct {
	FullName *string  `json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone    *string  `json:"phone" validate:"omitempty,min=9,max=15"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=admin teacher class_teacher accountant kitchen"`

	// Gán lớp phụ trách cho GVCN; ClearClass = true để gỡ lớp.
	ClassID    *uuid.UUID `json:"class_id"`
	ClearClass bool       `json:"clear_class"`

	IsActive *bool `json:"is_active"`
}
