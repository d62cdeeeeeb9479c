package model

import (
	"time"

	"github.com/google/uuid"
)

// DutyEntry — một người trực trong một ngày trực. TeacherName là text tự do:
// bảng trực có thể ghi người không có tài khoản trong hệ thống.
// Cặp (teacher_name, duty_date) chỉ được chống trùng ở tầng gán hàng loạt,
// không có unique constraint toàn cục.
type DutyEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TeacherName string    `gorm:"size:100;not null" json:"teacher_name" validate:"required,min=2,max=100"`
	DutyDate    time.Time `gorm:"type:date;not null;index" json:"duty_date"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DutyEntry) TableName() string { return "duty_entries" }
