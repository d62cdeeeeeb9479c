package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mâm cơm — nhóm bàn ăn cố định cho bữa trưa/tối nội trú, độc lập với lớp.
const (
	MealGroupM1 = "M1"
	MealGroupM2 = "M2"
	MealGroupM3 = "M3"
)

var MealGroups = []string{MealGroupM1, MealGroupM2, MealGroupM3}

type StudentModel struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name    string    `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	ClassID uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id" validate:"required"`

	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender      string     `gorm:"size:10" json:"gender" validate:"omitempty,oneof=male female"`

	// Phòng ký túc — chỉ học sinh nội trú mới có.
	Room       string `gorm:"size:20" json:"room"`
	MealGroup  string `gorm:"size:10" json:"meal_group" validate:"omitempty,oneof=M1 M2 M3"`
	IsBoarding bool   `gorm:"not null;default:false" json:"is_boarding"`

	ParentPhone      string `gorm:"size:20" json:"parent_phone"`
	Phone            string `gorm:"size:20" json:"phone"`
	Address          string `gorm:"type:text" json:"address"`
	NationalIDNumber string `gorm:"size:20" json:"national_id_number"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }
