package model

import (
	"github.com/google/uuid"
)

// ClassInfo — dữ liệu tham chiếu tĩnh, seed sẵn, không CRUD qua app.
type ClassInfo struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"size:20;unique;not null" json:"name"`
	Grade int       `gorm:"not null" json:"grade"`
}

func (ClassInfo) TableName() string { return "classes" }
