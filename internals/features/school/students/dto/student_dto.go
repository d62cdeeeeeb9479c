package dto

import (
	"time"

	"github.com/google/uuid"

	"noitru_backend/internals/features/school/students/model"
)

type CreateStudentRequest struct {
	Name             string     `json:"name" validate:"required,min=2,max=100"`
	ClassID          uuid.UUID  `json:"class_id" validate:"required"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           string     `json:"gender" validate:"omitempty,oneof=male female"`
	Room             string     `json:"room" validate:"max=20"`
	MealGroup        string     `json:"meal_group" validate:"omitempty,oneof=M1 M2 M3"`
	IsBoarding       bool       `json:"is_boarding"`
	ParentPhone      string     `json:"parent_phone" validate:"max=20"`
	Phone            string     `json:"phone" validate:"max=20"`
	Address          string     `json:"address"`
	NationalIDNumber string     `json:"national_id_number" validate:"max=20"`
}

func (r CreateStudentRequest) ToModel() model.StudentModel {
	return model.StudentModel{
		Name:             r.Name,
		ClassID:          r.ClassID,
		DateOfBirth:      r.DateOfBirth,
		Gender:           r.Gender,
		Room:             r.Room,
		MealGroup:        r.MealGroup,
		IsBoarding:       r.IsBoarding,
		ParentPhone:      r.ParentPhone,
		Phone:            r.Phone,
		Address:          r.Address,
		NationalIDNumber: r.NationalIDNumber,
	}
}

type UpdateStudentRequest struct {
	Name             *string    `json:"name" validate:"omitempty,min=2,max=100"`
	ClassID          *uuid.UUID `json:"class_id"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           *string    `json:"gender" validate:"omitempty,oneof=male female"`
	Room             *string    `json:"room" validate:"omitempty,max=20"`
	MealGroup        *string    `json:"meal_group" validate:"omitempty,oneof=M1 M2 M3"`
	IsBoarding       *bool      `json:"is_boarding"`
	ParentPhone      *string    `json:"parent_phone" validate:"omitempty,max=20"`
	Phone            *string    `json:"phone" validate:"omitempty,max=20"`
	Address          *string    `json:"address"`
	NationalIDNumber *string    `json:"national_id_number" validate:"omitempty,max=20"`
}

type BulkInsertStudentsRequest struct {
	Students []CreateStudentRequest `json:"students" validate:"required,min=1,dive"`
}
