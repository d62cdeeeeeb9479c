package dto

import (
	"time"

	"github.com/google/uuid"

	"noitru_backend/internals/features/school/attendance/service"
)

const DateLayout = "2006-01-02"

type AbsentOverrideRequest struct {
	Reason     string `json:"reason"`
	Permission string `json:"permission" validate:"omitempty,oneof=P KP"`
}

type CreateReportRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Type     string `json:"type" validate:"required,oneof=evening_study boarding meal"`
	Session  string `json:"session" validate:"omitempty,oneof=morning_exercise noon_nap evening_sleep random"`
	MealType string `json:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner"`

	ClassID *uuid.UUID `json:"class_id"`

	AbsentStudentIDs  []uuid.UUID `json:"absent_student_ids"`
	PresentStudentIDs []uuid.UUID `json:"present_student_ids"`
	UsePresentSet     bool        `json:"use_present_set"`

	Overrides map[uuid.UUID]AbsentOverrideRequest `json:"overrides"`

	Notes string `json:"notes"`
}

func (r CreateReportRequest) ToForm(reporterID uuid.UUID, reporterName string) (service.ReportForm, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return service.ReportForm{}, err
	}

	overrides := make(map[uuid.UUID]service.AbsentOverride, len(r.Overrides))
	for id, ov := range r.Overrides {
		overrides[id] = service.AbsentOverride{Reason: ov.Reason, Permission: ov.Permission}
	}

	return service.ReportForm{
		Date:              date,
		Type:              r.Type,
		Session:           r.Session,
		MealType:          r.MealType,
		ClassID:           r.ClassID,
		AbsentStudentIDs:  r.AbsentStudentIDs,
		PresentStudentIDs: r.PresentStudentIDs,
		UsePresentSet:     r.UsePresentSet,
		Overrides:         overrides,
		Notes:             r.Notes,
		ReporterID:        reporterID,
		ReporterName:      reporterName,
	}, nil
}

// MealDeadlineResponse — trạng thái giờ chốt từng bữa cho UI nhắc nhở.
type MealDeadlineResponse struct {
	MealType         string `json:"meal_type"`
	Open             bool   `json:"open"`
	MinutesRemaining int    `json:"minutes_remaining"`
	NearDeadline     bool   `json:"near_deadline"`
}
