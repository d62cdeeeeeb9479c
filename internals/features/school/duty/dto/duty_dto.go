package dto

const DateLayout = "2006-01-02"

type CreateDutyEntryRequest struct {
	TeacherName string `json:"teacher_name" validate:"required,min=2,max=100"`
	DutyDate    string `json:"duty_date" validate:"required,datetime=2006-01-02"`
	Notes       string `json:"notes"`
}

type UpdateDutyEntryRequest struct {
	TeacherName *string `json:"teacher_name" validate:"omitempty,min=2,max=100"`
	DutyDate    *string `json:"duty_date" validate:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes"`
}

type BulkAssignRequest struct {
	Entries []BulkAssignEntry `json:"entries" validate:"required,min=1,dive"`
}

type BulkAssignEntry struct {
	TeacherName string `json:"teacher_name" validate:"required,min=2,max=100"`
	DutyDate    string `json:"duty_date" validate:"required,datetime=2006-01-02"`
}
