package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Loại báo cáo điểm danh.
const (
	ReportTypeEveningStudy = "evening_study"
	ReportTypeBoarding     = "boarding"
	ReportTypeMeal         = "meal"
)

// Session cho điểm danh nội trú (bắt buộc khi type=boarding).
const (
	SessionMorningExercise = "morning_exercise"
	SessionNoonNap         = "noon_nap"
	SessionEveningSleep    = "evening_sleep"
	SessionRandom          = "random"
)

// Bữa ăn (bắt buộc khi type=meal).
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
)

// Nhãn phép vắng: P = có phép, KP = không phép.
const (
	PermissionExcused   = "P"
	PermissionUnexcused = "KP"
)

var (
	BoardingSessions = []string{SessionMorningExercise, SessionNoonNap, SessionEveningSleep, SessionRandom}
	MealTypes        = []string{MealBreakfast, MealLunch, MealDinner}
)

// AbsentEntry — snapshot bất biến của học sinh vắng tại thời điểm lập báo cáo.
// Cố tình denormalize: khi render báo cáo cũ KHÔNG được tra lại bảng students,
// để lịch sử không đổi khi hồ sơ học sinh bị sửa/xóa về sau.
type AbsentEntry struct {
	StudentID  uuid.UUID `json:"student_id"`
	Name       string    `json:"name"`
	ClassID    uuid.UUID `json:"class_id"`
	Room       string    `json:"room"`
	MealGroup  string    `json:"meal_group"`
	Reason     string    `json:"reason,omitempty"`
	Permission string    `json:"permission"` // P | KP
}

type AttendanceReport struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Date time.Time `gorm:"type:date;not null;index" json:"date"`
	Type string    `gorm:"size:20;not null;index" json:"type"`

	// Session khi type=boarding, MealType khi type=meal — đúng một trong hai.
	Session  string `gorm:"size:20" json:"session,omitempty"`
	MealType string `gorm:"size:20;index" json:"meal_type,omitempty"`

	// ClassID: filter phạm vi tùy chọn (báo cáo theo lớp).
	ClassID *uuid.UUID `gorm:"type:uuid;index" json:"class_id,omitempty"`

	TotalStudents int `gorm:"not null" json:"total_students"`
	PresentCount  int `gorm:"not null" json:"present_count"`
	AbsentCount   int `gorm:"not null" json:"absent_count"`

	AbsentStudents datatypes.JSONSlice[AbsentEntry] `gorm:"type:jsonb" json:"absent_students"`

	Notes        string    `gorm:"type:text" json:"notes"`
	ReporterID   uuid.UUID `gorm:"type:uuid;not null" json:"reporter_id"`
	ReporterName string    `gorm:"size:100;not null" json:"reporter_name"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AttendanceReport) TableName() string { return "attendance_reports" }
