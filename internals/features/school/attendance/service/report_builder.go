package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"noitru_backend/internals/features/school/attendance/model"
	studentModel "noitru_backend/internals/features/school/students/model"
)

// AbsentOverride — lý do / nhãn phép người báo nhập cho từng học sinh vắng.
type AbsentOverride struct {
	Reason     string `json:"reason"`
	Permission string `json:"permission"` // P | KP, trống = KP
}

// ReportForm — trạng thái form sau khi người báo bấm lưu. Form có hai biến
// thể (tick danh sách vắng hoặc tick danh sách có mặt); builder quy hết về
// absent-set trước khi dựng báo cáo.
type ReportForm struct {
	Date     time.Time
	Type     string
	Session  string
	MealType string
	ClassID  *uuid.UUID

	AbsentStudentIDs  []uuid.UUID
	PresentStudentIDs []uuid.UUID // chỉ dùng khi AbsentStudentIDs == nil
	UsePresentSet     bool

	Overrides map[uuid.UUID]AbsentOverride

	Notes        string
	ReporterID   uuid.UUID
	ReporterName string
}

var (
	ErrInvalidReportType = errors.New("loại báo cáo không hợp lệ")
	ErrMissingSession    = errors.New("báo cáo nội trú phải có đúng một session")
	ErrMissingMealType   = errors.New("báo cơm phải có đúng một bữa")
)

func validSession(s string) bool {
	for _, v := range model.BoardingSessions {
		if v == s {
			return true
		}
	}
	return false
}

func validMealType(m string) bool {
	for _, v := range model.MealTypes {
		if v == m {
			return true
		}
	}
	return false
}

// BuildReport dựng AttendanceReport chuẩn từ form + roster trong phạm vi báo
// cáo. Hàm thuần: không I/O, không side effect — việc lưu là chuyện của
// collaborator bên ngoài.
//
// Bất biến đầu ra: total = len(roster), absent = len(absent-set ∩ roster),
// present = total - absent. Mỗi học sinh vắng được snapshot nguyên trạng
// tên/lớp/phòng/mâm vào AbsentEntry — không lưu tham chiếu sống.
func BuildReport(form ReportForm, roster []studentModel.StudentModel) (model.AttendanceReport, error) {
	switch form.Type {
	case model.ReportTypeEveningStudy:
		// không cần session/mealType
	case model.ReportTypeBoarding:
		if !validSession(form.Session) {
			return model.AttendanceReport{}, ErrMissingSession
		}
	case model.ReportTypeMeal:
		if !validMealType(form.MealType) {
			return model.AttendanceReport{}, ErrMissingMealType
		}
	default:
		return model.AttendanceReport{}, ErrInvalidReportType
	}

	absentSet := canonicalAbsentSet(form, roster)

	entries := make([]model.AbsentEntry, 0, len(absentSet))
	for _, s := range roster {
		if _, absent := absentSet[s.ID]; !absent {
			continue
		}
		entry := model.AbsentEntry{
			StudentID:  s.ID,
			Name:       s.Name,
			ClassID:    s.ClassID,
			Room:       s.Room,
			MealGroup:  s.MealGroup,
			Permission: model.PermissionUnexcused,
		}
		if ov, ok := form.Overrides[s.ID]; ok {
			entry.Reason = ov.Reason
			if ov.Permission == model.PermissionExcused {
				entry.Permission = model.PermissionExcused
			}
		}
		entries = append(entries, entry)
	}

	total := len(roster)
	absent := len(entries)

	report := model.AttendanceReport{
		Date:           form.Date,
		Type:           form.Type,
		ClassID:        form.ClassID,
		TotalStudents:  total,
		PresentCount:   total - absent,
		AbsentCount:    absent,
		AbsentStudents: datatypes.NewJSONSlice(entries),
		Notes:          form.Notes,
		ReporterID:     form.ReporterID,
		ReporterName:   form.ReporterName,
	}
	if form.Type == model.ReportTypeBoarding {
		report.Session = form.Session
	}
	if form.Type == model.ReportTypeMeal {
		report.MealType = form.MealType
	}
	return report, nil
}

// canonicalAbsentSet quy hai biến thể form về một set vắng, chỉ giữ ID có
// trong roster (ID lạ từ form cũ/bẩn bị bỏ qua).
func canonicalAbsentSet(form ReportForm, roster []studentModel.StudentModel) map[uuid.UUID]struct{} {
	inRoster := make(map[uuid.UUID]struct{}, len(roster))
	for _, s := range roster {
		inRoster[s.ID] = struct{}{}
	}

	absent := make(map[uuid.UUID]struct{})
	if form.UsePresentSet && form.AbsentStudentIDs == nil {
		present := make(map[uuid.UUID]struct{}, len(form.PresentStudentIDs))
		for _, id := range form.PresentStudentIDs {
			present[id] = struct{}{}
		}
		for _, s := range roster {
			if _, ok := present[s.ID]; !ok {
				absent[s.ID] = struct{}{}
			}
		}
		return absent
	}

	for _, id := range form.AbsentStudentIDs {
		if _, ok := inRoster[id]; ok {
			absent[id] = struct{}{}
		}
	}
	return absent
}
