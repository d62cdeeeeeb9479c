package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"noitru_backend/internals/features/school/attendance/model"
	studentModel "noitru_backend/internals/features/school/students/model"
)

func makeRoster(n int) []studentModel.StudentModel {
	classID := uuid.New()
	roster := make([]studentModel.StudentModel, 0, n)
	for i := 0; i < n; i++ {
		roster = append(roster, studentModel.StudentModel{
			ID:        uuid.New(),
			Name:      "HS " + string(rune('A'+i)),
			ClassID:   classID,
			Room:      "P101",
			MealGroup: studentModel.MealGroupM1,
		})
	}
	return roster
}

func TestBuildReport_TypeValidation(t *testing.T) {
	roster := makeRoster(3)
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		form    ReportForm
		wantErr error
	}{
		{"type lạ", ReportForm{Date: day, Type: "homework"}, ErrInvalidReportType},
		{"boarding thiếu session", ReportForm{Date: day, Type: model.ReportTypeBoarding}, ErrMissingSession},
		{"boarding session lạ", ReportForm{Date: day, Type: model.ReportTypeBoarding, Session: "lunch_break"}, ErrMissingSession},
		{"meal thiếu bữa", ReportForm{Date: day, Type: model.ReportTypeMeal}, ErrMissingMealType},
		{"meal bữa lạ", ReportForm{Date: day, Type: model.ReportTypeMeal, MealType: "supper"}, ErrMissingMealType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildReport(tt.form, roster)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, muốn %v", err, tt.wantErr)
			}
		})
	}

	// evening_study không cần session/bữa
	if _, err := BuildReport(ReportForm{Date: day, Type: model.ReportTypeEveningStudy}, roster); err != nil {
		t.Errorf("evening_study không được lỗi: %v", err)
	}
}

func TestBuildReport_CountInvariant(t *testing.T) {
	roster := makeRoster(10)
	form := ReportForm{
		Date:             time.Now(),
		Type:             model.ReportTypeEveningStudy,
		AbsentStudentIDs: []uuid.UUID{roster[0].ID, roster[3].ID, roster[7].ID},
	}

	report, err := BuildReport(form, roster)
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalStudents != 10 || report.AbsentCount != 3 || report.PresentCount != 7 {
		t.Errorf("total/absent/present = %d/%d/%d, muốn 10/3/7",
			report.TotalStudents, report.AbsentCount, report.PresentCount)
	}
	if report.PresentCount+report.AbsentCount != report.TotalStudents {
		t.Error("present + absent phải bằng total")
	}
	if len(report.AbsentStudents) != report.AbsentCount {
		t.Error("số entry vắng phải khớp absent_count")
	}
}

func TestBuildReport_UnknownIDsIgnored(t *testing.T) {
	roster := makeRoster(5)
	form := ReportForm{
		Date:             time.Now(),
		Type:             model.ReportTypeEveningStudy,
		AbsentStudentIDs: []uuid.UUID{roster[1].ID, uuid.New(), uuid.New()},
	}

	report, err := BuildReport(form, roster)
	if err != nil {
		t.Fatal(err)
	}
	if report.AbsentCount != 1 {
		t.Errorf("ID ngoài roster phải bị bỏ qua, absent = %d", report.AbsentCount)
	}
}

func TestBuildReport_PresentSetVariant(t *testing.T) {
	roster := makeRoster(5)
	// tick "có mặt" cho 3 người → 2 người còn lại vắng
	form := ReportForm{
		Date:              time.Now(),
		Type:              model.ReportTypeEveningStudy,
		UsePresentSet:     true,
		PresentStudentIDs: []uuid.UUID{roster[0].ID, roster[1].ID, roster[2].ID},
	}

	report, err := BuildReport(form, roster)
	if err != nil {
		t.Fatal(err)
	}
	if report.AbsentCount != 2 || report.PresentCount != 3 {
		t.Errorf("absent/present = %d/%d, muốn 2/3", report.AbsentCount, report.PresentCount)
	}
	for _, e := range report.AbsentStudents {
		if e.StudentID == roster[0].ID || e.StudentID == roster[1].ID || e.StudentID == roster[2].ID {
			t.Error("người được tick có mặt không được nằm trong danh sách vắng")
		}
	}
}

func TestBuildReport_SnapshotAndPermission(t *testing.T) {
	roster := makeRoster(4)
	target := roster[2]
	form := ReportForm{
		Date:             time.Now(),
		Type:             model.ReportTypeBoarding,
		Session:          model.SessionEveningSleep,
		AbsentStudentIDs: []uuid.UUID{target.ID, roster[0].ID},
		Overrides: map[uuid.UUID]AbsentOverride{
			target.ID: {Reason: "Về quê có việc gia đình", Permission: model.PermissionExcused},
		},
	}

	report, err := BuildReport(form, roster)
	if err != nil {
		t.Fatal(err)
	}
	if report.Session != model.SessionEveningSleep {
		t.Errorf("session = %q", report.Session)
	}

	var withPermit, withoutPermit *model.AbsentEntry
	for i := range report.AbsentStudents {
		e := &report.AbsentStudents[i]
		if e.StudentID == target.ID {
			withPermit = e
		} else {
			withoutPermit = e
		}
	}
	if withPermit == nil || withoutPermit == nil {
		t.Fatal("thiếu entry vắng")
	}

	// snapshot nguyên trạng hồ sơ tại thời điểm báo
	if withPermit.Name != target.Name || withPermit.ClassID != target.ClassID ||
		withPermit.Room != target.Room || withPermit.MealGroup != target.MealGroup {
		t.Error("entry vắng phải snapshot tên/lớp/phòng/mâm")
	}
	if withPermit.Permission != model.PermissionExcused || withPermit.Reason == "" {
		t.Errorf("override P không được áp: %+v", withPermit)
	}
	// không override → mặc định không phép
	if withoutPermit.Permission != model.PermissionUnexcused {
		t.Errorf("mặc định phải là KP, got %q", withoutPermit.Permission)
	}
}

// Kịch bản đầy đủ: lớp 3 học sinh, 1 vắng có phép — báo cáo ra đúng mọi trường.
func TestBuildReport_MealScenario(t *testing.T) {
	roster := makeRoster(3)
	reporterID := uuid.New()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	form := ReportForm{
		Date:             day,
		Type:             model.ReportTypeMeal,
		MealType:         model.MealLunch,
		ClassID:          &roster[0].ClassID,
		AbsentStudentIDs: []uuid.UUID{roster[1].ID},
		Overrides: map[uuid.UUID]AbsentOverride{
			roster[1].ID: {Reason: "Ốm", Permission: model.PermissionExcused},
		},
		Notes:        "Lớp báo đúng hạn",
		ReporterID:   reporterID,
		ReporterName: "Cô Lan",
	}

	report, err := BuildReport(form, roster)
	if err != nil {
		t.Fatal(err)
	}
	if report.MealType != model.MealLunch || report.Session != "" {
		t.Errorf("meal_type/session = %q/%q", report.MealType, report.Session)
	}
	if report.ClassID == nil || *report.ClassID != roster[0].ClassID {
		t.Error("class_id phải giữ nguyên phạm vi form")
	}
	if report.TotalStudents != 3 || report.PresentCount != 2 || report.AbsentCount != 1 {
		t.Errorf("3/2/1 mong đợi, got %d/%d/%d", report.TotalStudents, report.PresentCount, report.AbsentCount)
	}
	if report.ReporterID != reporterID || report.ReporterName != "Cô Lan" {
		t.Error("thông tin người báo bị mất")
	}
	if !report.Date.Equal(day) {
		t.Errorf("date = %v", report.Date)
	}
}
