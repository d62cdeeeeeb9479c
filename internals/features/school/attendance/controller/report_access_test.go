package controller

import (
	"testing"

	"noitru_backend/internals/constants"
	"noitru_backend/internals/features/school/attendance/model"
)

func TestCanAccessReportType(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		reportType string
		want       bool
	}{
		{"kitchen được báo cơm", []string{constants.RoleKitchen}, model.ReportTypeMeal, true},
		{"kitchen không được tự học", []string{constants.RoleKitchen}, model.ReportTypeEveningStudy, false},
		{"kitchen không được nội trú", []string{constants.RoleKitchen}, model.ReportTypeBoarding, false},
		{"accountant không được điểm danh", []string{constants.RoleAccountant}, model.ReportTypeBoarding, false},
		{"teacher thuần không được báo cơm", []string{constants.RoleTeacher}, model.ReportTypeMeal, false},
		{"teacher thuần được tự học", []string{constants.RoleTeacher}, model.ReportTypeEveningStudy, true},
		{"GVCN được cả hai", []string{constants.RoleClassTeacher}, model.ReportTypeMeal, true},
		{"GVCN điểm danh", []string{constants.RoleClassTeacher}, model.ReportTypeBoarding, true},
		{"admin được cả hai", []string{constants.RoleAdmin}, model.ReportTypeMeal, true},
		{"không role nào", nil, model.ReportTypeMeal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canAccessReportType(tt.roles, tt.reportType); got != tt.want {
				t.Errorf("canAccessReportType(%v, %s) = %v, muốn %v", tt.roles, tt.reportType, got, tt.want)
			}
		})
	}
}

func TestAllowedReportTypes(t *testing.T) {
	// kitchen chỉ thấy báo cơm khi list không filter type
	got := allowedReportTypes([]string{constants.RoleKitchen})
	if len(got) != 1 || got[0] != model.ReportTypeMeal {
		t.Errorf("kitchen: %v, muốn chỉ [meal]", got)
	}

	// teacher thuần thấy hai loại điểm danh, không thấy báo cơm
	got = allowedReportTypes([]string{constants.RoleTeacher})
	if len(got) != 2 {
		t.Fatalf("teacher: %v", got)
	}
	for _, typ := range got {
		if typ == model.ReportTypeMeal {
			t.Error("teacher thuần không được thấy báo cơm")
		}
	}

	// GVCN thấy cả ba
	if got = allowedReportTypes([]string{constants.RoleClassTeacher}); len(got) != 3 {
		t.Errorf("GVCN: %v, muốn đủ 3 loại", got)
	}

	// không role: rỗng
	if got = allowedReportTypes(nil); len(got) != 0 {
		t.Errorf("không role phải ra rỗng, got %v", got)
	}
}
