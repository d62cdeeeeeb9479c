package controller

import (
	"noitru_backend/internals/constants"
	"noitru_backend/internals/features/school/attendance/model"
	helper "noitru_backend/internals/helpers"
)

// Hai cổng role thô riêng biệt: báo cơm và điểm danh. Route gom chung một
// group nên từng request vẫn phải check theo type — kitchen chỉ được đụng
// báo cơm, teacher thuần chỉ được đụng điểm danh.

func canAccessReportType(roles []string, reportType string) bool {
	if reportType == model.ReportTypeMeal {
		return helper.HasAnyRole(roles, constants.MealsRoles)
	}
	return helper.HasAnyRole(roles, constants.AttendanceRoles)
}

// allowedReportTypes — các type mà bộ role này được xem, cho query list
// không có filter type.
func allowedReportTypes(roles []string) []string {
	var out []string
	if helper.HasAnyRole(roles, constants.AttendanceRoles) {
		out = append(out, model.ReportTypeEveningStudy, model.ReportTypeBoarding)
	}
	if helper.HasAnyRole(roles, constants.MealsRoles) {
		out = append(out, model.ReportTypeMeal)
	}
	return out
}
