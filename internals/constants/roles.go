package constants

import "fmt"

// Role tags. Một user có thể giữ nhiều role cùng lúc.
const (
	RoleAdmin        = "admin"
	RoleTeacher      = "teacher"
	RoleClassTeacher = "class_teacher" // GVCN — gắn với một lớp qua class_id
	RoleAccountant   = "accountant"
	RoleKitchen      = "kitchen"
)

// Mẫu thông báo lỗi theo role
const (
	ErrOnlyAdminsCanAccess     = "❌ Chỉ quản trị viên mới được truy cập chức năng %s."
	ErrOnlyAttendanceCanAccess = "❌ Bạn không có quyền truy cập chức năng điểm danh %s."
	ErrOnlyMealsCanAccess      = "❌ Bạn không có quyền truy cập chức năng báo cơm %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorAttendance(feature string) string {
	return fmt.Sprintf(ErrOnlyAttendanceCanAccess, feature)
}

func RoleErrorMeals(feature string) string {
	return fmt.Sprintf(ErrOnlyMealsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTeacher,
		RoleClassTeacher,
		RoleAccountant,
		RoleKitchen,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	// Báo cơm: teacher thuần KHÔNG có quyền mặc định.
	MealsRoles = []string{
		RoleAdmin,
		RoleClassTeacher,
		RoleAccountant,
		RoleKitchen,
	}

	// Điểm danh tự học / nội trú.
	AttendanceRoles = []string{
		RoleAdmin,
		RoleTeacher,
		RoleClassTeacher,
	}
)
