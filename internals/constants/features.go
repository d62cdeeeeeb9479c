package constants

// Feature codes — khóa ổn định cho hệ thống phân quyền chi tiết.
// Phải khớp với cột app_features.code trong DB.
const (
	FeatureMeals       = "meals"
	FeatureAttendance  = "attendance"
	FeatureStudents    = "students"
	FeatureDuty        = "duty"
	FeatureUsers       = "users"
	FeaturePermissions = "permissions"
	FeatureReports     = "reports"
)
