package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"noitru_backend/internals/constants"
	"noitru_backend/internals/features/school/attendance/controller"
	authMiddleware "noitru_backend/internals/middlewares/auth"
)

func AttendanceRoutes(app *fiber.App, db *gorm.DB) {
	attendanceCtrl := controller.NewAttendanceController(db)
	statsCtrl := controller.NewStatsController(db)
	exportCtrl := controller.NewExportController(db)

	// ===================== BÁO CÁO =====================
	// Group gate theo hợp hai bộ role; cổng riêng từng loại (báo cơm vs
	// điểm danh) nằm ở controller theo type của request.
	reports := app.Group("/api/u/attendance-reports",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorAttendance("báo cáo"),
			append(append([]string{}, constants.AttendanceRoles...), constants.RoleAccountant, constants.RoleKitchen)...,
		),
	)
	reports.Get("/", attendanceCtrl.List)
	reports.Post("/", attendanceCtrl.Create)

	// ===================== BÁO CƠM =====================
	meals := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorMeals("báo cơm"), constants.MealsRoles...),
	)
	meals.Get("/meal-deadlines", attendanceCtrl.MealDeadlines)
	meals.Get("/stats/meals", statsCtrl.RangeMeals)
	meals.Get("/stats/meals/daily", statsCtrl.DailyMeals)
	meals.Get("/stats/meals/export", exportCtrl.MealsXLSX)

	// ===================== ĐIỂM DANH =====================
	attendance := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAttendance("thống kê"), constants.AttendanceRoles...),
	)
	attendance.Get("/stats/attendance", statsCtrl.AttendanceSlice)

	// ===================== ADMIN =====================
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("báo cáo"), constants.AdminOnly...),
	)
	admin.Delete("/attendance-reports", attendanceCtrl.DeleteByType)
}
