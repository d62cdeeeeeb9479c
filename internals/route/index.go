package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "noitru_backend/internals/features/school/attendance/route"
	dutyRoute "noitru_backend/internals/features/school/duty/route"
	studentRoute "noitru_backend/internals/features/school/students/route"
	authRoute "noitru_backend/internals/features/users/auth/route"
	permissionRoute "noitru_backend/internals/features/users/permissions/route"
	userRoute "noitru_backend/internals/features/users/user/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== TÀI KHOẢN =====================
	log.Println("[INFO] Setting up UserRoutes...")
	userRoute.UserRoutes(app, db)

	// ===================== PHÂN QUYỀN =====================
	log.Println("[INFO] Setting up PermissionRoutes...")
	permissionRoute.PermissionRoutes(app, db)

	// ===================== HỌC SINH / LỚP =====================
	log.Println("[INFO] Setting up StudentRoutes...")
	studentRoute.StudentRoutes(app, db)

	// ===================== ĐIỂM DANH / BÁO CƠM =====================
	log.Println("[INFO] Setting up AttendanceRoutes...")
	attendanceRoute.AttendanceRoutes(app, db)

	// ===================== TRỰC NỘI TRÚ =====================
	log.Println("[INFO] Setting up DutyRoutes...")
	dutyRoute.DutyRoutes(app, db)
}
