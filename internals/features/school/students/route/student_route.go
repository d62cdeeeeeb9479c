package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"noitru_backend/internals/constants"
	"noitru_backend/internals/features/school/students/controller"
	authMiddleware "noitru_backend/internals/middlewares/auth"
)

func StudentRoutes(app *fiber.App, db *gorm.DB) {
	studentCtrl := controller.NewStudentController(db)
	classCtrl := controller.NewClassController(db)

	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	user.Get("/classes", classCtrl.List)

	// Hồ sơ học sinh: admin + GVCN (GVCN bị giới hạn lớp mình ở tầng controller)
	students := app.Group("/api/u/students",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorAttendance("học sinh"),
			constants.RoleAdmin, constants.RoleClassTeacher,
		),
	)

	students.Get("/", studentCtrl.List)
	students.Post("/", studentCtrl.Create)
	students.Post("/bulk", studentCtrl.BulkInsert)
	students.Put("/:id", studentCtrl.Update)
	students.Delete("/:id", studentCtrl.Delete)
}
