package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"noitru_backend/internals/constants"
	dutyController "noitru_backend/internals/features/school/duty/controller"
	authMiddleware "noitru_backend/internals/middlewares/auth"
)

// Lịch trực đọc được cho mọi người đã đăng nhập; phân công chỉ dành cho admin.
func DutyRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := dutyController.NewDutyController(db)

	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	user.Get("/duty-entries", ctrl.ListByMonth)
	user.Get("/duty-shift/active", ctrl.ActiveShift)

	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("phân công trực"), constants.AdminOnly...),
	)
	admin.Post("/duty-entries", ctrl.Create)
	admin.Post("/duty-entries/bulk", ctrl.BulkAssign)
	admin.Put("/duty-entries/:id", ctrl.Update)
	admin.Delete("/duty-entries/:id", ctrl.Delete)
}
