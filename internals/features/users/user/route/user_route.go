package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"noitru_backend/internals/constants"
	userController "noitru_backend/internals/features/users/user/controller"
	authMiddleware "noitru_backend/internals/middlewares/auth"
)

func UserRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("quản lý tài khoản"), constants.AdminOnly...),
	)
	admin.Get("/users", ctrl.List)
	admin.Get("/users/:id", ctrl.Detail)
	admin.Put("/users/:id", ctrl.Update)
}
