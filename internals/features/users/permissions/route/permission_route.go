package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"noitru_backend/internals/constants"
	"noitru_backend/internals/features/users/permissions/controller"
	authMiddleware "noitru_backend/internals/middlewares/auth"
)

func PermissionRoutes(app *fiber.App, db *gorm.DB) {
	featureCtrl := controller.NewFeatureController(db)
	groupCtrl := controller.NewGroupController(db)
	grantCtrl := controller.NewGrantController(db)

	// ===================== USER =====================
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	user.Get("/permissions/me", grantCtrl.MyAccess)

	// ===================== ADMIN =====================
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("phân quyền"), constants.AdminOnly...),
	)

	admin.Get("/features", featureCtrl.List)
	admin.Post("/features", featureCtrl.Create)
	admin.Put("/features/:id", featureCtrl.Update)
	admin.Delete("/features/:id", featureCtrl.Delete)

	admin.Get("/permission-groups", groupCtrl.List)
	admin.Post("/permission-groups", groupCtrl.Create)
	admin.Delete("/permission-groups/:id", groupCtrl.Delete)
	admin.Get("/permission-groups/:id/members", groupCtrl.ListMembers)
	admin.Post("/permission-groups/:id/members", groupCtrl.AddMember)
	admin.Delete("/permission-groups/:id/members/:userId", groupCtrl.RemoveMember)

	admin.Get("/permission-groups/:id/permissions", grantCtrl.ListGroupGrants)
	admin.Put("/permission-groups/:id/permissions", grantCtrl.SetGroupGrant)
	admin.Get("/users/:userId/permissions", grantCtrl.ListUserGrants)
	admin.Put("/users/:userId/permissions", grantCtrl.SetUserGrant)
}
