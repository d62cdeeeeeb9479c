package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"noitru_backend/internals/middlewares/logger"
)

// SetupMiddlewares gắn các middleware nền cho toàn app.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
