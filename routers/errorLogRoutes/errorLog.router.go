package errorLogRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	errorLogController "webmatematica/controllers/errorLog"
	"webmatematica/middleware"
	errorLogValidator "webmatematica/validators/errorLog"
)

func SetupErrorLogRoutes(app *fiber.App, db *gorm.DB, auth *middleware.Auth, ctl *errorLogController.ErrorLogController) {
	app.Post("/errors", auth.OptionalJWT, errorLogValidator.ReportError(), ctl.ReportError)

	adminGroup := app.Group("/admin/errors", auth.JWTMiddleware, middleware.AdminOnly(db))
	adminGroup.Get("/", errorLogValidator.ListErrors(), ctl.AdminListErrors)
	adminGroup.Delete("/recent", ctl.AdminClearRecent)
}
