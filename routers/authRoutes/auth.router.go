package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "webmatematica/controllers/auth"
	"webmatematica/middleware"
	authValidators "webmatematica/validators/auth"
)

func SetupAuthRoutes(app *fiber.App, auth *middleware.Auth, ctl *authControllers.AuthController) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), ctl.Signup)
	authGroup.Post("/login", authValidators.Login(), ctl.Login)
	authGroup.Get("/me", auth.JWTMiddleware, ctl.Me)
	authGroup.Get("/login/history", auth.JWTMiddleware, ctl.LoginHistoryList)
}
