package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"testimonial_backend/internals/features/users/auth/controller"
	"testimonial_backend/internals/middlewares"
	authMw "testimonial_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := app.Group("/users/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/refresh-token", ctrl.RefreshToken)

	auth.Post("/logout", authMw.AuthMiddleware(db), ctrl.Logout)
	auth.Get("/me", authMw.AuthMiddleware(db), ctrl.Me)
}
