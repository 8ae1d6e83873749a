package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"testimonial_backend/internals/features/reviews/tags/controller"
	authMw "testimonial_backend/internals/middlewares/auth"
)

func TagRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewTagController(db)

	tags := app.Group("/reviews/tags", authMw.AuthMiddleware(db))
	tags.Post("/", ctrl.CreateTag)
	tags.Get("/user/tags", ctrl.GetUserTags)
	tags.Delete("/:id", ctrl.DeleteTag)
}
