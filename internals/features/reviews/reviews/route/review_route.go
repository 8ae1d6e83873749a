package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reviewController "testimonial_backend/internals/features/reviews/reviews/controller"
	"testimonial_backend/internals/middlewares"
	authMw "testimonial_backend/internals/middlewares/auth"
)

func ReviewRoutes(app *fiber.App, db *gorm.DB) {
	rc := reviewController.NewReviewController(db)

	reviews := app.Group("/reviews/master")

	// public submission endpoint, throttled
	reviews.Post("/", middlewares.ReviewSubmitRateLimiter(), rc.CreateReview)

	// owner-only listing
	reviews.Get("/space", authMw.AuthMiddleware(db), rc.GetSpaceReviews)
}
