package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"testimonial_backend/internals/features/spaces/spaces/controller"
	helperOSS "testimonial_backend/internals/helpers/oss"
	authMw "testimonial_backend/internals/middlewares/auth"
)

func SpaceRoutes(app *fiber.App, db *gorm.DB) {
	blob, err := helperOSS.NewOSSBlobServiceFromEnv("uploads")
	if err != nil {
		// replaced assets stay in the bucket until OSS is configured
		log.Printf("[WARN] OSS not configured: %v", err)
	}

	var svc helperOSS.BlobService
	if blob != nil {
		svc = blob
	}
	ctrl := controller.NewSpaceController(db, svc)

	spaces := app.Group("/spaces/master")

	// public form payload by slug
	spaces.Get("/slug/:slug", ctrl.GetSpaceBySlug)

	// owner-only
	spaces.Post("/", authMw.AuthMiddleware(db), ctrl.UpsertSpace)
	spaces.Get("/fetch/user", authMw.AuthMiddleware(db), ctrl.GetSpaceByUser)
}
