package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fileController "testimonial_backend/internals/features/files/controller"
	helperOSS "testimonial_backend/internals/helpers/oss"
	authMw "testimonial_backend/internals/middlewares/auth"
)

func FileRoutes(app *fiber.App, db *gorm.DB) {
	blob, err := helperOSS.NewOSSBlobServiceFromEnv("uploads")
	if err != nil {
		// the endpoint stays registered and answers 503 until OSS is configured
		log.Printf("[WARN] OSS not configured: %v", err)
	}

	var svc helperOSS.BlobService
	if blob != nil {
		svc = blob
	}
	fc := fileController.NewFileController(svc)

	files := app.Group("/common/file", authMw.AuthMiddleware(db))
	files.Post("/upload", fc.Upload)
}
