package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fileRoute "testimonial_backend/internals/features/files/route"
	reviewRoute "testimonial_backend/internals/features/reviews/reviews/route"
	tagRoute "testimonial_backend/internals/features/reviews/tags/route"
	spaceRoute "testimonial_backend/internals/features/spaces/spaces/route"
	authRoute "testimonial_backend/internals/features/users/auth/route"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== AUTH / USER BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Space routes...")
	spaceRoute.SpaceRoutes(app, db)

	log.Println("[INFO] Mounting Review routes...")
	reviewRoute.ReviewRoutes(app, db)

	log.Println("[INFO] Mounting Tag routes...")
	tagRoute.TagRoutes(app, db)

	log.Println("[INFO] Mounting File routes...")
	fileRoute.FileRoutes(app, db)
}
