package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"testimonial_backend/internals/features/reviews/tags/dto"
	"testimonial_backend/internals/features/reviews/tags/model"
	helper "testimonial_backend/internals/helpers"
)

var validate = validator.New()

type TagController struct {
	DB *gorm.DB
}

func NewTagController(db *gorm.DB) *TagController {
	return &TagController{DB: db}
}

// 🟢 POST /reviews/tags
func (tc *TagController) CreateTag(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.TagRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.TagName = req.Normalized()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"tag_name": {"Tag name is required (max 50 characters)"}})
	}

	tag := model.TagModel{
		TagUserID: userID,
		TagName:   req.TagName,
	}
	if err := tc.DB.Create(&tag).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return helper.JsonError(c, fiber.StatusConflict, "Tag already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create tag")
	}

	return helper.JsonCreated(c, "Tag created", dto.ToTagResponse(&tag))
}

// 🔍 GET /reviews/tags/user/tags
func (tc *TagController) GetUserTags(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var tags []model.TagModel
	if err := tc.DB.
		Where("tag_user_id = ?", userID).
		Order("tag_created_at ASC").
		Find(&tags).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tags")
	}

	return helper.JsonOK(c, "ok", dto.ToTagResponses(tags))
}

// 🗑 DELETE /reviews/tags/:id
// Detaches the tag from every review, then removes it. Reviews stay intact.
func (tc *TagController) DeleteTag(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	tagID := c.Params("id")
	var tag model.TagModel
	if err := tc.DB.
		Where("tag_id = ? AND tag_user_id = ?", tagID, userID).
		Take(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tag not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tag")
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM review_tags WHERE tag_id = ?`, tag.TagID).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete tag")
	}

	return helper.JsonDeleted(c, "Tag deleted", fiber.Map{"tag_id": tag.TagID})
}
