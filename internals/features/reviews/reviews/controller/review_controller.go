package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"testimonial_backend/internals/features/reviews/reviews/dto"
	"testimonial_backend/internals/features/reviews/reviews/intake"
	"testimonial_backend/internals/features/reviews/reviews/model"
	tagModel "testimonial_backend/internals/features/reviews/tags/model"
	spaceModel "testimonial_backend/internals/features/spaces/spaces/model"
	helper "testimonial_backend/internals/helpers"
)

type ReviewController struct {
	DB *gorm.DB

	// collapses double-submitted forms into one persisted review
	group singleflight.Group
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// 🟢 CREATE REVIEW — POST /reviews/master (public)
// The submission is validated against the setting of the space it targets,
// then driven through the intake lifecycle before anything is persisted.
func (rc *ReviewController) CreateReview(c *fiber.Ctx) error {
	var req dto.ReviewSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var space spaceModel.SpaceModel
	if err := rc.DB.Preload("Setting").
		Where("space_id = ?", req.SpaceID).
		Take(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Space not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch space")
	}
	if space.Setting == nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Space has no settings row")
	}
	setting := space.Setting

	if errs := dto.ValidateSubmission(setting, &req); len(errs) > 0 {
		return helper.JsonValidationError(c, dto.AsMap(errs))
	}

	if len(req.TagIDs) > 0 {
		var count int64
		if err := rc.DB.Model(&tagModel.TagModel{}).
			Where("tag_id IN ? AND tag_user_id = ?", req.TagIDs, space.SpaceUserID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify tags")
		}
		if count != int64(len(req.TagIDs)) {
			return helper.JsonValidationError(c, map[string][]string{
				"tag_ids": {"One or more tags do not belong to this space"},
			})
		}
	}

	key := fmt.Sprintf("submit-review:%s:%s:%s", space.SpaceID, req.ReviewerName, c.IP())
	v, err, _ := rc.group.Do(key, func() (any, error) {
		return rc.submit(&space, &req)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save review")
	}

	return helper.JsonCreated(c, "Review submitted", v)
}

func (rc *ReviewController) submit(space *spaceModel.SpaceModel, req *dto.ReviewSubmitRequest) (dto.ReviewResponse, error) {
	setting := space.Setting

	cfg := intake.Config{
		CollectionType:     setting.SpaceSettingCollectionType,
		VideoDuration:      setting.SpaceSettingVideoDuration,
		DisableVideoRecord: setting.SpaceSettingDisableVideoRecord,
		ThirdpartyEnabled:  setting.SpaceSettingThirdparty != nil && *setting.SpaceSettingThirdparty != "",
	}
	draft := intake.Draft{}
	if req.VideoURL != nil {
		draft.VideoURL = *req.VideoURL
	}
	if req.Text != nil {
		draft.Text = *req.Text
	}
	if req.ThirdpartyLink != nil {
		draft.ThirdpartyLink = *req.ThirdpartyLink
	}

	var review model.ReviewModel

	machine, err := intake.Run(cfg, draft,
		func(d intake.Draft) error {
			// the per-field pass already ran, this guards the lifecycle itself
			if errs := dto.ValidateSubmission(setting, req); len(errs) > 0 {
				return fiber.NewError(fiber.StatusUnprocessableEntity, errs[0].Message)
			}
			return nil
		},
		func(d intake.Draft) error {
			r, buildErr := buildReview(space, req, d)
			if buildErr != nil {
				return buildErr
			}
			review = *r
			return rc.DB.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&review).Error; err != nil {
					return err
				}
				if len(req.TagIDs) == 0 {
					return nil
				}
				var tags []tagModel.TagModel
				if err := tx.Where("tag_id IN ?", req.TagIDs).Find(&tags).Error; err != nil {
					return err
				}
				return tx.Model(&review).Association("Tags").Replace(tags)
			})
		})
	if err != nil {
		var se *intake.StateError
		if errors.As(err, &se) {
			return dto.ReviewResponse{}, fiber.NewError(fiber.StatusUnprocessableEntity, se.Error())
		}
		return dto.ReviewResponse{}, err
	}
	if machine.State() != intake.StateSubmitted {
		return dto.ReviewResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Review was not submitted")
	}

	return dto.ToReviewResponse(review, req.Answers), nil
}

func buildReview(space *spaceModel.SpaceModel, req *dto.ReviewSubmitRequest, d intake.Draft) (*model.ReviewModel, error) {
	setting := space.Setting

	review := model.ReviewModel{
		ReviewSpaceID: space.SpaceID,
		ReviewerName:  strings.TrimSpace(req.ReviewerName),
		ReviewerEmail: req.ReviewerEmail,
		ReviewType:    setting.SpaceSettingCollectionType,
		ReviewStar:    req.Star,
	}

	switch setting.SpaceSettingCollectionType {
	case spaceModel.CollectionTypeVideo:
		if d.ThirdpartyLink != "" {
			review.ReviewThirdparty = setting.SpaceSettingThirdparty
			review.ReviewThirdpartyLink = &d.ThirdpartyLink
		} else {
			url := d.VideoURL
			review.ReviewVideoURL = &url
		}
	case spaceModel.CollectionTypeText:
		text := d.Text
		review.ReviewText = &text
	}

	// watermark metadata only travels when the group is complete
	if setting.SpaceSettingApplyWatermark &&
		setting.SpaceSettingWatermarkImage != nil && *setting.SpaceSettingWatermarkImage != "" &&
		setting.SpaceSettingWatermarkPosition != nil && *setting.SpaceSettingWatermarkPosition != "" {
		review.ReviewWatermarkApplied = true
		review.ReviewWatermarkImage = setting.SpaceSettingWatermarkImage
		review.ReviewWatermarkPosition = setting.SpaceSettingWatermarkPosition
	}

	if len(req.Answers) > 0 {
		raw, err := json.Marshal(req.Answers)
		if err != nil {
			return nil, err
		}
		review.ReviewAnswers = datatypes.JSON(raw)
	}

	return &review, nil
}

// 🔍 GET /reviews/master/space — the owner's reviews, newest first
func (rc *ReviewController) GetSpaceReviews(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var space spaceModel.SpaceModel
	if err := rc.DB.Where("space_user_id = ?", userID).Take(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Space not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch space")
	}

	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	var total int64
	if err := rc.DB.Model(&model.ReviewModel{}).
		Where("review_space_id = ?", space.SpaceID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count reviews")
	}

	pagination := helper.BuildPaginationFromPage(total, page, perPage)

	var reviews []model.ReviewModel
	if err := rc.DB.Where("review_space_id = ?", space.SpaceID).
		Preload("Tags").
		Order("review_created_at DESC").
		Limit(pagination.PerPage).
		Offset((pagination.Page - 1) * pagination.PerPage).
		Find(&reviews).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	out := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		var answers []dto.QuestionAnswer
		if len(reviews[i].ReviewAnswers) > 0 {
			if err := json.Unmarshal(reviews[i].ReviewAnswers, &answers); err != nil {
				log.Printf("[ERROR] decode answers review=%s: %v", reviews[i].ReviewID, err)
			}
		}
		out = append(out, dto.ToReviewResponse(reviews[i], answers))
	}

	return helper.JsonList(c, "ok", out, pagination)
}
