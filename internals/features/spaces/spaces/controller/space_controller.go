package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"testimonial_backend/internals/features/spaces/spaces/dto"
	"testimonial_backend/internals/features/spaces/spaces/model"
	"testimonial_backend/internals/features/spaces/spaces/question"
	helper "testimonial_backend/internals/helpers"
	helperOSS "testimonial_backend/internals/helpers/oss"
)

type SpaceController struct {
	DB *gorm.DB

	// nil when object storage is not configured; replaced assets are
	// then simply left in place
	Blob helperOSS.BlobService

	// collapses double-clicked upserts into one write per owner
	group singleflight.Group
}

func NewSpaceController(db *gorm.DB, blob helperOSS.BlobService) *SpaceController {
	return &SpaceController{DB: db, Blob: blob}
}

type upsertResult struct {
	status int
	body   dto.SpaceResponse
}

// 🟢 CREATE / REPLACE SPACE — POST /spaces/master
// The full settings object is replaced on every call; the owner id always
// comes from the token.
func (sc *SpaceController) UpsertSpace(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.SpaceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req.SpaceSetting.Normalize()
	if qs, err := question.Normalize(req.SpaceSetting.Questions); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"space_questions": {err.Error()}})
	} else {
		req.SpaceSetting.Questions = qs
	}
	if errs := req.Validate(); len(errs) > 0 {
		return helper.JsonValidationError(c, dto.AsMap(errs))
	}

	v, err, _ := sc.group.Do("upsert-space:"+userID.String(), func() (any, error) {
		return sc.upsert(userID, &req)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save space")
	}

	res := v.(upsertResult)
	if res.status == fiber.StatusCreated {
		return helper.JsonCreated(c, "Space created", res.body)
	}
	return helper.JsonUpdated(c, "Space updated", res.body)
}

func (sc *SpaceController) upsert(userID uuid.UUID, req *dto.SpaceRequest) (upsertResult, error) {
	var existing model.SpaceModel
	err := sc.DB.Preload("Setting").
		Where("space_user_id = ?", userID).
		Take(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return sc.create(userID, req)
	case err != nil:
		return upsertResult{}, err
	default:
		return sc.replace(&existing, req)
	}
}

func (sc *SpaceController) create(userID uuid.UUID, req *dto.SpaceRequest) (upsertResult, error) {
	base := helper.GenerateSlug(req.SpaceName)
	if base == "" {
		base = "space"
	}
	slug, err := helper.EnsureUniqueSlug(sc.DB, base, "spaces", "space_slug")
	if err != nil {
		return upsertResult{}, err
	}

	space := model.SpaceModel{
		SpaceUserID: userID,
		SpaceName:   strings.TrimSpace(req.SpaceName),
		SpaceSlug:   slug,
	}

	setting := model.SpaceSettingModel{SpaceSettingVersion: 1}
	if err := req.SpaceSetting.ApplyToModel(&setting); err != nil {
		return upsertResult{}, err
	}

	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&space).Error; err != nil {
			return err
		}
		setting.SpaceSettingSpaceID = space.SpaceID
		return tx.Create(&setting).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return upsertResult{}, fiber.NewError(fiber.StatusConflict, "A space already exists for this account")
		}
		return upsertResult{}, err
	}

	space.Setting = &setting
	return upsertResult{status: fiber.StatusCreated, body: dto.ToSpaceResponse(&space)}, nil
}

func (sc *SpaceController) replace(existing *model.SpaceModel, req *dto.SpaceRequest) (upsertResult, error) {
	if existing.Setting == nil {
		return upsertResult{}, fiber.NewError(fiber.StatusInternalServerError, "Space has no settings row")
	}

	// stale writers carry the version they read; reject anything older
	if req.SpaceSetting.Version != existing.Setting.SpaceSettingVersion {
		return upsertResult{}, fiber.NewError(fiber.StatusConflict,
			"Space settings were changed by another session, reload and try again")
	}

	next := model.SpaceSettingModel{
		SpaceSettingID:        existing.Setting.SpaceSettingID,
		SpaceSettingSpaceID:   existing.SpaceID,
		SpaceSettingVersion:   existing.Setting.SpaceSettingVersion + 1,
		SpaceSettingCreatedAt: existing.Setting.SpaceSettingCreatedAt,
	}
	if err := req.SpaceSetting.ApplyToModel(&next); err != nil {
		return upsertResult{}, err
	}

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		if strings.TrimSpace(req.SpaceName) != "" && req.SpaceName != existing.SpaceName {
			existing.SpaceName = strings.TrimSpace(req.SpaceName)
			if err := tx.Model(existing).Update("space_name", existing.SpaceName).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&model.SpaceSettingModel{}).
			Where("space_setting_id = ? AND space_setting_version = ?",
				next.SpaceSettingID, req.SpaceSetting.Version).
			Select("*").
			Omit("space_setting_id", "space_setting_space_id", "space_setting_created_at").
			Updates(&next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict,
				"Space settings were changed by another session, reload and try again")
		}
		return nil
	})
	if err != nil {
		return upsertResult{}, err
	}

	// the update took, so objects the owner swapped out are unreachable now
	sc.deleteStaleBlobs(staleBlobURLs(existing.Setting, &next))

	existing.Setting = &next
	return upsertResult{status: fiber.StatusOK, body: dto.ToSpaceResponse(existing)}, nil
}

// staleBlobURLs lists stored asset URLs the new settings no longer reference.
func staleBlobURLs(old, next *model.SpaceSettingModel) []string {
	var stale []string
	pairs := [][2]*string{
		{old.SpaceSettingLogo, next.SpaceSettingLogo},
		{old.SpaceSettingWatermarkImage, next.SpaceSettingWatermarkImage},
		{old.SpaceSettingTestimonialAvatar, next.SpaceSettingTestimonialAvatar},
	}
	for _, p := range pairs {
		prev, cur := p[0], p[1]
		if prev == nil || *prev == "" {
			continue
		}
		if cur == nil || *cur != *prev {
			stale = append(stale, *prev)
		}
	}
	return stale
}

func (sc *SpaceController) deleteStaleBlobs(urls []string) {
	if sc.Blob == nil {
		return
	}
	for _, u := range urls {
		if err := sc.Blob.DeleteByPublicURL(u); err != nil {
			log.Printf("[ERROR] delete stale asset %s: %v", u, err)
		}
	}
}

// 🔍 GET /spaces/master/fetch/user — the caller's own space
func (sc *SpaceController) GetSpaceByUser(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var space model.SpaceModel
	if err := sc.DB.Preload("Setting").
		Where("space_user_id = ?", userID).
		Take(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Space not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch space")
	}

	return helper.JsonOK(c, "ok", dto.ToSpaceResponse(&space))
}

// 🔍 GET /spaces/master/slug/:slug — public form payload, credentials stripped
func (sc *SpaceController) GetSpaceBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing slug")
	}

	var space model.SpaceModel
	if err := sc.DB.Preload("Setting").
		Where("space_slug = ?", slug).
		Take(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Space not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch space")
	}

	return helper.JsonOK(c, "ok", dto.ToPublicSpaceResponse(&space))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
