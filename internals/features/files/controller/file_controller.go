package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "testimonial_backend/internals/helpers"
	helperOSS "testimonial_backend/internals/helpers/oss"
)

type FileController struct {
	Blob helperOSS.BlobService
}

func NewFileController(blob helperOSS.BlobService) *FileController {
	return &FileController{Blob: blob}
}

// 🟢 UPLOAD FILE — POST /common/file/upload
// Image slots (logos, watermarks, avatars) are re-encoded to WebP; the
// media slot stores recordings as-is.
func (fc *FileController) Upload(c *fiber.Ctx) error {
	if fc.Blob == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	slot := strings.TrimSpace(c.FormValue("slot"))
	if slot == "" {
		slot = "media"
	}
	if !helperOSS.ValidUploadSlot(slot) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown upload slot")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing file")
	}

	if helperOSS.IsImageSlot(slot) {
		// an optional watermark part is composed onto the image before encoding
		if mark, markErr := c.FormFile("watermark"); markErr == nil && mark != nil {
			position := strings.TrimSpace(c.FormValue("watermark_position"))
			if !helperOSS.ValidWatermarkPosition(position) {
				return helper.JsonError(c, fiber.StatusBadRequest, "Unknown watermark position")
			}
			url, err := fc.Blob.UploadImageWatermarked(slot, fh, mark, position)
			if err != nil {
				log.Printf("[ERROR] upload watermarked image slot=%s: %v", slot, err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload file")
			}
			return helper.JsonCreated(c, "File uploaded", fiber.Map{"url": url})
		}

		url, err := fc.Blob.UploadImage(slot, fh)
		if err != nil {
			log.Printf("[ERROR] upload image slot=%s: %v", slot, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload file")
		}
		return helper.JsonCreated(c, "File uploaded", fiber.Map{"url": url})
	}

	url, key, err := fc.Blob.UploadRaw(slot, fh)
	if err != nil {
		log.Printf("[ERROR] upload raw slot=%s: %v", slot, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload file")
	}
	return helper.JsonCreated(c, "File uploaded", fiber.Map{"url": url, "key": key})
}
