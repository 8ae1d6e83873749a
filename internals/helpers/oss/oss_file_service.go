package helper

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService is the upload facade controllers talk to. Keys are grouped by
slot so assets stay browsable in the bucket:

  uploads/logos/..., uploads/watermarks/..., uploads/avatars/...,
  uploads/media/... (captured video / poster frames)
*/
type BlobService interface {
	UploadImage(slot string, fh *multipart.FileHeader) (publicURL string, err error)
	UploadImageWatermarked(slot string, fh, mark *multipart.FileHeader, position string) (publicURL string, err error)
	UploadRaw(slot string, fh *multipart.FileHeader) (publicURL, objectKey string, err error)
	DeleteByPublicURL(publicURL string) error
}

var imageSlots = map[string]struct{}{
	"logos":      {},
	"watermarks": {},
	"avatars":    {},
}

// ValidUploadSlot reports whether slot is one this service accepts.
func ValidUploadSlot(slot string) bool {
	if _, ok := imageSlots[slot]; ok {
		return true
	}
	return slot == "media"
}

// IsImageSlot reports whether uploads to slot go through WebP re-encode.
func IsImageSlot(slot string) bool {
	_, ok := imageSlots[slot]
	return ok
}

type OSSBlobService struct {
	svc *OSSService
}

func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadImage(slot string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	return b.svc.UploadAsWebP(slot, fh, 1600, 1600, 80)
}

func (b *OSSBlobService) UploadImageWatermarked(slot string, fh, mark *multipart.FileHeader, position string) (string, error) {
	if fh == nil || mark == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	return b.svc.UploadAsWebPWatermarked(slot, fh, mark, position, 1600, 1600, 80)
}

func (b *OSSBlobService) UploadRaw(slot string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	return b.svc.UploadFromFormFile(slot, fh)
}

func (b *OSSBlobService) DeleteByPublicURL(publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return nil
	}
	return b.svc.DeleteByPublicURL(publicURL)
}
