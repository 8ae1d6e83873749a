package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"testimonial_backend/internals/features/spaces/spaces/model"
)

func strptr(s string) *string { return &s }

func TestStaleBlobURLsListsReplacedAssets(t *testing.T) {
	old := &model.SpaceSettingModel{
		SpaceSettingLogo:              strptr("https://b.example.com/uploads/logos/a.webp"),
		SpaceSettingWatermarkImage:    strptr("https://b.example.com/uploads/watermarks/w.webp"),
		SpaceSettingTestimonialAvatar: strptr("https://b.example.com/uploads/avatars/v.webp"),
	}
	next := &model.SpaceSettingModel{
		SpaceSettingLogo:           strptr("https://b.example.com/uploads/logos/b.webp"),
		SpaceSettingWatermarkImage: strptr("https://b.example.com/uploads/watermarks/w.webp"),
		// avatar cleared entirely
	}

	stale := staleBlobURLs(old, next)
	assert.ElementsMatch(t, []string{
		"https://b.example.com/uploads/logos/a.webp",
		"https://b.example.com/uploads/avatars/v.webp",
	}, stale)
}

func TestStaleBlobURLsKeepsUnchangedAssets(t *testing.T) {
	same := strptr("https://b.example.com/uploads/logos/a.webp")
	old := &model.SpaceSettingModel{SpaceSettingLogo: same}
	next := &model.SpaceSettingModel{SpaceSettingLogo: strptr(*same)}

	assert.Empty(t, staleBlobURLs(old, next))
}

func TestStaleBlobURLsIgnoresEmptyOldValues(t *testing.T) {
	old := &model.SpaceSettingModel{SpaceSettingLogo: strptr("")}
	next := &model.SpaceSettingModel{SpaceSettingLogo: strptr("https://b.example.com/uploads/logos/b.webp")}

	assert.Empty(t, staleBlobURLs(old, next))
}
