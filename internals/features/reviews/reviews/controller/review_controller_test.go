package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testimonial_backend/internals/features/reviews/reviews/dto"
	"testimonial_backend/internals/features/reviews/reviews/intake"
	spaceModel "testimonial_backend/internals/features/spaces/spaces/model"
)

func strptr(s string) *string { return &s }

func spaceWithSetting(s spaceModel.SpaceSettingModel) *spaceModel.SpaceModel {
	return &spaceModel.SpaceModel{Setting: &s}
}

func TestBuildReviewEmbedsCompleteWatermarkGroup(t *testing.T) {
	space := spaceWithSetting(spaceModel.SpaceSettingModel{
		SpaceSettingCollectionType:    spaceModel.CollectionTypeVideo,
		SpaceSettingApplyWatermark:    true,
		SpaceSettingWatermarkImage:    strptr("https://b.example.com/uploads/watermarks/w.webp"),
		SpaceSettingWatermarkPosition: strptr("bottom-right"),
	})
	req := &dto.ReviewSubmitRequest{ReviewerName: "Jan"}
	draft := intake.Draft{VideoURL: "https://cdn.example.com/v.webm"}

	review, err := buildReview(space, req, draft)
	require.NoError(t, err)

	assert.True(t, review.ReviewWatermarkApplied)
	require.NotNil(t, review.ReviewWatermarkImage)
	require.NotNil(t, review.ReviewWatermarkPosition)
	assert.Equal(t, "bottom-right", *review.ReviewWatermarkPosition)
}

func TestBuildReviewSkipsWatermarkWhenPositionMissing(t *testing.T) {
	space := spaceWithSetting(spaceModel.SpaceSettingModel{
		SpaceSettingCollectionType: spaceModel.CollectionTypeVideo,
		SpaceSettingApplyWatermark: true,
		SpaceSettingWatermarkImage: strptr("https://b.example.com/uploads/watermarks/w.webp"),
		// position never set on this row
	})
	req := &dto.ReviewSubmitRequest{ReviewerName: "Jan"}
	draft := intake.Draft{VideoURL: "https://cdn.example.com/v.webm"}

	review, err := buildReview(space, req, draft)
	require.NoError(t, err)

	assert.False(t, review.ReviewWatermarkApplied)
	assert.Nil(t, review.ReviewWatermarkImage)
	assert.Nil(t, review.ReviewWatermarkPosition)
}

func TestBuildReviewSkipsWatermarkWhenImageMissing(t *testing.T) {
	space := spaceWithSetting(spaceModel.SpaceSettingModel{
		SpaceSettingCollectionType:    spaceModel.CollectionTypeText,
		SpaceSettingMaxTextLength:     500,
		SpaceSettingApplyWatermark:    true,
		SpaceSettingWatermarkPosition: strptr("top-left"),
	})
	req := &dto.ReviewSubmitRequest{ReviewerName: "Jan"}
	draft := intake.Draft{Text: "Great product"}

	review, err := buildReview(space, req, draft)
	require.NoError(t, err)

	assert.False(t, review.ReviewWatermarkApplied)
	require.NotNil(t, review.ReviewText)
	assert.Equal(t, "Great product", *review.ReviewText)
}

func TestBuildReviewPrefersThirdpartyImportOverRecording(t *testing.T) {
	space := spaceWithSetting(spaceModel.SpaceSettingModel{
		SpaceSettingCollectionType: spaceModel.CollectionTypeVideo,
		SpaceSettingThirdparty:     strptr("youtube"),
	})
	req := &dto.ReviewSubmitRequest{ReviewerName: "Jan"}
	draft := intake.Draft{ThirdpartyLink: "https://youtu.be/abc"}

	review, err := buildReview(space, req, draft)
	require.NoError(t, err)

	assert.Nil(t, review.ReviewVideoURL)
	require.NotNil(t, review.ReviewThirdpartyLink)
	assert.Equal(t, "https://youtu.be/abc", *review.ReviewThirdpartyLink)
	require.NotNil(t, review.ReviewThirdparty)
	assert.Equal(t, "youtube", *review.ReviewThirdparty)
}
