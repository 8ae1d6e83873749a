package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testimonial_backend/internals/features/spaces/spaces/model"
	"testimonial_backend/internals/features/spaces/spaces/question"
)

func strptr(s string) *string { return &s }

func validVideoRequest() SpaceSettingRequest {
	return SpaceSettingRequest{
		UserName:       "Jan",
		Email:          "jan@example.com",
		Password:       "supersecret",
		CollectionType: model.CollectionTypeVideo,
		VideoDuration:  60,
	}
}

func messagesFor(errs []FieldError, field string) []string {
	var out []string
	for _, e := range errs {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

func TestValidateVideoModeRequiresPositiveDuration(t *testing.T) {
	r := validVideoRequest()
	r.VideoDuration = 0

	errs := r.Validate()
	assert.Contains(t, messagesFor(errs, "video_duration"), "Video duration must be positive")
}

func TestValidateVideoModeIgnoresTextLimits(t *testing.T) {
	r := validVideoRequest()
	r.MaxTextLength = 0 // would fail in text mode

	assert.Empty(t, r.Validate())
}

func TestValidateTextModeRequiresPositiveLength(t *testing.T) {
	r := validVideoRequest()
	r.CollectionType = model.CollectionTypeText
	r.MaxTextLength = 0

	errs := r.Validate()
	assert.Contains(t, messagesFor(errs, "maxtext_length"), "Max text length must be positive")
}

func TestValidateTextModeIgnoresVideoDuration(t *testing.T) {
	r := validVideoRequest()
	r.CollectionType = model.CollectionTypeText
	r.MaxTextLength = 500
	r.VideoDuration = 0 // would fail in video mode

	assert.Empty(t, r.Validate())
}

func TestValidateRejectsUnknownCollectionType(t *testing.T) {
	r := validVideoRequest()
	r.CollectionType = "audio"

	errs := r.Validate()
	assert.Contains(t, messagesFor(errs, "collection_type"), "Collection type must be video or text")
}

func TestValidateAccountFieldMessages(t *testing.T) {
	r := SpaceSettingRequest{
		CollectionType: model.CollectionTypeVideo,
		VideoDuration:  60,
		Email:          "not-an-email",
		Password:       "short",
	}

	errs := r.Validate()
	assert.Contains(t, messagesFor(errs, "user_name"), "Name is required")
	assert.Contains(t, messagesFor(errs, "email"), "Invalid email address")
	assert.Contains(t, messagesFor(errs, "password"), "Password must be at least 8 characters")
}

func TestValidateWatermarkGroup(t *testing.T) {
	r := validVideoRequest()
	r.ApplyWatermark = true

	errs := r.Validate()
	assert.Contains(t, messagesFor(errs, "watermark_image"), "Watermark image is required")
	assert.Contains(t, messagesFor(errs, "watermark_position"), "Watermark position is required")

	r.WatermarkImage = strptr("https://cdn.example.com/wm.webp")
	r.WatermarkPosition = strptr("bottom-right")
	assert.Empty(t, r.Validate())

	// group off, members ignored entirely
	r = validVideoRequest()
	r.ApplyWatermark = false
	r.WatermarkImage = nil
	r.WatermarkPosition = nil
	assert.Empty(t, r.Validate())
}

func TestValidateThirdpartyPair(t *testing.T) {
	r := validVideoRequest()
	r.ThirdpartyLink = strptr("https://youtu.be/abc")

	errs := r.Validate()
	assert.Contains(t, messagesFor(errs, "thirdparty"), "Third-party provider is required when a link is set")

	r.Thirdparty = strptr("youtube")
	assert.Empty(t, r.Validate())
}

func TestValidateRejectsDuplicateQuestionIDs(t *testing.T) {
	r := validVideoRequest()
	r.Questions = []question.SpaceQuestion{
		{ID: "q1", Question: "Who are you?"},
		{ID: "q1", Question: "What do you do?"},
	}

	assert.NotEmpty(t, messagesFor(r.Validate(), "space_questions"))
}

func TestNormalizeFillsDefaultsWithoutOverriding(t *testing.T) {
	r := SpaceSettingRequest{}
	r.Normalize()

	assert.Equal(t, model.CollectionTypeVideo, r.CollectionType)
	assert.Equal(t, "en", r.Language)
	assert.Equal(t, 60, r.VideoDuration)
	assert.Equal(t, "Record a video", r.VideoButtonText)
	assert.Equal(t, "Send in text", r.TextButtonText)

	r = SpaceSettingRequest{CollectionType: model.CollectionTypeText, MaxTextLength: 140, Language: "de"}
	r.Normalize()
	assert.Equal(t, 140, r.MaxTextLength)
	assert.Equal(t, "de", r.Language)
}

func TestSpaceRequestRequiresName(t *testing.T) {
	r := SpaceRequest{SpaceSetting: validVideoRequest()}

	errs := r.Validate()
	assert.Contains(t, messagesFor(errs, "space_name"), "Space name is required")
}

func TestPublicResponseStripsCredentials(t *testing.T) {
	setting := model.SpaceSettingModel{
		SpaceSettingUserName:       "Jan",
		SpaceSettingEmail:          "jan@example.com",
		SpaceSettingPassword:       "hashed",
		SpaceSettingURL:            strptr("https://private.example.com"),
		SpaceSettingHeaderTitle:    strptr("Tell us what you think"),
		SpaceSettingCollectionType: model.CollectionTypeText,
		SpaceSettingMaxTextLength:  500,
	}
	require.NoError(t, setting.SetQuestions([]question.SpaceQuestion{{ID: "q1", Question: "Why us?"}}))

	space := model.SpaceModel{SpaceName: "acme", SpaceSlug: "acme", Setting: &setting}
	out := ToPublicSpaceResponse(&space)

	require.NotNil(t, out.SpaceSetting)
	assert.Equal(t, "Tell us what you think", *out.SpaceSetting.HeaderTitle)
	assert.Len(t, out.SpaceSetting.Questions, 1)

	// the public view type has no slots for account-binding fields;
	// the mapping must still carry the display fields over
	assert.Equal(t, model.CollectionTypeText, out.SpaceSetting.CollectionType)
	assert.Equal(t, 500, out.SpaceSetting.MaxTextLength)
}

func TestApplyToModelRoundTripsQuestions(t *testing.T) {
	r := validVideoRequest()
	r.Questions = []question.SpaceQuestion{
		{ID: "q1", Question: "Who are you?"},
		{ID: "q2", Question: "Why us?"},
	}

	var m model.SpaceSettingModel
	require.NoError(t, r.ApplyToModel(&m))

	qs, err := m.Questions()
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "q1", qs[0].ID)
	assert.Equal(t, "jan@example.com", m.SpaceSettingEmail)
}
