package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testimonial_backend/internals/features/spaces/spaces/model"
	"testimonial_backend/internals/features/spaces/spaces/question"
)

func strptr(s string) *string { return &s }
func i16ptr(v int16) *int16   { return &v }

func videoSetting() *model.SpaceSettingModel {
	return &model.SpaceSettingModel{
		SpaceSettingCollectionType: model.CollectionTypeVideo,
		SpaceSettingVideoDuration:  60,
	}
}

func textSetting(maxLen int) *model.SpaceSettingModel {
	return &model.SpaceSettingModel{
		SpaceSettingCollectionType: model.CollectionTypeText,
		SpaceSettingMaxTextLength:  maxLen,
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

func TestVideoModeRequiresRecording(t *testing.T) {
	req := &ReviewSubmitRequest{ReviewerName: "Jan"}

	errs := ValidateSubmission(videoSetting(), req)
	assert.Contains(t, messagesFor(errs, "review_video_url"), "A recorded video is required")

	req.VideoURL = strptr("https://cdn.example.com/v.webm")
	assert.Empty(t, ValidateSubmission(videoSetting(), req))
}

func TestVideoModeIgnoresTextLength(t *testing.T) {
	long := strings.Repeat("a", 10000)
	req := &ReviewSubmitRequest{
		ReviewerName: "Jan",
		VideoURL:     strptr("https://cdn.example.com/v.webm"),
		Text:         &long,
	}

	assert.Empty(t, ValidateSubmission(videoSetting(), req))
}

func TestTextModeRequiresBody(t *testing.T) {
	req := &ReviewSubmitRequest{ReviewerName: "Jan", Text: strptr("   ")}

	errs := ValidateSubmission(textSetting(500), req)
	assert.Contains(t, messagesFor(errs, "review_text"), "Review text is required")
}

func TestTextModeEnforcesMaxLength(t *testing.T) {
	setting := textSetting(100)

	exact := strings.Repeat("x", 100)
	req := &ReviewSubmitRequest{ReviewerName: "Jan", Text: &exact}
	assert.Empty(t, ValidateSubmission(setting, req))

	over := strings.Repeat("x", 101)
	req.Text = &over
	errs := ValidateSubmission(setting, req)
	assert.Contains(t, messagesFor(errs, "review_text"), "Review text exceeds the maximum length")
}

func TestTextModeIgnoresVideoFields(t *testing.T) {
	req := &ReviewSubmitRequest{
		ReviewerName: "Jan",
		Text:         strptr("Great product"),
	}
	// no video url attached, text mode must not ask for one
	assert.Empty(t, ValidateSubmission(textSetting(500), req))
}

func TestStarOnlyCheckedWhenCollected(t *testing.T) {
	setting := textSetting(500)
	req := &ReviewSubmitRequest{ReviewerName: "Jan", Text: strptr("Great")}

	assert.Empty(t, ValidateSubmission(setting, req))

	setting.SpaceSettingCollectStar = true
	errs := ValidateSubmission(setting, req)
	assert.Contains(t, messagesFor(errs, "review_star"), "A star rating between 1 and 5 is required")

	req.Star = i16ptr(6)
	errs = ValidateSubmission(setting, req)
	assert.NotEmpty(t, messagesFor(errs, "review_star"))

	req.Star = i16ptr(5)
	assert.Empty(t, ValidateSubmission(setting, req))
}

func TestDisabledRecordingRequiresImportLink(t *testing.T) {
	setting := videoSetting()
	setting.SpaceSettingDisableVideoRecord = true

	req := &ReviewSubmitRequest{ReviewerName: "Jan"}
	errs := ValidateSubmission(setting, req)
	assert.Contains(t, messagesFor(errs, "thirdparty_link"), "A third-party video link is required")

	req.ThirdpartyLink = strptr("https://youtu.be/abc")
	assert.Empty(t, ValidateSubmission(setting, req))
}

func TestAnswersMustReferenceKnownQuestions(t *testing.T) {
	setting := textSetting(500)
	require.NoError(t, setting.SetQuestions([]question.SpaceQuestion{{ID: "q1", Question: "Why us?"}}))

	req := &ReviewSubmitRequest{
		ReviewerName: "Jan",
		Text:         strptr("Great"),
		Answers:      []QuestionAnswer{{QuestionID: "q1", Answer: "Because"}},
	}
	assert.Empty(t, ValidateSubmission(setting, req))

	req.Answers = append(req.Answers, QuestionAnswer{QuestionID: "ghost", Answer: "?"})
	errs := ValidateSubmission(setting, req)
	assert.Contains(t, messagesFor(errs, "review_answers"), "Answer references an unknown question")
}

func TestRequiredFieldsPerMode(t *testing.T) {
	video := RequiredFields(videoSetting())
	assert.Contains(t, video, "review_video_url")
	assert.NotContains(t, video, "review_text")

	text := RequiredFields(textSetting(500))
	assert.Contains(t, text, "review_text")
	assert.NotContains(t, text, "review_video_url")

	starred := textSetting(500)
	starred.SpaceSettingCollectStar = true
	assert.Contains(t, RequiredFields(starred), "review_star")
}
