package dto

import (
	"regexp"
	"strings"

	helperOSS "testimonial_backend/internals/helpers/oss"

	"testimonial_backend/internals/features/spaces/spaces/model"
	"testimonial_backend/internals/features/spaces/spaces/question"
)

// FieldError is one (field, message) validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AsMap shapes field errors for the 422 envelope.
func AsMap(errs []FieldError) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

const (
	defaultVideoDuration = 60
	defaultMaxTextLength = 500
)

// Normalize fills defaults before validation so a minimal draft is usable.
// It never overrides a value the caller set.
func (r *SpaceSettingRequest) Normalize() {
	if strings.TrimSpace(r.CollectionType) == "" {
		r.CollectionType = model.CollectionTypeVideo
	}
	if strings.TrimSpace(r.Language) == "" {
		r.Language = "en"
	}
	if r.CollectionType == model.CollectionTypeVideo && r.VideoDuration <= 0 {
		r.VideoDuration = defaultVideoDuration
	}
	if r.CollectionType == model.CollectionTypeText && r.MaxTextLength <= 0 {
		r.MaxTextLength = defaultMaxTextLength
	}
	if strings.TrimSpace(r.VideoButtonText) == "" {
		r.VideoButtonText = "Record a video"
	}
	if strings.TrimSpace(r.TextButtonText) == "" {
		r.TextButtonText = "Send in text"
	}
}

// Validate applies the space-config rules. Pure: no I/O, no DB.
//
// The conditional matrix: video mode only constrains video fields, text mode
// only text fields; the watermark group and the third-party pair must be
// complete or absent.
func (r SpaceSettingRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.UserName) == "" {
		errs = append(errs, FieldError{"user_name", "Name is required"})
	}
	if !validEmail(r.Email) {
		errs = append(errs, FieldError{"email", "Invalid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, FieldError{"password", "Password must be at least 8 characters"})
	}

	switch r.CollectionType {
	case model.CollectionTypeVideo:
		if r.VideoDuration <= 0 {
			errs = append(errs, FieldError{"video_duration", "Video duration must be positive"})
		}
	case model.CollectionTypeText:
		if r.MaxTextLength <= 0 {
			errs = append(errs, FieldError{"maxtext_length", "Max text length must be positive"})
		}
	default:
		errs = append(errs, FieldError{"collection_type", "Collection type must be video or text"})
	}

	if r.ApplyWatermark {
		if r.WatermarkImage == nil || strings.TrimSpace(*r.WatermarkImage) == "" {
			errs = append(errs, FieldError{"watermark_image", "Watermark image is required"})
		}
		if r.WatermarkPosition == nil || !helperOSS.ValidWatermarkPosition(*r.WatermarkPosition) {
			errs = append(errs, FieldError{"watermark_position", "Watermark position is required"})
		}
	}

	if r.ThirdpartyLink != nil && strings.TrimSpace(*r.ThirdpartyLink) != "" {
		if r.Thirdparty == nil || strings.TrimSpace(*r.Thirdparty) == "" {
			errs = append(errs, FieldError{"thirdparty", "Third-party provider is required when a link is set"})
		}
	}

	if err := question.ValidateIDs(r.Questions); err != nil {
		errs = append(errs, FieldError{"space_questions", err.Error()})
	}

	return errs
}

func (r SpaceRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.SpaceName) == "" {
		errs = append(errs, FieldError{"space_name", "Space name is required"})
	}
	return append(errs, r.SpaceSetting.Validate()...)
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}
