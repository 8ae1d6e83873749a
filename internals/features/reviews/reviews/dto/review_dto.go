package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	reviewModel "testimonial_backend/internals/features/reviews/reviews/model"
	tagDto "testimonial_backend/internals/features/reviews/tags/dto"
	spaceModel "testimonial_backend/internals/features/spaces/spaces/model"
)

// =======================================================
// Request & Response
// =======================================================

type QuestionAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type ReviewSubmitRequest struct {
	SpaceID       uuid.UUID `json:"space_id"`
	ReviewerName  string    `json:"reviewer_name"`
	ReviewerEmail *string   `json:"reviewer_email"`

	VideoURL *string `json:"review_video_url"`
	Text     *string `json:"review_text"`
	Star     *int16  `json:"review_star"`

	// set on the third-party import branch only
	ThirdpartyLink *string `json:"thirdparty_link"`

	Answers []QuestionAnswer `json:"review_answers"`
	TagIDs  []uuid.UUID      `json:"tag_ids"`
}

type ReviewResponse struct {
	ReviewID       uuid.UUID            `json:"review_id"`
	ReviewSpaceID  uuid.UUID            `json:"review_space_id"`
	ReviewerName   string               `json:"reviewer_name"`
	ReviewerEmail  *string              `json:"reviewer_email,omitempty"`
	ReviewType     string               `json:"review_type"`
	ReviewVideoURL *string              `json:"review_video_url,omitempty"`
	ReviewText     *string              `json:"review_text,omitempty"`
	ReviewStar     *int16               `json:"review_star,omitempty"`
	ReviewAnswers  []QuestionAnswer     `json:"review_answers,omitempty"`
	Tags           []tagDto.TagResponse `json:"review_tags,omitempty"`
	CreatedAt      time.Time            `json:"review_created_at"`
}

func ToReviewResponse(m reviewModel.ReviewModel, answers []QuestionAnswer) ReviewResponse {
	tags := tagDto.ToTagResponses(m.Tags)
	return ReviewResponse{
		ReviewID:       m.ReviewID,
		ReviewSpaceID:  m.ReviewSpaceID,
		ReviewerName:   m.ReviewerName,
		ReviewerEmail:  m.ReviewerEmail,
		ReviewType:     m.ReviewType,
		ReviewVideoURL: m.ReviewVideoURL,
		ReviewText:     m.ReviewText,
		ReviewStar:     m.ReviewStar,
		ReviewAnswers:  answers,
		Tags:           tags,
		CreatedAt:      m.ReviewCreatedAt,
	}
}

// =======================================================
// Conditional validation
// =======================================================

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func AsMap(errs []FieldError) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RequiredFields reports which submitter fields the active collection
// mode demands. Fields belonging to the inactive mode never appear.
func RequiredFields(setting *spaceModel.SpaceSettingModel) []string {
	fields := []string{"reviewer_name"}
	switch setting.SpaceSettingCollectionType {
	case spaceModel.CollectionTypeVideo:
		fields = append(fields, "review_video_url")
	case spaceModel.CollectionTypeText:
		fields = append(fields, "review_text")
	}
	if setting.SpaceSettingCollectStar {
		fields = append(fields, "review_star")
	}
	return fields
}

// ValidateSubmission checks a submission against the space setting that
// shaped the form. Rules from the inactive collection mode are never
// evaluated, so a text-mode space ignores video fields entirely and a
// video-mode space ignores the text length cap.
func ValidateSubmission(setting *spaceModel.SpaceSettingModel, req *ReviewSubmitRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.ReviewerName) == "" {
		errs = append(errs, FieldError{Field: "reviewer_name", Message: "Name is required"})
	}
	if req.ReviewerEmail != nil && *req.ReviewerEmail != "" && !emailRe.MatchString(*req.ReviewerEmail) {
		errs = append(errs, FieldError{Field: "reviewer_email", Message: "Invalid email address"})
	}

	switch setting.SpaceSettingCollectionType {
	case spaceModel.CollectionTypeVideo:
		if setting.SpaceSettingDisableVideoRecord {
			// recording is off, a third-party import link stands in
			if req.ThirdpartyLink == nil || strings.TrimSpace(*req.ThirdpartyLink) == "" {
				errs = append(errs, FieldError{Field: "thirdparty_link", Message: "A third-party video link is required"})
			}
		} else if req.VideoURL == nil || strings.TrimSpace(*req.VideoURL) == "" {
			errs = append(errs, FieldError{Field: "review_video_url", Message: "A recorded video is required"})
		}
	case spaceModel.CollectionTypeText:
		if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
			errs = append(errs, FieldError{Field: "review_text", Message: "Review text is required"})
		} else if len([]rune(*req.Text)) > setting.SpaceSettingMaxTextLength {
			errs = append(errs, FieldError{Field: "review_text", Message: "Review text exceeds the maximum length"})
		}
	}

	if setting.SpaceSettingCollectStar {
		if req.Star == nil || *req.Star < 1 || *req.Star > 5 {
			errs = append(errs, FieldError{Field: "review_star", Message: "A star rating between 1 and 5 is required"})
		}
	}

	if len(req.Answers) > 0 {
		known := make(map[string]bool)
		if qs, err := setting.Questions(); err == nil {
			for _, q := range qs {
				known[q.ID] = true
			}
		}
		for _, a := range req.Answers {
			if !known[a.QuestionID] {
				errs = append(errs, FieldError{Field: "review_answers", Message: "Answer references an unknown question"})
				break
			}
		}
	}

	return errs
}
