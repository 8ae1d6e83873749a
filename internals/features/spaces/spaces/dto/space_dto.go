package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"testimonial_backend/internals/features/spaces/spaces/model"
	"testimonial_backend/internals/features/spaces/spaces/question"
)

/* =========================================================
   REQUEST DTO — CREATE / REPLACE (writable fields only)
   Every update carries the FULL settings object; partial
   patches are not part of the contract.
========================================================= */

type SpaceSettingRequest struct {
	Version int `json:"space_setting_version"`

	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	Logo        *string `json:"logo,omitempty"`
	LogoType    bool    `json:"logo_type"`
	URL         *string `json:"url,omitempty"`
	HeaderTitle *string `json:"header_title,omitempty"`
	Message     *string `json:"message,omitempty"`
	Theme       bool    `json:"theme"`
	CustomColor *string `json:"custom_color,omitempty"`
	Language    string  `json:"language"`

	CollectionType  string `json:"collection_type"`
	CollectStar     bool   `json:"collect_star"`
	VideoDuration   int    `json:"video_duration"`
	MaxTextLength   int    `json:"maxtext_length"`
	VideoButtonText string `json:"videobutton_text"`
	TextButtonText  string `json:"textbutton_text"`

	DisplayContest *string `json:"display_contest,omitempty"`
	ContestLink    *string `json:"contest_link,omitempty"`
	QuestionLabel  *string `json:"question_label,omitempty"`

	ApplyWatermark    bool    `json:"apply_watermark"`
	WatermarkImage    *string `json:"watermark_image,omitempty"`
	WatermarkPosition *string `json:"watermark_position,omitempty"`

	TestimonialAvatar *string `json:"testimonial_avatar,omitempty"`
	AffliatedLink     *string `json:"affliated_link,omitempty"`
	ShowTestimonials  bool    `json:"show_testimonials"`

	Thirdparty     *string `json:"thirdparty,omitempty"`
	ThirdpartyLink *string `json:"thirdparty_link,omitempty"`

	AutopopulateWallOfLove bool `json:"autopopulate_walloflove"`
	DisableVideoRecord     bool `json:"disable_videorecord"`

	Questions []question.SpaceQuestion `json:"space_questions"`
}

type SpaceRequest struct {
	SpaceName    string              `json:"space_name"`
	SpaceSetting SpaceSettingRequest `json:"space_setting"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type SpaceResponse struct {
	SpaceID        uuid.UUID                `json:"space_id"`
	SpaceUserID    uuid.UUID                `json:"space_user_id"`
	SpaceName      string                   `json:"space_name"`
	SpaceSlug      string                   `json:"space_slug"`
	SpaceSetting   *model.SpaceSettingModel `json:"space_setting,omitempty"`
	SpaceCreatedAt time.Time                `json:"space_created_at"`
	SpaceUpdatedAt time.Time                `json:"space_updated_at"`
}

// PublicSpaceSetting is the anonymous-form view of a configuration. The
// owner's account-binding fields never leave the server on the public route.
type PublicSpaceSetting struct {
	Logo        *string `json:"logo,omitempty"`
	LogoType    bool    `json:"logo_type"`
	HeaderTitle *string `json:"header_title,omitempty"`
	Message     *string `json:"message,omitempty"`
	Theme       bool    `json:"theme"`
	CustomColor *string `json:"custom_color,omitempty"`
	Language    string  `json:"language"`

	CollectionType  string `json:"collection_type"`
	CollectStar     bool   `json:"collect_star"`
	VideoDuration   int    `json:"video_duration"`
	MaxTextLength   int    `json:"maxtext_length"`
	VideoButtonText string `json:"videobutton_text"`
	TextButtonText  string `json:"textbutton_text"`

	DisplayContest *string `json:"display_contest,omitempty"`
	ContestLink    *string `json:"contest_link,omitempty"`
	QuestionLabel  *string `json:"question_label,omitempty"`

	ApplyWatermark     bool    `json:"apply_watermark"`
	WatermarkPosition  *string `json:"watermark_position,omitempty"`
	Thirdparty         *string `json:"thirdparty,omitempty"`
	ThirdpartyLink     *string `json:"thirdparty_link,omitempty"`
	DisableVideoRecord bool    `json:"disable_videorecord"`

	Questions []question.SpaceQuestion `json:"space_questions"`
}

type PublicSpaceResponse struct {
	SpaceID      uuid.UUID           `json:"space_id"`
	SpaceName    string              `json:"space_name"`
	SpaceSlug    string              `json:"space_slug"`
	SpaceSetting *PublicSpaceSetting `json:"space_setting,omitempty"`
}

func ToSpaceResponse(m *model.SpaceModel) SpaceResponse {
	return SpaceResponse{
		SpaceID:        m.SpaceID,
		SpaceUserID:    m.SpaceUserID,
		SpaceName:      m.SpaceName,
		SpaceSlug:      m.SpaceSlug,
		SpaceSetting:   m.Setting,
		SpaceCreatedAt: m.SpaceCreatedAt,
		SpaceUpdatedAt: m.SpaceUpdatedAt,
	}
}

func ToPublicSpaceResponse(m *model.SpaceModel) PublicSpaceResponse {
	out := PublicSpaceResponse{
		SpaceID:   m.SpaceID,
		SpaceName: m.SpaceName,
		SpaceSlug: m.SpaceSlug,
	}
	if s := m.Setting; s != nil {
		qs, _ := s.Questions()
		out.SpaceSetting = &PublicSpaceSetting{
			Logo:               s.SpaceSettingLogo,
			LogoType:           s.SpaceSettingLogoType,
			HeaderTitle:        s.SpaceSettingHeaderTitle,
			Message:            s.SpaceSettingMessage,
			Theme:              s.SpaceSettingTheme,
			CustomColor:        s.SpaceSettingCustomColor,
			Language:           s.SpaceSettingLanguage,
			CollectionType:     s.SpaceSettingCollectionType,
			CollectStar:        s.SpaceSettingCollectStar,
			VideoDuration:      s.SpaceSettingVideoDuration,
			MaxTextLength:      s.SpaceSettingMaxTextLength,
			VideoButtonText:    s.SpaceSettingVideoButtonText,
			TextButtonText:     s.SpaceSettingTextButtonText,
			DisplayContest:     s.SpaceSettingDisplayContest,
			ContestLink:        s.SpaceSettingContestLink,
			QuestionLabel:      s.SpaceSettingQuestionLabel,
			ApplyWatermark:     s.SpaceSettingApplyWatermark,
			WatermarkPosition:  s.SpaceSettingWatermarkPosition,
			Thirdparty:         s.SpaceSettingThirdparty,
			ThirdpartyLink:     s.SpaceSettingThirdpartyLink,
			DisableVideoRecord: s.SpaceSettingDisableVideoRecord,
			Questions:          qs,
		}
	}
	return out
}

/* =========================================================
   Model mapping
========================================================= */

// ApplyToModel writes the full request onto a settings row. The caller
// handles version checks; this only copies fields.
func (r *SpaceSettingRequest) ApplyToModel(m *model.SpaceSettingModel) error {
	m.SpaceSettingUserName = strings.TrimSpace(r.UserName)
	m.SpaceSettingEmail = strings.ToLower(strings.TrimSpace(r.Email))
	m.SpaceSettingPassword = r.Password

	m.SpaceSettingLogo = r.Logo
	m.SpaceSettingLogoType = r.LogoType
	m.SpaceSettingURL = r.URL
	m.SpaceSettingHeaderTitle = r.HeaderTitle
	m.SpaceSettingMessage = r.Message
	m.SpaceSettingTheme = r.Theme
	m.SpaceSettingCustomColor = r.CustomColor
	m.SpaceSettingLanguage = r.Language

	m.SpaceSettingCollectionType = r.CollectionType
	m.SpaceSettingCollectStar = r.CollectStar
	m.SpaceSettingVideoDuration = r.VideoDuration
	m.SpaceSettingMaxTextLength = r.MaxTextLength
	m.SpaceSettingVideoButtonText = r.VideoButtonText
	m.SpaceSettingTextButtonText = r.TextButtonText

	m.SpaceSettingDisplayContest = r.DisplayContest
	m.SpaceSettingContestLink = r.ContestLink
	m.SpaceSettingQuestionLabel = r.QuestionLabel

	m.SpaceSettingApplyWatermark = r.ApplyWatermark
	m.SpaceSettingWatermarkImage = r.WatermarkImage
	m.SpaceSettingWatermarkPosition = r.WatermarkPosition

	m.SpaceSettingTestimonialAvatar = r.TestimonialAvatar
	m.SpaceSettingAffliatedLink = r.AffliatedLink
	m.SpaceSettingShowTestimonials = r.ShowTestimonials

	m.SpaceSettingThirdparty = r.Thirdparty
	m.SpaceSettingThirdpartyLink = r.ThirdpartyLink

	m.SpaceSettingAutopopulateWallOfLove = r.AutopopulateWallOfLove
	m.SpaceSettingDisableVideoRecord = r.DisableVideoRecord

	return m.SetQuestions(r.Questions)
}
