package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"testimonial_backend/internals/features/spaces/spaces/question"
)

// Collection modes a space accepts reviews in.
const (
	CollectionTypeVideo = "video"
	CollectionTypeText  = "text"
)

// SpaceSettingModel is the full configuration payload driving the public
// submission form. One row per space (unique index); every update replaces
// the whole object and bumps SpaceSettingVersion.
type SpaceSettingModel struct {
	SpaceSettingID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"space_setting_id"`
	SpaceSettingSpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"space_setting_space_id"`

	// optimistic concurrency: writers send the version they read
	SpaceSettingVersion int `gorm:"not null;default:1" json:"space_setting_version"`

	// account-binding fields carried alongside presentation settings
	SpaceSettingUserName string `gorm:"type:varchar(50);not null" json:"user_name"`
	SpaceSettingEmail    string `gorm:"type:varchar(255);not null" json:"email"`
	SpaceSettingPassword string `gorm:"type:varchar(255);not null" json:"-"`

	// presentation
	SpaceSettingLogo        *string `gorm:"type:text" json:"logo,omitempty"`
	SpaceSettingLogoType    bool    `gorm:"default:false" json:"logo_type"`
	SpaceSettingURL         *string `gorm:"type:text" json:"url,omitempty"`
	SpaceSettingHeaderTitle *string `gorm:"type:text" json:"header_title,omitempty"`
	SpaceSettingMessage     *string `gorm:"type:text" json:"message,omitempty"`
	SpaceSettingTheme       bool    `gorm:"default:false" json:"theme"`
	SpaceSettingCustomColor *string `gorm:"type:varchar(20)" json:"custom_color,omitempty"`
	SpaceSettingLanguage    string  `gorm:"type:varchar(10);not null;default:'en'" json:"language"`

	// collection mode
	SpaceSettingCollectionType  string `gorm:"type:varchar(10);not null;default:'video'" json:"collection_type"`
	SpaceSettingCollectStar     bool   `gorm:"default:false" json:"collect_star"`
	SpaceSettingVideoDuration   int    `gorm:"not null;default:60" json:"video_duration"`
	SpaceSettingMaxTextLength   int    `gorm:"not null;default:500" json:"maxtext_length"`
	SpaceSettingVideoButtonText string `gorm:"type:varchar(100);not null;default:'Record a video'" json:"videobutton_text"`
	SpaceSettingTextButtonText  string `gorm:"type:varchar(100);not null;default:'Send in text'" json:"textbutton_text"`

	// presentation extras
	SpaceSettingDisplayContest *string `gorm:"type:text" json:"display_contest,omitempty"`
	SpaceSettingContestLink    *string `gorm:"type:text" json:"contest_link,omitempty"`
	SpaceSettingQuestionLabel  *string `gorm:"type:text" json:"question_label,omitempty"`

	// watermark group: image/position only meaningful when apply is true
	SpaceSettingApplyWatermark    bool    `gorm:"default:false" json:"apply_watermark"`
	SpaceSettingWatermarkImage    *string `gorm:"type:text" json:"watermark_image,omitempty"`
	SpaceSettingWatermarkPosition *string `gorm:"type:varchar(20)" json:"watermark_position,omitempty"`

	SpaceSettingTestimonialAvatar *string `gorm:"type:text" json:"testimonial_avatar,omitempty"`
	SpaceSettingAffliatedLink     *string `gorm:"type:text" json:"affliated_link,omitempty"`
	SpaceSettingShowTestimonials  bool    `gorm:"default:true" json:"show_testimonials"`

	// third-party import pair: a link is meaningless without a provider
	SpaceSettingThirdparty     *string `gorm:"type:varchar(50)" json:"thirdparty,omitempty"`
	SpaceSettingThirdpartyLink *string `gorm:"type:text" json:"thirdparty_link,omitempty"`

	SpaceSettingAutopopulateWallOfLove bool `gorm:"default:false" json:"autopopulate_walloflove"`
	SpaceSettingDisableVideoRecord     bool `gorm:"default:false" json:"disable_videorecord"`

	// ordered question list, array position = ask order
	SpaceSettingQuestions datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"space_questions"`

	SpaceSettingCreatedAt time.Time `gorm:"autoCreateTime" json:"space_setting_created_at"`
	SpaceSettingUpdatedAt time.Time `gorm:"autoUpdateTime" json:"space_setting_updated_at"`
}

func (SpaceSettingModel) TableName() string {
	return "space_settings"
}

// Questions decodes the stored ordered question list.
func (m *SpaceSettingModel) Questions() ([]question.SpaceQuestion, error) {
	if len(m.SpaceSettingQuestions) == 0 {
		return nil, nil
	}
	var qs []question.SpaceQuestion
	if err := json.Unmarshal(m.SpaceSettingQuestions, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// SetQuestions serializes the ordered question list into the JSON column.
func (m *SpaceSettingModel) SetQuestions(qs []question.SpaceQuestion) error {
	if qs == nil {
		qs = []question.SpaceQuestion{}
	}
	raw, err := json.Marshal(qs)
	if err != nil {
		return err
	}
	m.SpaceSettingQuestions = datatypes.JSON(raw)
	return nil
}
