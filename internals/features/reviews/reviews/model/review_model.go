package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	tagModel "testimonial_backend/internals/features/reviews/tags/model"
)

// Review types mirror the space collection modes.
const (
	ReviewTypeVideo = "video"
	ReviewTypeText  = "text"
)

// ReviewModel is one shaped submission against a space configuration.
type ReviewModel struct {
	ReviewID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"review_id"`
	ReviewSpaceID uuid.UUID `gorm:"type:uuid;not null;index" json:"review_space_id"`

	ReviewerName  string  `gorm:"type:varchar(100);not null" json:"reviewer_name"`
	ReviewerEmail *string `gorm:"type:varchar(255)" json:"reviewer_email,omitempty"`

	ReviewType     string  `gorm:"type:varchar(10);not null" json:"review_type"`
	ReviewVideoURL *string `gorm:"type:text" json:"review_video_url,omitempty"`
	ReviewText     *string `gorm:"type:text" json:"review_text,omitempty"`
	ReviewStar     *int16  `gorm:"type:smallint" json:"review_star,omitempty"`

	// watermark metadata copied from the setting at submission time, only
	// when the conditional group was complete
	ReviewWatermarkApplied  bool    `gorm:"default:false" json:"review_watermark_applied"`
	ReviewWatermarkImage    *string `gorm:"type:text" json:"review_watermark_image,omitempty"`
	ReviewWatermarkPosition *string `gorm:"type:varchar(20)" json:"review_watermark_position,omitempty"`

	// set on the third-party import branch
	ReviewThirdparty     *string `gorm:"type:varchar(50)" json:"review_thirdparty,omitempty"`
	ReviewThirdpartyLink *string `gorm:"type:text" json:"review_thirdparty_link,omitempty"`

	// answers to the space questions, keyed by stable question id
	ReviewAnswers datatypes.JSON `gorm:"type:jsonb" json:"review_answers,omitempty"`

	Tags []tagModel.TagModel `gorm:"many2many:review_tags;foreignKey:ReviewID;joinForeignKey:ReviewID;References:TagID;joinReferences:TagID" json:"review_tags,omitempty"`

	ReviewCreatedAt time.Time      `gorm:"autoCreateTime" json:"review_created_at"`
	ReviewUpdatedAt time.Time      `gorm:"autoUpdateTime" json:"review_updated_at"`
	ReviewDeletedAt gorm.DeletedAt `gorm:"column:review_deleted_at" json:"review_deleted_at,omitempty"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
